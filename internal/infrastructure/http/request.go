package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"party-paradise/pkg/errors"
	"party-paradise/pkg/middleware"
)

const (
	maxBodyBytes = 1 << 20
	dateLayout   = "2006-01-02"
)

// decodeJSON reads a JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("Invalid JSON format")
	}
	return nil
}

// principal returns the authenticated caller; routes without the JWT
// middleware never call it
func principal(r *http.Request) (middleware.Principal, error) {
	p, ok := middleware.GetPrincipal(r.Context())
	if !ok || p.UserID == "" {
		return middleware.Principal{}, errors.NewUnauthorizedError("authentication required")
	}
	return p, nil
}

// Date accepts either a calendar date or an RFC 3339 timestamp
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d.Time = t
		return nil
	}
	// a bare calendar date is midnight in the server's zone, the same zone
	// the past-date and sweep checks use
	if t, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
		d.Time = t
		return nil
	}
	return errors.NewValidationError("eventDate must be YYYY-MM-DD or RFC 3339")
}
