package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReviewState is the persisted shape of a Review
type ReviewState struct {
	ID          string
	VendorID    string
	HostID      string
	EventID     string
	Rating      int
	Text        string
	ServiceType string
	CreatedAt   time.Time
}

// Review is a host's rating of a vendor for one event
type Review struct {
	id          string
	vendorID    string
	hostID      string
	eventID     string
	rating      int
	text        string
	serviceType string
	createdAt   time.Time
}

func NewReview(vendorID, hostID, eventID string, rating int, text, serviceType string) (*Review, error) {
	text = strings.TrimSpace(text)
	serviceType = strings.TrimSpace(serviceType)
	if vendorID == "" || hostID == "" || eventID == "" || text == "" || serviceType == "" {
		return nil, fmt.Errorf("all fields are required")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	return &Review{
		id:          uuid.New().String(),
		vendorID:    vendorID,
		hostID:      hostID,
		eventID:     eventID,
		rating:      rating,
		text:        text,
		serviceType: serviceType,
		createdAt:   time.Now(),
	}, nil
}

func ReconstructReview(s ReviewState) *Review {
	return &Review{
		id:          s.ID,
		vendorID:    s.VendorID,
		hostID:      s.HostID,
		eventID:     s.EventID,
		rating:      s.Rating,
		text:        s.Text,
		serviceType: s.ServiceType,
		createdAt:   s.CreatedAt,
	}
}

func (r *Review) State() ReviewState {
	return ReviewState{
		ID:          r.id,
		VendorID:    r.vendorID,
		HostID:      r.hostID,
		EventID:     r.eventID,
		Rating:      r.rating,
		Text:        r.text,
		ServiceType: r.serviceType,
		CreatedAt:   r.createdAt,
	}
}

func (r *Review) ID() string           { return r.id }
func (r *Review) VendorID() string     { return r.vendorID }
func (r *Review) HostID() string       { return r.hostID }
func (r *Review) EventID() string      { return r.eventID }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Text() string         { return r.text }
func (r *Review) ServiceType() string  { return r.serviceType }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
