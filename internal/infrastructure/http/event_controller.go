package http

import (
	"net/http"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/services"
	"party-paradise/internal/domain/aggregate"
	"party-paradise/pkg/middleware"
	"party-paradise/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// selectionRequest is one vendor package in a selection list
type selectionRequest struct {
	VendorID    string `json:"vendorId"`
	ServiceID   string `json:"serviceId"`
	PackageName string `json:"packageName"`
	Price       int64  `json:"price"`
}

func toSelections(reqs []selectionRequest) []aggregate.VendorSelection {
	return lo.Map(reqs, func(s selectionRequest, _ int) aggregate.VendorSelection {
		return aggregate.VendorSelection{
			VendorID:    s.VendorID,
			ServiceID:   s.ServiceID,
			PackageName: s.PackageName,
			Price:       s.Price,
		}
	})
}

// HTTPEventController handles HTTP requests for events and bookings
type HTTPEventController struct {
	service *services.EventService
}

// NewHTTPEventController creates a new event controller
func NewHTTPEventController(service *services.EventService) *HTTPEventController {
	return &HTTPEventController{service: service}
}

// CreateEvent handles POST /events
func (c *HTTPEventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		EventType       string `json:"eventType"`
		EventName       string `json:"eventName"`
		EventDate       Date   `json:"eventDate"`
		EventTime       string `json:"eventTime"`
		Venue           string `json:"venue"`
		GuestCount      int    `json:"guestCount"`
		Budget          int64  `json:"budget"`
		SpecialRequests string `json:"specialRequests"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	evt, err := c.service.CreateEvent(r.Context(), &command.CreateEvent{
		HostID: p.UserID,
		Details: aggregate.EventDetails{
			Type:            req.EventType,
			Name:            req.EventName,
			Date:            req.EventDate.Time,
			Time:            req.EventTime,
			Venue:           req.Venue,
			GuestCount:      req.GuestCount,
			Budget:          req.Budget,
			SpecialRequests: req.SpecialRequests,
		},
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, evt)
}

// SetVendors handles PUT /events/{id}/vendors
func (c *HTTPEventController) SetVendors(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		SelectedVendors []selectionRequest `json:"selectedVendors"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	evt, err := c.service.SetVendors(r.Context(), &command.SetEventVendors{
		EventID:    chi.URLParam(r, "id"),
		HostID:     p.UserID,
		Selections: toSelections(req.SelectedVendors),
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, evt)
}

// UpdateEvent handles PUT /events/{id}
func (c *HTTPEventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		EventType       *string            `json:"eventType"`
		EventName       *string            `json:"eventName"`
		EventDate       *Date              `json:"eventDate"`
		EventTime       *string            `json:"eventTime"`
		Venue           *string            `json:"venue"`
		GuestCount      *int               `json:"guestCount"`
		Budget          *int64             `json:"budget"`
		SpecialRequests *string            `json:"specialRequests"`
		SelectedVendors []selectionRequest `json:"selectedVendors"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	patch := aggregate.EventPatch{
		Type:            req.EventType,
		Name:            req.EventName,
		Time:            req.EventTime,
		Venue:           req.Venue,
		GuestCount:      req.GuestCount,
		Budget:          req.Budget,
		SpecialRequests: req.SpecialRequests,
	}
	if req.EventDate != nil && !req.EventDate.IsZero() {
		date := req.EventDate.Time
		patch.Date = &date
	}
	if req.SelectedVendors != nil {
		patch.Selections = toSelections(req.SelectedVendors)
	}

	evt, err := c.service.UpdateEvent(r.Context(), &command.UpdateEvent{
		EventID: chi.URLParam(r, "id"),
		HostID:  p.UserID,
		Patch:   patch,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, evt)
}

// UpdateBookingStatus handles PUT /events/bookings/{eventId}/status
func (c *HTTPEventController) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	result, err := c.service.UpdateSelectionStatus(r.Context(), &command.UpdateSelectionStatus{
		EventID:  chi.URLParam(r, "eventId"),
		VendorID: p.UserID,
		Status:   aggregate.SelectionStatus(req.Status),
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// DeleteEvent handles DELETE /events/{id}
func (c *HTTPEventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	result, err := c.service.DeleteEvent(r.Context(), &command.CancelEvent{
		EventID: chi.URLParam(r, "id"),
		HostID:  p.UserID,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// CompleteEvent handles PUT /events/{id}/complete
func (c *HTTPEventController) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	result, err := c.service.CompleteEvent(r.Context(), &command.CompleteEvent{
		EventID: chi.URLParam(r, "id"),
		HostID:  p.UserID,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// GetEvent handles GET /events/{id}
func (c *HTTPEventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	evt, err := c.service.GetEvent(r.Context(), chi.URLParam(r, "id"), p.UserID, p.Role)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, evt)
}

// MyEvents handles GET /events/my-events
func (c *HTTPEventController) MyEvents(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	events, err := c.service.ListHostEvents(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, events)
}

// DroppedEvents handles GET /events/dropped-events
func (c *HTTPEventController) DroppedEvents(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	events, err := c.service.DroppedEvents(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, events)
}

// Bookings handles GET /events/bookings
func (c *HTTPEventController) Bookings(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	bookings, err := c.service.ListVendorBookings(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, bookings)
}
