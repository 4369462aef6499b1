package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"party-paradise/internal/domain/event"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPending   EventStatus = "pending"
	EventStatusSubmitted EventStatus = "submitted"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
	EventStatusDropped   EventStatus = "dropped"
)

// SelectionStatus is a vendor's response to a booking
type SelectionStatus string

const (
	SelectionPending  SelectionStatus = "pending"
	SelectionAccepted SelectionStatus = "accepted"
	SelectionRejected SelectionStatus = "rejected"
)

var (
	// ErrSelectionsLocked is returned for any edit once a vendor has accepted
	ErrSelectionsLocked = errors.New("cannot edit event after vendor acceptance")
	ErrNotSelected      = errors.New("vendor is not selected for this event")
	ErrInvalidStatus    = errors.New("invalid status transition")
)

// VendorSelection is one vendor package chosen for an event
type VendorSelection struct {
	VendorID    string
	ServiceID   string
	PackageName string
	Price       int64
	Status      SelectionStatus
}

// EventDetails holds the host-editable fields of an event
type EventDetails struct {
	Type            string
	Name            string
	Date            time.Time
	Time            string
	Venue           string
	GuestCount      int
	Budget          int64
	SpecialRequests string
}

// EventPatch is a partial update; nil fields are left unchanged
type EventPatch struct {
	Type            *string
	Name            *string
	Date            *time.Time
	Time            *string
	Venue           *string
	GuestCount      *int
	Budget          *int64
	SpecialRequests *string
	Selections      []VendorSelection
}

// EventState is the persisted shape of an Event
type EventState struct {
	ID         string
	HostID     string
	Details    EventDetails
	Selections []VendorSelection
	TotalCost  int64
	Status     EventStatus
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Event is the aggregate root for a hosted event and its vendor bookings
type Event struct {
	id                string
	hostID            string
	details           EventDetails
	selections        []VendorSelection
	totalCost         int64
	status            EventStatus
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	uncommittedEvents []event.DomainEvent
}

// NewEvent creates a draft event
func NewEvent(hostID string, details EventDetails) (*Event, error) {
	if hostID == "" {
		return nil, fmt.Errorf("hostID cannot be empty")
	}
	details.Type = strings.TrimSpace(details.Type)
	if details.Type == "" {
		return nil, fmt.Errorf("event type is required")
	}
	if details.Date.IsZero() {
		return nil, fmt.Errorf("event date is required")
	}
	if details.GuestCount <= 0 {
		return nil, fmt.Errorf("guest count must be greater than 0")
	}
	if details.Budget < 0 {
		return nil, fmt.Errorf("budget cannot be negative")
	}
	now := time.Now()
	if details.Date.Before(StartOfDay(now)) {
		return nil, fmt.Errorf("event date cannot be in the past")
	}

	e := &Event{
		id:        uuid.New().String(),
		hostID:    hostID,
		details:   details,
		status:    EventStatusDraft,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}

	e.raiseEvent(&event.EventCreated{
		EventID:   e.id,
		HostID:    hostID,
		Type:      details.Type,
		Date:      details.Date,
		Timestamp: now,
	})

	return e, nil
}

// ReconstructEvent rebuilds an event from storage without validation
func ReconstructEvent(s EventState) *Event {
	return &Event{
		id:         s.ID,
		hostID:     s.HostID,
		details:    s.Details,
		selections: append([]VendorSelection(nil), s.Selections...),
		totalCost:  s.TotalCost,
		status:     s.Status,
		version:    s.Version,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
	}
}

// State returns a copy of the persisted fields
func (e *Event) State() EventState {
	return EventState{
		ID:         e.id,
		HostID:     e.hostID,
		Details:    e.details,
		Selections: e.Selections(),
		TotalCost:  e.totalCost,
		Status:     e.status,
		Version:    e.version,
		CreatedAt:  e.createdAt,
		UpdatedAt:  e.updatedAt,
	}
}

// SetVendorSelections replaces the selection list and submits the event
func (e *Event) SetVendorSelections(selections []VendorSelection) error {
	if e.HasAcceptedSelection() {
		return ErrSelectionsLocked
	}
	normalized, err := normalizeSelections(selections)
	if err != nil {
		return err
	}

	e.selections = normalized
	e.totalCost = totalOf(normalized)
	e.touch()

	e.raiseEvent(&event.VendorsSelected{
		EventID:   e.id,
		VendorIDs: e.VendorIDs(),
		TotalCost: e.totalCost,
		Timestamp: e.updatedAt,
	})
	e.changeStatus(EventStatusSubmitted)

	return nil
}

// UpdateDetails applies a partial update to a not-yet-accepted event
func (e *Event) UpdateDetails(patch EventPatch) error {
	if e.HasAcceptedSelection() {
		return ErrSelectionsLocked
	}

	d := e.details
	if patch.Type != nil {
		if strings.TrimSpace(*patch.Type) == "" {
			return fmt.Errorf("event type is required")
		}
		d.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Date != nil {
		if patch.Date.Before(StartOfDay(time.Now())) {
			return fmt.Errorf("event date cannot be in the past")
		}
		d.Date = *patch.Date
	}
	if patch.Time != nil {
		d.Time = *patch.Time
	}
	if patch.Venue != nil {
		d.Venue = *patch.Venue
	}
	if patch.GuestCount != nil {
		if *patch.GuestCount <= 0 {
			return fmt.Errorf("guest count must be greater than 0")
		}
		d.GuestCount = *patch.GuestCount
	}
	if patch.Budget != nil {
		if *patch.Budget < 0 {
			return fmt.Errorf("budget cannot be negative")
		}
		d.Budget = *patch.Budget
	}
	if patch.SpecialRequests != nil {
		d.SpecialRequests = *patch.SpecialRequests
	}

	if patch.Selections == nil {
		e.details = d
		e.touch()
		return nil
	}

	normalized, err := normalizeSelections(patch.Selections)
	if err != nil {
		return err
	}
	e.details = d
	e.selections = normalized
	e.totalCost = totalOf(normalized)
	e.touch()

	// new selections go out to the vendors, same as SetVendorSelections
	e.raiseEvent(&event.VendorsSelected{
		EventID:   e.id,
		VendorIDs: e.VendorIDs(),
		TotalCost: e.totalCost,
		Timestamp: e.updatedAt,
	})
	e.changeStatus(EventStatusSubmitted)
	return nil
}

// RespondToBooking records a vendor's accept/reject on every selection it
// owns and recomputes the event status. It reports whether every vendor has
// now accepted.
func (e *Event) RespondToBooking(vendorID string, status SelectionStatus) (bool, error) {
	if status != SelectionAccepted && status != SelectionRejected {
		return false, fmt.Errorf("%w: selection status must be accepted or rejected", ErrInvalidStatus)
	}
	if !e.HasVendor(vendorID) {
		return false, ErrNotSelected
	}
	switch e.status {
	case EventStatusSubmitted, EventStatusPending, EventStatusConfirmed, EventStatusCancelled:
	default:
		return false, fmt.Errorf("%w: event is %s", ErrInvalidStatus, e.status)
	}

	for i := range e.selections {
		if e.selections[i].VendorID == vendorID {
			e.selections[i].Status = status
		}
	}
	e.touch()

	e.raiseEvent(&event.SelectionResponded{
		EventID:   e.id,
		VendorID:  vendorID,
		Status:    string(status),
		Timestamp: e.updatedAt,
	})
	e.changeStatus(DeriveStatus(e.selections))

	return e.AllAccepted(), nil
}

// DeriveStatus computes the event status implied by the selection responses
func DeriveStatus(selections []VendorSelection) EventStatus {
	allResponded := lo.EveryBy(selections, func(s VendorSelection) bool {
		return s.Status == SelectionAccepted || s.Status == SelectionRejected
	})
	if !allResponded {
		return EventStatusPending
	}
	if lo.EveryBy(selections, func(s VendorSelection) bool { return s.Status == SelectionAccepted }) {
		return EventStatusConfirmed
	}
	if lo.SomeBy(selections, func(s VendorSelection) bool { return s.Status == SelectionAccepted }) {
		return EventStatusPending
	}
	return EventStatusCancelled
}

// IsStale reports whether the event date has passed without any vendor acceptance
func (e *Event) IsStale(now time.Time) bool {
	if !e.details.Date.Before(StartOfDay(now)) {
		return false
	}
	switch e.status {
	case EventStatusDraft, EventStatusPending, EventStatusSubmitted, EventStatusDropped:
	default:
		return false
	}
	return !e.HasAcceptedSelection()
}

// MarkDropped flags a stale event. Returns false when it was already dropped.
func (e *Event) MarkDropped() bool {
	if e.status == EventStatusDropped {
		return false
	}
	e.touch()
	e.changeStatus(EventStatusDropped)
	return true
}

// Complete closes a confirmed event
func (e *Event) Complete() error {
	if e.status != EventStatusConfirmed {
		return fmt.Errorf("%w: only confirmed events can be completed", ErrInvalidStatus)
	}
	e.touch()
	e.changeStatus(EventStatusCompleted)
	return nil
}

// MarkDeleted records the deletion for subscribers; the repository removes the document
func (e *Event) MarkDeleted() {
	e.raiseEvent(&event.EventDeleted{
		EventID:   e.id,
		HostID:    e.hostID,
		Timestamp: time.Now(),
	})
}

// BelongsTo reports host ownership
func (e *Event) BelongsTo(hostID string) bool {
	return e.hostID == hostID
}

// HasVendor reports whether the vendor owns at least one selection
func (e *Event) HasVendor(vendorID string) bool {
	return lo.ContainsBy(e.selections, func(s VendorSelection) bool { return s.VendorID == vendorID })
}

func (e *Event) HasAcceptedSelection() bool {
	return lo.SomeBy(e.selections, func(s VendorSelection) bool { return s.Status == SelectionAccepted })
}

func (e *Event) AllAccepted() bool {
	return len(e.selections) > 0 &&
		lo.EveryBy(e.selections, func(s VendorSelection) bool { return s.Status == SelectionAccepted })
}

// AcceptedVendorIDs returns each accepting vendor once
func (e *Event) AcceptedVendorIDs() []string {
	accepted := lo.Filter(e.selections, func(s VendorSelection, _ int) bool { return s.Status == SelectionAccepted })
	return lo.Uniq(lo.Map(accepted, func(s VendorSelection, _ int) string { return s.VendorID }))
}

// VendorIDs returns each selected vendor once
func (e *Event) VendorIDs() []string {
	return lo.Uniq(lo.Map(e.selections, func(s VendorSelection, _ int) string { return s.VendorID }))
}

// SelectionsFor returns the selections owned by one vendor
func (e *Event) SelectionsFor(vendorID string) []VendorSelection {
	return lo.Filter(e.selections, func(s VendorSelection, _ int) bool { return s.VendorID == vendorID })
}

func (e *Event) touch() {
	e.version++
	e.updatedAt = time.Now()
}

func (e *Event) changeStatus(status EventStatus) {
	if e.status == status {
		return
	}
	old := e.status
	e.status = status
	e.raiseEvent(&event.EventStatusChanged{
		EventID:   e.id,
		OldStatus: string(old),
		NewStatus: string(status),
		Timestamp: e.updatedAt,
	})
}

func normalizeSelections(selections []VendorSelection) ([]VendorSelection, error) {
	if len(selections) == 0 {
		return nil, fmt.Errorf("at least one vendor selection is required")
	}
	out := make([]VendorSelection, len(selections))
	for i, s := range selections {
		if s.VendorID == "" || s.ServiceID == "" {
			return nil, fmt.Errorf("selection %d: vendor and service are required", i)
		}
		if s.Price < 0 {
			return nil, fmt.Errorf("selection %d: price cannot be negative", i)
		}
		s.Status = SelectionPending
		out[i] = s
	}
	return out, nil
}

func totalOf(selections []VendorSelection) int64 {
	return lo.SumBy(selections, func(s VendorSelection) int64 { return s.Price })
}

// StartOfDay truncates t to local midnight
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (e *Event) raiseEvent(evt event.DomainEvent) {
	e.uncommittedEvents = append(e.uncommittedEvents, evt)
}

// GetUncommittedEvents returns events raised since the last save
func (e *Event) GetUncommittedEvents() []event.DomainEvent {
	return e.uncommittedEvents
}

// MarkEventsAsCommitted clears uncommitted events
func (e *Event) MarkEventsAsCommitted() {
	e.uncommittedEvents = nil
}

// Getters
func (e *Event) ID() string                    { return e.id }
func (e *Event) HostID() string                { return e.hostID }
func (e *Event) Details() EventDetails         { return e.details }
func (e *Event) Date() time.Time               { return e.details.Date }
func (e *Event) TotalCost() int64              { return e.totalCost }
func (e *Event) Status() EventStatus           { return e.status }
func (e *Event) Version() int                  { return e.version }
func (e *Event) CreatedAt() time.Time          { return e.createdAt }
func (e *Event) UpdatedAt() time.Time          { return e.updatedAt }
func (e *Event) Selections() []VendorSelection { return append([]VendorSelection(nil), e.selections...) }
