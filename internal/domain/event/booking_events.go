package event

import "time"

// EventCreated is raised when a host drafts a new event
type EventCreated struct {
	EventID   string    `json:"event_id"`
	HostID    string    `json:"host_id"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *EventCreated) EventType() string     { return "EventCreated" }
func (e *EventCreated) AggregateID() string   { return e.EventID }
func (e *EventCreated) OccurredAt() time.Time { return e.Timestamp }
func (e *EventCreated) Version() int          { return 1 }

// VendorsSelected is raised when the selection list is (re)submitted
type VendorsSelected struct {
	EventID   string    `json:"event_id"`
	VendorIDs []string  `json:"vendor_ids"`
	TotalCost int64     `json:"total_cost"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *VendorsSelected) EventType() string     { return "VendorsSelected" }
func (e *VendorsSelected) AggregateID() string   { return e.EventID }
func (e *VendorsSelected) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorsSelected) Version() int          { return 1 }

// SelectionResponded is raised when a vendor accepts or rejects a booking
type SelectionResponded struct {
	EventID   string    `json:"event_id"`
	VendorID  string    `json:"vendor_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *SelectionResponded) EventType() string     { return "SelectionResponded" }
func (e *SelectionResponded) AggregateID() string   { return e.EventID }
func (e *SelectionResponded) OccurredAt() time.Time { return e.Timestamp }
func (e *SelectionResponded) Version() int          { return 1 }

// EventStatusChanged event
type EventStatusChanged struct {
	EventID   string    `json:"event_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *EventStatusChanged) EventType() string     { return "EventStatusChanged" }
func (e *EventStatusChanged) AggregateID() string   { return e.EventID }
func (e *EventStatusChanged) OccurredAt() time.Time { return e.Timestamp }
func (e *EventStatusChanged) Version() int          { return 1 }

// EventDeleted event
type EventDeleted struct {
	EventID   string    `json:"event_id"`
	HostID    string    `json:"host_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *EventDeleted) EventType() string     { return "EventDeleted" }
func (e *EventDeleted) AggregateID() string   { return e.EventID }
func (e *EventDeleted) OccurredAt() time.Time { return e.Timestamp }
func (e *EventDeleted) Version() int          { return 1 }
