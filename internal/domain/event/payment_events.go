package event

import "time"

// PaymentCreated event
type PaymentCreated struct {
	PaymentID string    `json:"payment_id"`
	EventID   string    `json:"event_id"`
	HostID    string    `json:"host_id"`
	VendorID  string    `json:"vendor_id"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *PaymentCreated) EventType() string     { return "PaymentCreated" }
func (e *PaymentCreated) AggregateID() string   { return e.PaymentID }
func (e *PaymentCreated) OccurredAt() time.Time { return e.Timestamp }
func (e *PaymentCreated) Version() int          { return 1 }

// PaymentStatusChanged event
type PaymentStatusChanged struct {
	PaymentID string    `json:"payment_id"`
	EventID   string    `json:"event_id"`
	VendorID  string    `json:"vendor_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *PaymentStatusChanged) EventType() string     { return "PaymentStatusChanged" }
func (e *PaymentStatusChanged) AggregateID() string   { return e.PaymentID }
func (e *PaymentStatusChanged) OccurredAt() time.Time { return e.Timestamp }
func (e *PaymentStatusChanged) Version() int          { return 1 }
