package aggregate

import (
	"fmt"
	"time"

	"party-paradise/internal/domain/event"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentState is the persisted shape of a Payment
type PaymentState struct {
	ID                string
	EventID           string
	HostID            string
	VendorID          string
	Amount            int64
	Currency          string
	PackageName       string
	OrderID           string
	ExternalPaymentID string
	Status            PaymentStatus
	RefundAmount      int64
	RefundID          string
	RefundedAt        *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Payment is one host-to-vendor settlement for an event
type Payment struct {
	id                string
	eventID           string
	hostID            string
	vendorID          string
	amount            int64
	currency          string
	packageName       string
	orderID           string
	externalPaymentID string
	status            PaymentStatus
	refundAmount      int64
	refundID          string
	refundedAt        *time.Time
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	uncommittedEvents []event.DomainEvent
}

// NewPayment creates a pending payment for an external order
func NewPayment(eventID, hostID, vendorID string, amount int64, currency, packageName, orderID string) (*Payment, error) {
	if eventID == "" {
		return nil, fmt.Errorf("eventID cannot be empty")
	}
	if hostID == "" {
		return nil, fmt.Errorf("hostID cannot be empty")
	}
	if vendorID == "" {
		return nil, fmt.Errorf("vendorID cannot be empty")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}
	if orderID == "" {
		return nil, fmt.Errorf("orderID cannot be empty")
	}

	now := time.Now()
	p := &Payment{
		id:          uuid.New().String(),
		eventID:     eventID,
		hostID:      hostID,
		vendorID:    vendorID,
		amount:      amount,
		currency:    currency,
		packageName: packageName,
		orderID:     orderID,
		status:      PaymentStatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}

	p.raiseEvent(&event.PaymentCreated{
		PaymentID: p.id,
		EventID:   eventID,
		HostID:    hostID,
		VendorID:  vendorID,
		OrderID:   orderID,
		Amount:    amount,
		Currency:  currency,
		Timestamp: now,
	})

	return p, nil
}

// ReconstructPayment rebuilds a payment from storage without validation
func ReconstructPayment(s PaymentState) *Payment {
	return &Payment{
		id:                s.ID,
		eventID:           s.EventID,
		hostID:            s.HostID,
		vendorID:          s.VendorID,
		amount:            s.Amount,
		currency:          s.Currency,
		packageName:       s.PackageName,
		orderID:           s.OrderID,
		externalPaymentID: s.ExternalPaymentID,
		status:            s.Status,
		refundAmount:      s.RefundAmount,
		refundID:          s.RefundID,
		refundedAt:        s.RefundedAt,
		version:           s.Version,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
}

// State returns the persisted fields
func (p *Payment) State() PaymentState {
	return PaymentState{
		ID:                p.id,
		EventID:           p.eventID,
		HostID:            p.hostID,
		VendorID:          p.vendorID,
		Amount:            p.amount,
		Currency:          p.currency,
		PackageName:       p.packageName,
		OrderID:           p.orderID,
		ExternalPaymentID: p.externalPaymentID,
		Status:            p.status,
		RefundAmount:      p.refundAmount,
		RefundID:          p.refundID,
		RefundedAt:        p.refundedAt,
		Version:           p.version,
		CreatedAt:         p.createdAt,
		UpdatedAt:         p.updatedAt,
	}
}

// MarkCompleted settles a pending payment
func (p *Payment) MarkCompleted(externalPaymentID string) error {
	if p.status != PaymentStatusPending {
		return fmt.Errorf("cannot complete payment with current status: %s", p.status)
	}
	p.externalPaymentID = externalPaymentID
	p.setStatus(PaymentStatusCompleted)
	return nil
}

// MarkRefunded reverses a completed payment in full
func (p *Payment) MarkRefunded(refundID string) error {
	if p.status != PaymentStatusCompleted {
		return fmt.Errorf("cannot refund payment with current status: %s", p.status)
	}
	now := time.Now()
	p.refundAmount = p.amount
	p.refundID = refundID
	p.refundedAt = &now
	p.setStatus(PaymentStatusRefunded)
	return nil
}

// SetRefundID replaces the local refund reference with the gateway's
func (p *Payment) SetRefundID(refundID string) {
	if p.status != PaymentStatusRefunded || refundID == "" {
		return
	}
	p.refundID = refundID
	p.version++
	p.updatedAt = time.Now()
}

// MarkFailed marks a pending payment as failed
func (p *Payment) MarkFailed() error {
	if p.status != PaymentStatusPending {
		return fmt.Errorf("cannot fail payment with current status: %s", p.status)
	}
	p.setStatus(PaymentStatusFailed)
	return nil
}

func (p *Payment) setStatus(status PaymentStatus) {
	old := p.status
	p.status = status
	p.version++
	p.updatedAt = time.Now()

	p.raiseEvent(&event.PaymentStatusChanged{
		PaymentID: p.id,
		EventID:   p.eventID,
		VendorID:  p.vendorID,
		OldStatus: string(old),
		NewStatus: string(status),
		Amount:    p.amount,
		Timestamp: p.updatedAt,
	})
}

func (p *Payment) IsCompleted() bool { return p.status == PaymentStatusCompleted }

func (p *Payment) raiseEvent(evt event.DomainEvent) {
	p.uncommittedEvents = append(p.uncommittedEvents, evt)
}

// GetUncommittedEvents returns all uncommitted events
func (p *Payment) GetUncommittedEvents() []event.DomainEvent {
	return p.uncommittedEvents
}

// MarkEventsAsCommitted clears uncommitted events
func (p *Payment) MarkEventsAsCommitted() {
	p.uncommittedEvents = nil
}

// Getters
func (p *Payment) ID() string                { return p.id }
func (p *Payment) EventID() string           { return p.eventID }
func (p *Payment) HostID() string            { return p.hostID }
func (p *Payment) VendorID() string          { return p.vendorID }
func (p *Payment) Amount() int64             { return p.amount }
func (p *Payment) Currency() string          { return p.currency }
func (p *Payment) PackageName() string       { return p.packageName }
func (p *Payment) OrderID() string           { return p.orderID }
func (p *Payment) ExternalPaymentID() string { return p.externalPaymentID }
func (p *Payment) Status() PaymentStatus     { return p.status }
func (p *Payment) RefundAmount() int64       { return p.refundAmount }
func (p *Payment) RefundID() string          { return p.refundID }
func (p *Payment) RefundedAt() *time.Time    { return p.refundedAt }
func (p *Payment) Version() int              { return p.version }
func (p *Payment) CreatedAt() time.Time      { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time      { return p.updatedAt }
