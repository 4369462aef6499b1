package repository

import (
	"context"

	"party-paradise/internal/domain/aggregate"
)

// PaymentRepository persists payment records
type PaymentRepository interface {
	Save(ctx context.Context, payment *aggregate.Payment) error
	GetByID(ctx context.Context, id string) (*aggregate.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*aggregate.Payment, error)
	// FindCompleted returns the settled payment for an event/vendor pair
	FindCompleted(ctx context.Context, eventID, vendorID string) (*aggregate.Payment, error)
	ListByEvent(ctx context.Context, eventID string) ([]*aggregate.Payment, error)
	ListByVendor(ctx context.Context, vendorID string, status aggregate.PaymentStatus) ([]*aggregate.Payment, error)
	ListAll(ctx context.Context) ([]*aggregate.Payment, error)
}

// EarningsRepository persists vendor ledgers, one per vendor
type EarningsRepository interface {
	Save(ctx context.Context, earnings *aggregate.VendorEarnings) error
	GetByVendorID(ctx context.Context, vendorID string) (*aggregate.VendorEarnings, error)
}
