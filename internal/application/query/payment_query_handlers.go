package query

import (
	"context"
	stderrors "errors"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/pkg/errors"

	"github.com/samber/lo"
)

// ListEventPaymentsHandler lists the payments made for one event
type ListEventPaymentsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListEventPaymentsHandler creates a new event payments handler
func NewListEventPaymentsHandler(uowFactory repository.UnitOfWorkFactory) *ListEventPaymentsHandler {
	return &ListEventPaymentsHandler{uowFactory: uowFactory}
}

// Handle restricts non-admin callers to their own events
func (h *ListEventPaymentsHandler) Handle(ctx context.Context, eventID, userID string, role aggregate.UserRole) ([]PaymentView, error) {
	if eventID == "" {
		return nil, errors.NewValidationError("event id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if role != aggregate.RoleAdmin {
		evt, err := uow.EventRepository().GetByID(ctx, eventID)
		if err != nil {
			return nil, readError(err, "event")
		}
		if !evt.BelongsTo(userID) {
			return nil, errors.NewForbiddenError("not authorized to view payments for this event")
		}
	}

	payments, err := uow.PaymentRepository().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, readError(err, "payments")
	}
	return NewPaymentViews(payments), nil
}

// VendorPaymentsResult is the completed payments received by a vendor
type VendorPaymentsResult struct {
	Payments    []PaymentView `json:"payments"`
	TotalAmount int64         `json:"totalAmount"`
	Count       int           `json:"count"`
}

// VendorPaymentsHandler lists completed payments for a vendor
type VendorPaymentsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewVendorPaymentsHandler creates a new vendor payments handler
func NewVendorPaymentsHandler(uowFactory repository.UnitOfWorkFactory) *VendorPaymentsHandler {
	return &VendorPaymentsHandler{uowFactory: uowFactory}
}

// Handle processes the vendor payments query
func (h *VendorPaymentsHandler) Handle(ctx context.Context, vendorID string) (*VendorPaymentsResult, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	payments, err := uow.PaymentRepository().ListByVendor(ctx, vendorID, aggregate.PaymentStatusCompleted)
	if err != nil {
		return nil, readError(err, "payments")
	}

	return &VendorPaymentsResult{
		Payments:    NewPaymentViews(payments),
		TotalAmount: lo.SumBy(payments, func(p *aggregate.Payment) int64 { return p.Amount() }),
		Count:       len(payments),
	}, nil
}

// GetEarningsHandler returns a vendor's ledger
type GetEarningsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewGetEarningsHandler creates a new get earnings handler
func NewGetEarningsHandler(uowFactory repository.UnitOfWorkFactory) *GetEarningsHandler {
	return &GetEarningsHandler{uowFactory: uowFactory}
}

// Handle returns an all-zero ledger when the vendor has not earned yet
func (h *GetEarningsHandler) Handle(ctx context.Context, vendorID string) (*EarningsView, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	ledger, err := uow.EarningsRepository().GetByVendorID(ctx, vendorID)
	if stderrors.Is(err, repository.ErrNotFound) {
		ledger, err = aggregate.NewVendorEarnings(vendorID)
	}
	if err != nil {
		return nil, readError(err, "vendor earnings")
	}

	view := NewEarningsView(ledger)
	return &view, nil
}
