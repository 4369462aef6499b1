package services

import (
	"context"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/query"
	"party-paradise/internal/domain/aggregate"
)

// PaymentService handles payment operations
type PaymentService struct {
	createOrderHandler       *command.CreatePaymentOrderHandler
	verifyPaymentHandler     *command.VerifyPaymentHandler
	confirmWebhookHandler    *command.ConfirmWebhookPaymentHandler
	listEventPaymentsHandler *query.ListEventPaymentsHandler
	vendorPaymentsHandler    *query.VendorPaymentsHandler
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	createOrderHandler *command.CreatePaymentOrderHandler,
	verifyPaymentHandler *command.VerifyPaymentHandler,
	confirmWebhookHandler *command.ConfirmWebhookPaymentHandler,
	listEventPaymentsHandler *query.ListEventPaymentsHandler,
	vendorPaymentsHandler *query.VendorPaymentsHandler,
) *PaymentService {
	return &PaymentService{
		createOrderHandler:       createOrderHandler,
		verifyPaymentHandler:     verifyPaymentHandler,
		confirmWebhookHandler:    confirmWebhookHandler,
		listEventPaymentsHandler: listEventPaymentsHandler,
		vendorPaymentsHandler:    vendorPaymentsHandler,
	}
}

// CreateOrder opens a gateway order for one vendor of an event
func (s *PaymentService) CreateOrder(ctx context.Context, cmd *command.CreatePaymentOrder) (*command.CreatePaymentOrderResult, error) {
	return s.createOrderHandler.Handle(ctx, cmd)
}

// VerifyPayment completes a payment confirmed by the checkout client
func (s *PaymentService) VerifyPayment(ctx context.Context, cmd *command.VerifyPayment) (*query.PaymentView, error) {
	payment, err := s.verifyPaymentHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewPaymentView(payment)
	return &view, nil
}

// ConfirmWebhook completes a payment reported by the gateway. A nil view
// means the gateway reported a failed payment.
func (s *PaymentService) ConfirmWebhook(ctx context.Context, payload []byte) (*query.PaymentView, error) {
	payment, err := s.confirmWebhookHandler.Handle(ctx, &command.ConfirmWebhookPayment{Payload: payload})
	if err != nil || payment == nil {
		return nil, err
	}
	view := query.NewPaymentView(payment)
	return &view, nil
}

// ListEventPayments lists payments for an event
func (s *PaymentService) ListEventPayments(ctx context.Context, eventID, userID string, role aggregate.UserRole) ([]query.PaymentView, error) {
	return s.listEventPaymentsHandler.Handle(ctx, eventID, userID, role)
}

// VendorPayments lists completed payments received by a vendor
func (s *PaymentService) VendorPayments(ctx context.Context, vendorID string) (*query.VendorPaymentsResult, error) {
	return s.vendorPaymentsHandler.Handle(ctx, vendorID)
}

// EarningsService handles vendor ledger operations
type EarningsService struct {
	getEarningsHandler       *query.GetEarningsHandler
	withdrawalHandler        *command.RequestWithdrawalHandler
	updateBankDetailsHandler *command.UpdateBankDetailsHandler
}

// NewEarningsService creates a new earnings service
func NewEarningsService(
	getEarningsHandler *query.GetEarningsHandler,
	withdrawalHandler *command.RequestWithdrawalHandler,
	updateBankDetailsHandler *command.UpdateBankDetailsHandler,
) *EarningsService {
	return &EarningsService{
		getEarningsHandler:       getEarningsHandler,
		withdrawalHandler:        withdrawalHandler,
		updateBankDetailsHandler: updateBankDetailsHandler,
	}
}

// GetEarnings returns the vendor's ledger
func (s *EarningsService) GetEarnings(ctx context.Context, vendorID string) (*query.EarningsView, error) {
	return s.getEarningsHandler.Handle(ctx, vendorID)
}

// Withdraw moves available balance out of the ledger
func (s *EarningsService) Withdraw(ctx context.Context, cmd *command.RequestWithdrawal) (*query.EarningsView, error) {
	ledger, err := s.withdrawalHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewEarningsView(ledger)
	return &view, nil
}

// UpdateBankDetails stores the vendor's payout account
func (s *EarningsService) UpdateBankDetails(ctx context.Context, cmd *command.UpdateBankDetails) (*query.EarningsView, error) {
	ledger, err := s.updateBankDetailsHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewEarningsView(ledger)
	return &view, nil
}
