package gateway

import (
	"context"
	"errors"
)

// ErrWebhookRejected is returned when a webhook payload fails verification
var ErrWebhookRejected = errors.New("webhook rejected")

// OrderRequest describes an order to open with the payment provider
type OrderRequest struct {
	Amount      int64
	Currency    string
	Description string
	ItemName    string
}

// Order is the provider's answer to an OrderRequest
type Order struct {
	OrderID     string
	Amount      int64
	Currency    string
	CheckoutURL string
	QRCode      string
}

// WebhookPayment is a verified payment notification
type WebhookPayment struct {
	OrderID   string
	PaymentID string
	Amount    int64
	Success   bool
}

// PaymentGateway is the external payment provider
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	// Refund returns the provider's refund id
	Refund(ctx context.Context, orderID string, amount int64, reason string) (string, error)
	VerifyWebhook(ctx context.Context, payload []byte) (*WebhookPayment, error)
	KeyID() string
}
