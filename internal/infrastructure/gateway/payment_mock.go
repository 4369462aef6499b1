package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lithammer/shortuuid/v3"
)

// PaymentMock is an in-process PaymentGateway for local runs and tests.
// Webhook payloads are trusted as-is.
type PaymentMock struct {
	mock        sync.Mutex
	Orders      map[string]Order
	Refunds     map[string]string
	FailRefunds bool
}

func NewPaymentMock() *PaymentMock {
	return &PaymentMock{
		Orders:  make(map[string]Order),
		Refunds: make(map[string]string),
	}
}

func (c *PaymentMock) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	order := Order{
		OrderID:  "order_" + shortuuid.New(),
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	c.Orders[order.OrderID] = order
	return &order, nil
}

func (c *PaymentMock) Refund(ctx context.Context, orderID string, amount int64, reason string) (string, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.FailRefunds {
		return "", fmt.Errorf("refund declined for order %s", orderID)
	}
	if _, ok := c.Orders[orderID]; !ok {
		return "", fmt.Errorf("unknown order %s", orderID)
	}

	refundID := "rfnd_" + shortuuid.New()
	c.Refunds[orderID] = refundID
	return refundID, nil
}

type mockWebhook struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Amount    int64  `json:"amount"`
	Success   bool   `json:"success"`
}

func (c *PaymentMock) VerifyWebhook(ctx context.Context, payload []byte) (*WebhookPayment, error) {
	var hook mockWebhook
	if err := json.Unmarshal(payload, &hook); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWebhookRejected, err)
	}
	if hook.OrderID == "" || hook.PaymentID == "" {
		return nil, fmt.Errorf("%w: missing order or payment id", ErrWebhookRejected)
	}
	return &WebhookPayment{
		OrderID:   hook.OrderID,
		PaymentID: hook.PaymentID,
		Amount:    hook.Amount,
		Success:   hook.Success,
	}, nil
}

func (c *PaymentMock) KeyID() string { return "mock_key" }

// RefundFor returns the refund id issued for orderID, if any
func (c *PaymentMock) RefundFor(orderID string) (string, bool) {
	c.mock.Lock()
	defer c.mock.Unlock()

	id, ok := c.Refunds[orderID]
	return id, ok
}
