package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentLifecycle(t *testing.T) {
	p, err := NewPayment("e1", "h1", "v1", 5000, "INR", "Gold", "order_1")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, p.Status())

	assert.Error(t, p.MarkRefunded("r1"))

	require.NoError(t, p.MarkCompleted("pay_1"))
	assert.True(t, p.IsCompleted())
	assert.Equal(t, "pay_1", p.ExternalPaymentID())
	assert.Error(t, p.MarkCompleted("pay_2"))

	require.NoError(t, p.MarkRefunded("refund_1"))
	assert.Equal(t, PaymentStatusRefunded, p.Status())
	assert.Equal(t, int64(5000), p.RefundAmount())
	assert.NotNil(t, p.RefundedAt())

	p.SetRefundID("gw_refund")
	assert.Equal(t, "gw_refund", p.RefundID())

	assert.Len(t, p.GetUncommittedEvents(), 3)
}

func TestNewPaymentValidation(t *testing.T) {
	_, err := NewPayment("e1", "h1", "v1", 0, "INR", "", "order_1")
	assert.Error(t, err)
	_, err = NewPayment("e1", "h1", "", 10, "INR", "", "order_1")
	assert.Error(t, err)
	_, err = NewPayment("e1", "h1", "v1", 10, "INR", "", "")
	assert.Error(t, err)
}
