package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignIsHexSHA256(t *testing.T) {
	sig := Sign("secret", "order_1", "pay_1")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, Sign("secret", "order_1", "pay_1"))
}

func TestVerify(t *testing.T) {
	sig := Sign("secret", "order_1", "pay_1")

	assert.True(t, Verify("secret", "order_1", "pay_1", sig))
	assert.False(t, Verify("other", "order_1", "pay_1", sig))
	assert.False(t, Verify("secret", "order_2", "pay_1", sig))
	assert.False(t, Verify("secret", "order_1", "pay_1", "deadbeef"))
	assert.False(t, Verify("secret", "order_1", "pay_1", ""))
}
