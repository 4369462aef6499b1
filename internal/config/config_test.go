package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PAYMENT_SIGNATURE_SECRET", "sig")
	t.Setenv("MONGO_URI", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "mock", cfg.PaymentGateway)
	assert.True(t, cfg.UseMemoryStore())
}

func TestLoad_PayOSRequiresCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PAYMENT_SIGNATURE_SECRET", "sig")
	t.Setenv("PAYMENT_GATEWAY", "payos")
	t.Setenv("PAYOS_CLIENT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PAYMENT_SIGNATURE_SECRET", "sig")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MongoIsDefaultStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PAYMENT_SIGNATURE_SECRET", "sig")
	t.Setenv("MONGO_URI", "")
	require.NoError(t, os.Unsetenv("MONGO_URI"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/?replicaSet=rs0", cfg.MongoURI)
	assert.False(t, cfg.UseMemoryStore())
	assert.True(t, Config{MongoURI: "MEMORY"}.UseMemoryStore())
}
