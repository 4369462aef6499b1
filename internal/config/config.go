package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the process configuration read from the environment
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// MONGO_URI=memory runs on the in-process store
	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/?replicaSet=rs0"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"party_paradise"`
	MongoTimeout  time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"168h"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	PaymentGateway         string `envconfig:"PAYMENT_GATEWAY" default:"mock"`
	PaymentSignatureSecret string `envconfig:"PAYMENT_SIGNATURE_SECRET" required:"true"`
	PaymentCurrency        string `envconfig:"PAYMENT_CURRENCY" default:"VND"`

	PayOSClientID    string `envconfig:"PAYOS_CLIENT_ID"`
	PayOSAPIKey      string `envconfig:"PAYOS_API_KEY"`
	PayOSChecksumKey string `envconfig:"PAYOS_CHECKSUM_KEY"`
	PayOSPartnerCode string `envconfig:"PAYOS_PARTNER_CODE"`
	PayOSReturnURL   string `envconfig:"PAYOS_RETURN_URL" default:"http://localhost:3000/payment/success"`
	PayOSCancelURL   string `envconfig:"PAYOS_CANCEL_URL" default:"http://localhost:3000/payment/cancel"`

	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// UseMemoryStore reports whether persistence is the in-process store
func (c Config) UseMemoryStore() bool {
	return strings.EqualFold(c.MongoURI, "memory")
}

// Load reads an optional .env file and then the environment
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" || c.PaymentSignatureSecret == "" {
		return fmt.Errorf("JWT_SECRET and PAYMENT_SIGNATURE_SECRET must not be empty")
	}
	switch strings.ToLower(c.PaymentGateway) {
	case "mock":
	case "payos":
		if c.PayOSClientID == "" || c.PayOSAPIKey == "" || c.PayOSChecksumKey == "" {
			return fmt.Errorf("PAYOS_CLIENT_ID, PAYOS_API_KEY and PAYOS_CHECKSUM_KEY are required when PAYMENT_GATEWAY=payos")
		}
	default:
		return fmt.Errorf("unknown PAYMENT_GATEWAY %q", c.PaymentGateway)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive")
	}
	return nil
}
