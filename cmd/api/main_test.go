package main

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"party-paradise/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(port string) config.Config {
	return config.Config{
		Port:                   port,
		RequestTimeout:         5 * time.Second,
		MongoURI:               "memory",
		JWTSecret:              "jwt-secret",
		JWTTTL:                 time.Hour,
		PaymentGateway:         "mock",
		PaymentSignatureSecret: "signature-secret",
		PaymentCurrency:        "VND",
		SweepInterval:          time.Hour,
	}
}

func runAsync(ctx context.Context, cfg config.Config) <-chan error {
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()
	return done
}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, memoryConfig("0"))
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunReturnsServerErrorInsteadOfExiting(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	port := strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)

	select {
	case err := <-runAsync(context.Background(), memoryConfig(port)):
		assert.ErrorContains(t, err, "address already in use")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return on listen failure")
	}
}
