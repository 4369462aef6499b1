package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"party-paradise/internal/infrastructure/bus"
	"party-paradise/internal/infrastructure/gateway"
	"party-paradise/internal/infrastructure/memory"
	"party-paradise/pkg/jwt"
	"party-paradise/pkg/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "e2e-signature-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type client struct {
	t      *testing.T
	server *httptest.Server
}

func newClient(t *testing.T) *client {
	t.Helper()
	return newClientWithHealth(t, nil)
}

func newClientWithHealth(t *testing.T, healthCheck func() error) *client {
	t.Helper()
	eventBus := bus.NewInMemoryEventBus()
	require.NoError(t, eventBus.Start(context.Background()))

	a, err := New(Dependencies{
		UnitOfWorkFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		EventBus:          eventBus,
		Gateway:           gateway.NewPaymentMock(),
		JWTManager:        jwt.NewJWTManager("e2e-jwt-secret", time.Hour),
		SignatureSecret:   secret,
		Currency:          "VND",
		RequestTimeout:    5 * time.Second,
		HealthCheck:       healthCheck,
	})
	require.NoError(t, err)

	server := httptest.NewServer(a.Router)
	t.Cleanup(server.Close)
	return &client{t: t, server: server}
}

// do sends a JSON request and decodes the envelope; out receives data when non-nil
func (c *client) do(method, path, token string, body interface{}, out interface{}) (int, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && len(env.Data) > 0 {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode, env
}

type account struct {
	Token string `json:"token"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (c *client) register(name, userType, serviceType string) account {
	c.t.Helper()
	body := map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret1",
		"userType": userType,
		"district": "District 1",
	}
	if userType == "vendor" {
		body["businessName"] = name + " Studio"
		body["serviceType"] = serviceType
	}
	var acc account
	status, env := c.do(http.MethodPost, "/api/auth/register", "", body, &acc)
	require.Equal(c.t, http.StatusCreated, status, "register %s: %+v", name, env.Error)
	return acc
}

type eventBody struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	TotalCost       int64  `json:"totalCost"`
	SelectedVendors []struct {
		VendorID string `json:"vendorId"`
		Status   string `json:"status"`
	} `json:"selectedVendors"`
}

func TestBookingPaymentAndCancellationFlow(t *testing.T) {
	c := newClient(t)
	host := c.register("host", "host", "")
	vendorA := c.register("vendora", "vendor", "catering")
	vendorB := c.register("vendorb", "vendor", "photography")

	var evt eventBody
	status, env := c.do(http.MethodPost, "/api/events", host.Token, map[string]interface{}{
		"eventType":  "wedding",
		"eventName":  "Garden Wedding",
		"eventDate":  time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
		"guestCount": 100,
	}, &evt)
	require.Equal(t, http.StatusCreated, status, "%+v", env.Error)
	assert.Equal(t, "draft", evt.Status)

	status, env = c.do(http.MethodPut, "/api/events/"+evt.ID+"/vendors", host.Token, map[string]interface{}{
		"selectedVendors": []map[string]interface{}{
			{"vendorId": vendorA.User.ID, "serviceId": "svc-a", "packageName": "Gold", "price": 5000},
			{"vendorId": vendorB.User.ID, "serviceId": "svc-b", "packageName": "Silver", "price": 3000},
		},
	}, &evt)
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)
	assert.Equal(t, int64(8000), evt.TotalCost)
	assert.Equal(t, "submitted", evt.Status)

	var outcome struct {
		Event              eventBody `json:"event"`
		AllVendorsAccepted bool      `json:"allVendorsAccepted"`
	}
	status, _ = c.do(http.MethodPut, "/api/events/bookings/"+evt.ID+"/status", vendorA.Token, map[string]string{"status": "accepted"}, &outcome)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, outcome.AllVendorsAccepted)

	status, _ = c.do(http.MethodPut, "/api/events/bookings/"+evt.ID+"/status", vendorB.Token, map[string]string{"status": "rejected"}, &outcome)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pending", outcome.Event.Status)

	var order struct {
		OrderID string `json:"orderId"`
		KeyID   string `json:"keyId"`
	}
	status, env = c.do(http.MethodPost, "/api/payments/create-order", host.Token, map[string]interface{}{
		"eventId":  evt.ID,
		"vendorId": vendorA.User.ID,
		"amount":   5000,
	}, &order)
	require.Equal(t, http.StatusCreated, status, "%+v", env.Error)
	require.NotEmpty(t, order.OrderID)

	// forged signature
	status, env = c.do(http.MethodPost, "/api/payments/verify-payment", host.Token, map[string]string{
		"orderId":   order.OrderID,
		"paymentId": "pay_a",
		"signature": "deadbeef",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_SIGNATURE", env.Error.Code)

	var payment struct {
		Status string `json:"status"`
	}
	status, _ = c.do(http.MethodPost, "/api/payments/verify-payment", host.Token, map[string]string{
		"orderId":   order.OrderID,
		"paymentId": "pay_a",
		"signature": signature.Sign(secret, order.OrderID, "pay_a"),
	}, &payment)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", payment.Status)

	var earnings struct {
		PendingAmount int64 `json:"pendingAmount"`
	}
	status, _ = c.do(http.MethodGet, "/api/earnings", vendorA.Token, nil, &earnings)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(5000), earnings.PendingAmount)

	var cancelled struct {
		Refunds []struct {
			VendorID string `json:"vendorId"`
			Status   string `json:"status"`
			Amount   int64  `json:"amount"`
		} `json:"refunds"`
	}
	status, env = c.do(http.MethodDelete, "/api/events/"+evt.ID, host.Token, nil, &cancelled)
	require.Equal(t, http.StatusOK, status, "%+v", env.Error)
	require.Len(t, cancelled.Refunds, 1)
	assert.Equal(t, vendorA.User.ID, cancelled.Refunds[0].VendorID)
	assert.Equal(t, "refunded", cancelled.Refunds[0].Status)
	assert.Equal(t, int64(5000), cancelled.Refunds[0].Amount)

	var ledger struct {
		PendingAmount  int64 `json:"pendingAmount"`
		RefundedAmount int64 `json:"refundedAmount"`
		Transactions   []struct {
			Type   string `json:"type"`
			Amount int64  `json:"amount"`
		} `json:"transactions"`
		Reconciled bool `json:"reconciled"`
	}
	status, _ = c.do(http.MethodGet, "/api/earnings", vendorA.Token, nil, &ledger)
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, ledger.PendingAmount)
	assert.Equal(t, int64(5000), ledger.RefundedAmount)
	require.NotEmpty(t, ledger.Transactions)
	assert.Equal(t, int64(-5000), ledger.Transactions[0].Amount)
	assert.True(t, ledger.Reconciled)

	status, env = c.do(http.MethodGet, "/api/events/"+evt.ID, host.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAuthorizationGuards(t *testing.T) {
	c := newClient(t)
	host := c.register("host", "host", "")
	vendor := c.register("vendor", "vendor", "music")

	status, env := c.do(http.MethodGet, "/api/events/my-events", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, env = c.do(http.MethodGet, "/api/events/my-events", vendor.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = c.do(http.MethodGet, "/api/admin/reports", host.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = c.do(http.MethodGet, "/api/events/my-events", host.Token, nil, nil)
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Meta)
	assert.Zero(t, env.Meta.Total)

	status, env = c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "root",
		"email":    "root@example.com",
		"password": "secret1",
		"userType": "admin",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	resp, err := http.Get(c.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])

	down := newClientWithHealth(t, func() error { return errors.New("no primary") })
	resp, err = http.Get(down.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
