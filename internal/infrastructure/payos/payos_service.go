package payos

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"party-paradise/internal/infrastructure/gateway"

	payossdk "github.com/payOSHQ/payos-lib-golang"
)

// payOS caps descriptions at 25 characters
const maxDescriptionLength = 25

// Service wraps the official PayOS SDK as a gateway.PaymentGateway
type Service struct {
	config   *Config
	lastCode atomic.Int64
}

// Config holds the configuration for PayOS integration
type Config struct {
	ClientID    string
	APIKey      string
	ChecksumKey string
	PartnerCode string // Optional
	ReturnURL   string
	CancelURL   string
}

// NewService creates a new PayOS service with the official SDK
func NewService(config *Config) (*Service, error) {
	if config.ClientID == "" {
		return nil, fmt.Errorf("PAYOS_CLIENT_ID is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("PAYOS_API_KEY is required")
	}
	if config.ChecksumKey == "" {
		return nil, fmt.Errorf("PAYOS_CHECKSUM_KEY is required")
	}

	var err error
	if config.PartnerCode != "" {
		err = payossdk.Key(config.ClientID, config.APIKey, config.ChecksumKey, config.PartnerCode)
	} else {
		err = payossdk.Key(config.ClientID, config.APIKey, config.ChecksumKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PayOS: %w", err)
	}

	return &Service{config: config}, nil
}

// nextOrderCode returns a strictly increasing numeric order code
func (s *Service) nextOrderCode() int64 {
	for {
		now := time.Now().UnixMicro()
		last := s.lastCode.Load()
		if now <= last {
			now = last + 1
		}
		if s.lastCode.CompareAndSwap(last, now) {
			return now
		}
	}
}

// CreateOrder opens a payment link; the order id is the numeric order code
func (s *Service) CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	description := req.Description
	if len(description) > maxDescriptionLength {
		description = description[:maxDescriptionLength]
	}

	paymentRequest := payossdk.CheckoutRequestType{
		OrderCode:   s.nextOrderCode(),
		Amount:      int(req.Amount),
		Description: description,
		Items: []payossdk.Item{{
			Name:     req.ItemName,
			Quantity: 1,
			Price:    int(req.Amount),
		}},
		ReturnUrl: s.config.ReturnURL,
		CancelUrl: s.config.CancelURL,
	}

	response, err := payossdk.CreatePaymentLink(paymentRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	currency := response.Currency
	if currency == "" {
		currency = req.Currency
	}
	return &gateway.Order{
		OrderID:     strconv.FormatInt(response.OrderCode, 10),
		Amount:      int64(response.Amount),
		Currency:    currency,
		CheckoutURL: response.CheckoutUrl,
		QRCode:      response.QRCode,
	}, nil
}

// Refund cancels the payment link. payOS has no refund API for settled
// transfers, so the link id is returned as the refund reference.
func (s *Service) Refund(ctx context.Context, orderID string, amount int64, reason string) (string, error) {
	if _, err := strconv.ParseInt(orderID, 10, 64); err != nil {
		return "", fmt.Errorf("invalid payOS order code %q: %w", orderID, err)
	}

	response, err := payossdk.CancelPaymentLink(orderID, &reason)
	if err != nil {
		return "", fmt.Errorf("failed to cancel payment link: %w", err)
	}
	return response.Id, nil
}

// VerifyWebhook checks the checksum of a payOS webhook body
func (s *Service) VerifyWebhook(ctx context.Context, payload []byte) (*gateway.WebhookPayment, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrWebhookRejected, err)
	}

	webhook, err := CreateWebhookDataFromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrWebhookRejected, err)
	}

	data, err := payossdk.VerifyPaymentWebhookData(*webhook)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrWebhookRejected, err)
	}

	paymentID := data.Reference
	if paymentID == "" {
		paymentID = data.PaymentLinkId
	}
	return &gateway.WebhookPayment{
		OrderID:   strconv.FormatInt(data.OrderCode, 10),
		PaymentID: paymentID,
		Amount:    int64(data.Amount),
		Success:   webhook.Success && data.Code == "00",
	}, nil
}

func (s *Service) KeyID() string { return s.config.ClientID }

// CreateWebhookDataFromMap builds the SDK webhook type from a decoded body
func CreateWebhookDataFromMap(data map[string]interface{}) (*payossdk.WebhookType, error) {
	webhookType := &payossdk.WebhookType{}

	if code, ok := data["code"].(string); ok {
		webhookType.Code = code
	}
	if desc, ok := data["desc"].(string); ok {
		webhookType.Desc = desc
	}
	if success, ok := data["success"].(bool); ok {
		webhookType.Success = success
	}
	if signature, ok := data["signature"].(string); ok {
		webhookType.Signature = signature
	}

	dataObj, ok := data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("webhook data is missing")
	}

	webhookData := &payossdk.WebhookDataType{}

	switch v := dataObj["orderCode"].(type) {
	case float64:
		webhookData.OrderCode = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid orderCode: %w", err)
		}
		webhookData.OrderCode = parsed
	default:
		return nil, fmt.Errorf("orderCode is missing")
	}

	if amount, ok := dataObj["amount"].(float64); ok {
		webhookData.Amount = int(amount)
	}

	strField := func(key string) string {
		s, _ := dataObj[key].(string)
		return s
	}
	webhookData.Description = strField("description")
	webhookData.AccountNumber = strField("accountNumber")
	webhookData.Reference = strField("reference")
	webhookData.TransactionDateTime = strField("transactionDateTime")
	webhookData.Currency = strField("currency")
	webhookData.PaymentLinkId = strField("paymentLinkId")
	webhookData.Code = strField("code")
	webhookData.Desc = strField("desc")

	webhookType.Data = webhookData
	return webhookType, nil
}
