package http

import (
	"io"
	"net/http"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/services"
	"party-paradise/internal/domain/aggregate"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/middleware"
	"party-paradise/pkg/response"

	"github.com/go-chi/chi/v5"
)

// HTTPPaymentController handles HTTP requests for payments and vendor earnings
type HTTPPaymentController struct {
	paymentService  *services.PaymentService
	earningsService *services.EarningsService
}

// NewHTTPPaymentController creates a new payment controller
func NewHTTPPaymentController(paymentService *services.PaymentService, earningsService *services.EarningsService) *HTTPPaymentController {
	return &HTTPPaymentController{
		paymentService:  paymentService,
		earningsService: earningsService,
	}
}

// CreateOrder handles POST /payments/create-order
func (c *HTTPPaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		EventID     string `json:"eventId"`
		VendorID    string `json:"vendorId"`
		Amount      int64  `json:"amount"`
		PackageName string `json:"packageName"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	order, err := c.paymentService.CreateOrder(r.Context(), &command.CreatePaymentOrder{
		EventID:     req.EventID,
		HostID:      p.UserID,
		VendorID:    req.VendorID,
		Amount:      req.Amount,
		PackageName: req.PackageName,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, order)
}

// VerifyPayment handles POST /payments/verify-payment
func (c *HTTPPaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	payment, err := c.paymentService.VerifyPayment(r.Context(), &command.VerifyPayment{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, payment)
}

// Webhook handles POST /payments/webhook. The gateway expects a 2xx for any
// verified notification, including failed payments.
func (c *HTTPPaymentController) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Failed to read webhook body"))
		return
	}

	payment, err := c.paymentService.ConfirmWebhook(r.Context(), payload)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}
	if payment == nil {
		response.SendSuccess(w, r, map[string]string{"message": "payment not successful"})
		return
	}

	response.SendSuccess(w, r, payment)
}

// EventPayments handles GET /payments/event/{eventId}
func (c *HTTPPaymentController) EventPayments(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	payments, err := c.paymentService.ListEventPayments(r.Context(), chi.URLParam(r, "eventId"), p.UserID, p.Role)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, payments)
}

// VendorPayments handles GET /payments/vendor-payments
func (c *HTTPPaymentController) VendorPayments(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	result, err := c.paymentService.VendorPayments(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// GetEarnings handles GET /earnings
func (c *HTTPPaymentController) GetEarnings(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	earnings, err := c.earningsService.GetEarnings(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, earnings)
}

// Withdraw handles POST /earnings/withdraw
func (c *HTTPPaymentController) Withdraw(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	earnings, err := c.earningsService.Withdraw(r.Context(), &command.RequestWithdrawal{
		VendorID: p.UserID,
		Amount:   req.Amount,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, earnings)
}

// UpdateBankDetails handles PUT /earnings/bank-details
func (c *HTTPPaymentController) UpdateBankDetails(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		AccountHolderName string `json:"accountHolderName"`
		AccountNumber     string `json:"accountNumber"`
		IFSCCode          string `json:"ifscCode"`
		BankName          string `json:"bankName"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	earnings, err := c.earningsService.UpdateBankDetails(r.Context(), &command.UpdateBankDetails{
		VendorID: p.UserID,
		Details: aggregate.BankDetails{
			AccountHolderName: req.AccountHolderName,
			AccountNumber:     req.AccountNumber,
			IFSCCode:          req.IFSCCode,
			BankName:          req.BankName,
		},
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, earnings)
}
