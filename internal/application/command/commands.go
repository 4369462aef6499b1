package command

import (
	"party-paradise/internal/domain/aggregate"
)

// ============================================
// Auth Commands
// ============================================

// RegisterUser represents a sign-up request
type RegisterUser struct {
	Name         string
	Email        string
	Password     string
	Role         aggregate.UserRole
	District     string
	Phone        string
	BusinessName string
	ServiceType  string
	Description  string
}

// LoginUser represents a credentials check
type LoginUser struct {
	Email    string
	Password string
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string
	User  *aggregate.User
}

// ============================================
// Event Commands
// ============================================

// CreateEvent drafts a new event for a host
type CreateEvent struct {
	HostID  string
	Details aggregate.EventDetails
}

// SetEventVendors submits the vendor selection list
type SetEventVendors struct {
	EventID    string
	HostID     string
	Selections []aggregate.VendorSelection
}

// UpdateEvent applies a partial update
type UpdateEvent struct {
	EventID string
	HostID  string
	Patch   aggregate.EventPatch
}

// UpdateSelectionStatus is a vendor's response to a booking
type UpdateSelectionStatus struct {
	EventID  string
	VendorID string
	Status   aggregate.SelectionStatus
}

// UpdateSelectionStatusResult reports the recomputed event
type UpdateSelectionStatusResult struct {
	Event              *aggregate.Event
	AllVendorsAccepted bool
}

// CancelEvent deletes an event after reversing its settled payments
type CancelEvent struct {
	EventID string
	HostID  string
}

// Refund outcome statuses
const (
	RefundStatusRefunded       = "refunded"
	RefundStatusFailed         = "refund_failed"
	RefundStatusNoPaymentFound = "no_payment_found"
)

// RefundOutcome is the per-vendor result of a cancellation
type RefundOutcome struct {
	VendorID  string `json:"vendorId"`
	Status    string `json:"status"`
	PaymentID string `json:"paymentId,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	RefundID  string `json:"refundId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CancelEventResult summarizes a cancellation
type CancelEventResult struct {
	EventID string          `json:"eventId"`
	Refunds []RefundOutcome `json:"refunds"`
	Message string          `json:"message"`
}

// CompleteEvent closes a confirmed event and clears vendor funds
type CompleteEvent struct {
	EventID string
	HostID  string
}

// ReleaseOutcome is the per-vendor result of completing an event
type ReleaseOutcome struct {
	VendorID string `json:"vendorId"`
	Amount   int64  `json:"amount"`
	Released bool   `json:"released"`
	Error    string `json:"error,omitempty"`
}

// CompleteEventResult summarizes a completion
type CompleteEventResult struct {
	Event    *aggregate.Event
	Releases []ReleaseOutcome
}

// ============================================
// Payment Commands
// ============================================

// CreatePaymentOrder opens a gateway order for one vendor of an event
type CreatePaymentOrder struct {
	EventID     string
	HostID      string
	VendorID    string
	Amount      int64
	PackageName string
}

// CreatePaymentOrderResult is what the client needs to start checkout
type CreatePaymentOrderResult struct {
	PaymentID   string `json:"paymentId"`
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"keyId"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	QRCode      string `json:"qrCode,omitempty"`
}

// VerifyPayment confirms a client-reported payment by signature
type VerifyPayment struct {
	OrderID   string
	PaymentID string
	Signature string
}

// ConfirmWebhookPayment confirms a payment from a gateway callback
type ConfirmWebhookPayment struct {
	Payload []byte
}

// ============================================
// Earnings Commands
// ============================================

// RequestWithdrawal moves available funds out of a vendor ledger
type RequestWithdrawal struct {
	VendorID string
	Amount   int64
}

// UpdateBankDetails replaces a vendor's payout account
type UpdateBankDetails struct {
	VendorID string
	Details  aggregate.BankDetails
}

// ============================================
// Service Commands
// ============================================

// CreateService lists a new vendor package
type CreateService struct {
	VendorID     string
	PackageName  string
	Description  string
	Price        int64
	Duration     string
	Features     []string
	AvailableFor []string
}

// UpdateService edits a vendor package
type UpdateService struct {
	ServiceID string
	VendorID  string
	Patch     aggregate.ServicePatch
}

// DeleteService removes a vendor package
type DeleteService struct {
	ServiceID string
	VendorID  string
}

// ============================================
// Review & Message Commands
// ============================================

// SubmitReview rates a vendor for an event
type SubmitReview struct {
	HostID      string
	VendorID    string
	EventID     string
	Rating      int
	Text        string
	ServiceType string
}

// SendMessage sends a direct message
type SendMessage struct {
	SenderID   string
	ReceiverID string
	Text       string
}

// ============================================
// Admin Commands
// ============================================

// DeleteUser removes a non-admin account
type DeleteUser struct {
	UserID  string
	AdminID string
}
