package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"party-paradise/internal/domain/event"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/samber/lo"
)

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionEarning    TransactionType = "earning"
	TransactionRefund     TransactionType = "refund"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus of a ledger entry
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

var (
	ErrInsufficientPending = errors.New("insufficient pending amount")
	ErrInsufficientBalance = errors.New("insufficient available balance")
)

// LedgerTransaction is an append-only entry. Amount is signed: refunds and
// withdrawals are negative.
type LedgerTransaction struct {
	ID          string
	EventID     string
	PaymentID   string
	Type        TransactionType
	Amount      int64
	Description string
	Timestamp   time.Time
	Status      TransactionStatus
}

// BankDetails is where withdrawals are paid out
type BankDetails struct {
	AccountHolderName string
	AccountNumber     string
	IFSCCode          string
	BankName          string
	IsVerified        bool
}

// VendorEarningsState is the persisted shape of a ledger
type VendorEarningsState struct {
	ID               string
	VendorID         string
	TotalEarnings    int64
	PendingAmount    int64
	AvailableBalance int64
	RefundedAmount   int64
	WithdrawnAmount  int64
	Transactions     []LedgerTransaction
	BankDetails      BankDetails
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VendorEarnings is the per-vendor balance ledger
type VendorEarnings struct {
	id                string
	vendorID          string
	totalEarnings     int64
	pendingAmount     int64
	availableBalance  int64
	refundedAmount    int64
	withdrawnAmount   int64
	transactions      []LedgerTransaction
	bankDetails       BankDetails
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	uncommittedEvents []event.DomainEvent
}

// NewVendorEarnings opens an empty ledger
func NewVendorEarnings(vendorID string) (*VendorEarnings, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("vendorID cannot be empty")
	}
	now := time.Now()
	return &VendorEarnings{
		id:        uuid.New().String(),
		vendorID:  vendorID,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructVendorEarnings rebuilds a ledger from storage
func ReconstructVendorEarnings(s VendorEarningsState) *VendorEarnings {
	return &VendorEarnings{
		id:               s.ID,
		vendorID:         s.VendorID,
		totalEarnings:    s.TotalEarnings,
		pendingAmount:    s.PendingAmount,
		availableBalance: s.AvailableBalance,
		refundedAmount:   s.RefundedAmount,
		withdrawnAmount:  s.WithdrawnAmount,
		transactions:     append([]LedgerTransaction(nil), s.Transactions...),
		bankDetails:      s.BankDetails,
		version:          s.Version,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

// State returns a copy of the persisted fields
func (v *VendorEarnings) State() VendorEarningsState {
	return VendorEarningsState{
		ID:               v.id,
		VendorID:         v.vendorID,
		TotalEarnings:    v.totalEarnings,
		PendingAmount:    v.pendingAmount,
		AvailableBalance: v.availableBalance,
		RefundedAmount:   v.refundedAmount,
		WithdrawnAmount:  v.withdrawnAmount,
		Transactions:     v.Transactions(),
		BankDetails:      v.bankDetails,
		Version:          v.version,
		CreatedAt:        v.createdAt,
		UpdatedAt:        v.updatedAt,
	}
}

// AddEarning records a settled payment as pending funds
func (v *VendorEarnings) AddEarning(eventID, paymentID string, amount int64, description string) error {
	if amount <= 0 {
		return fmt.Errorf("earning amount must be greater than 0")
	}
	v.pendingAmount += amount
	v.totalEarnings += amount
	v.appendTransaction(LedgerTransaction{
		EventID:     eventID,
		PaymentID:   paymentID,
		Type:        TransactionEarning,
		Amount:      amount,
		Description: description,
		Status:      TransactionCompleted,
	})
	return nil
}

// ProcessRefund reverses an earning. Pending funds are consumed first and any
// remainder comes out of the available balance, which may go negative.
func (v *VendorEarnings) ProcessRefund(eventID, paymentID string, amount int64, description string) error {
	if amount <= 0 {
		return fmt.Errorf("refund amount must be greater than 0")
	}

	fromPending := max(min(v.pendingAmount, amount), 0)
	v.pendingAmount -= fromPending
	v.availableBalance -= amount - fromPending
	v.refundedAmount += amount

	v.appendTransaction(LedgerTransaction{
		EventID:     eventID,
		PaymentID:   paymentID,
		Type:        TransactionRefund,
		Amount:      -amount,
		Description: description,
		Status:      TransactionCompleted,
	})
	return nil
}

// MovePendingToAvailable clears pending funds
func (v *VendorEarnings) MovePendingToAvailable(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than 0")
	}
	if v.pendingAmount < amount {
		return ErrInsufficientPending
	}
	v.pendingAmount -= amount
	v.availableBalance += amount
	v.touch()

	v.raiseEvent(&event.FundsReleased{
		VendorID:  v.vendorID,
		Amount:    amount,
		Timestamp: v.updatedAt,
	})
	return nil
}

// ProcessWithdrawal moves funds out of the available balance
func (v *VendorEarnings) ProcessWithdrawal(amount int64, description string) error {
	if amount <= 0 {
		return fmt.Errorf("withdrawal amount must be greater than 0")
	}
	if v.availableBalance < amount {
		return ErrInsufficientBalance
	}
	v.availableBalance -= amount
	v.withdrawnAmount += amount
	v.appendTransaction(LedgerTransaction{
		Type:        TransactionWithdrawal,
		Amount:      -amount,
		Description: description,
		Status:      TransactionPending,
	})
	return nil
}

// UpdateBankDetails replaces payout details; changed details need re-verification
func (v *VendorEarnings) UpdateBankDetails(details BankDetails) error {
	details.AccountHolderName = strings.TrimSpace(details.AccountHolderName)
	details.AccountNumber = strings.TrimSpace(details.AccountNumber)
	details.IFSCCode = strings.ToUpper(strings.TrimSpace(details.IFSCCode))
	details.BankName = strings.TrimSpace(details.BankName)
	if details.AccountHolderName == "" || details.AccountNumber == "" || details.IFSCCode == "" || details.BankName == "" {
		return fmt.Errorf("all bank details are required")
	}
	details.IsVerified = false
	v.bankDetails = details
	v.touch()
	return nil
}

// Reconciles checks that the balance buckets and the transaction log agree
// with total earnings.
func (v *VendorEarnings) Reconciles() bool {
	buckets := v.pendingAmount + v.availableBalance + v.withdrawnAmount + v.refundedAmount
	logged := lo.SumBy(v.transactions, func(t LedgerTransaction) int64 { return t.Amount })
	return buckets == v.totalEarnings && logged == v.pendingAmount+v.availableBalance
}

func (v *VendorEarnings) appendTransaction(t LedgerTransaction) {
	v.touch()
	t.ID = "txn_" + shortuuid.New()
	t.Timestamp = v.updatedAt
	v.transactions = append(v.transactions, t)

	v.raiseEvent(&event.LedgerEntryRecorded{
		VendorID:      v.vendorID,
		TransactionID: t.ID,
		EntryType:     string(t.Type),
		Amount:        t.Amount,
		EventID:       t.EventID,
		PaymentID:     t.PaymentID,
		Timestamp:     t.Timestamp,
	})
}

func (v *VendorEarnings) touch() {
	v.version++
	v.updatedAt = time.Now()
}

func (v *VendorEarnings) raiseEvent(evt event.DomainEvent) {
	v.uncommittedEvents = append(v.uncommittedEvents, evt)
}

// GetUncommittedEvents returns all uncommitted events
func (v *VendorEarnings) GetUncommittedEvents() []event.DomainEvent {
	return v.uncommittedEvents
}

// MarkEventsAsCommitted clears uncommitted events
func (v *VendorEarnings) MarkEventsAsCommitted() {
	v.uncommittedEvents = nil
}

// Getters
func (v *VendorEarnings) ID() string               { return v.id }
func (v *VendorEarnings) VendorID() string         { return v.vendorID }
func (v *VendorEarnings) TotalEarnings() int64     { return v.totalEarnings }
func (v *VendorEarnings) PendingAmount() int64     { return v.pendingAmount }
func (v *VendorEarnings) AvailableBalance() int64  { return v.availableBalance }
func (v *VendorEarnings) RefundedAmount() int64    { return v.refundedAmount }
func (v *VendorEarnings) WithdrawnAmount() int64   { return v.withdrawnAmount }
func (v *VendorEarnings) BankDetails() BankDetails { return v.bankDetails }
func (v *VendorEarnings) Version() int             { return v.version }
func (v *VendorEarnings) CreatedAt() time.Time     { return v.createdAt }
func (v *VendorEarnings) UpdatedAt() time.Time     { return v.updatedAt }
func (v *VendorEarnings) Transactions() []LedgerTransaction {
	return append([]LedgerTransaction(nil), v.transactions...)
}
