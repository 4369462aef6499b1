package event

import "time"

// LedgerEntryRecorded is raised for every transaction appended to a vendor ledger
type LedgerEntryRecorded struct {
	VendorID      string    `json:"vendor_id"`
	TransactionID string    `json:"transaction_id"`
	EntryType     string    `json:"entry_type"`
	Amount        int64     `json:"amount"`
	EventID       string    `json:"event_id,omitempty"`
	PaymentID     string    `json:"payment_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *LedgerEntryRecorded) EventType() string     { return "LedgerEntryRecorded" }
func (e *LedgerEntryRecorded) AggregateID() string   { return e.VendorID }
func (e *LedgerEntryRecorded) OccurredAt() time.Time { return e.Timestamp }
func (e *LedgerEntryRecorded) Version() int          { return 1 }

// FundsReleased is raised when pending funds clear into the available balance
type FundsReleased struct {
	VendorID  string    `json:"vendor_id"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *FundsReleased) EventType() string     { return "FundsReleased" }
func (e *FundsReleased) AggregateID() string   { return e.VendorID }
func (e *FundsReleased) OccurredAt() time.Time { return e.Timestamp }
func (e *FundsReleased) Version() int          { return 1 }
