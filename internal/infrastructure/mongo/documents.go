package mongo

import (
	"time"

	"party-paradise/internal/domain/aggregate"

	"github.com/samber/lo"
)

type userDocument struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashed_password"`
	Role           string    `bson:"role"`
	District       string    `bson:"district,omitempty"`
	Phone          string    `bson:"phone,omitempty"`
	BusinessName   string    `bson:"business_name,omitempty"`
	ServiceType    string    `bson:"service_type,omitempty"`
	Description    string    `bson:"description,omitempty"`
	IsActive       bool      `bson:"is_active"`
	Version        int       `bson:"version"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toUserDocument(u *aggregate.User) userDocument {
	s := u.State()
	return userDocument{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		HashedPassword: s.HashedPassword,
		Role:           string(s.Role),
		District:       s.District,
		Phone:          s.Phone,
		BusinessName:   s.Vendor.BusinessName,
		ServiceType:    s.Vendor.ServiceType,
		Description:    s.Vendor.Description,
		IsActive:       s.IsActive,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (d userDocument) toAggregate() *aggregate.User {
	return aggregate.ReconstructUser(aggregate.UserState{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		HashedPassword: d.HashedPassword,
		Role:           aggregate.UserRole(d.Role),
		District:       d.District,
		Phone:          d.Phone,
		Vendor: aggregate.VendorProfile{
			BusinessName: d.BusinessName,
			ServiceType:  d.ServiceType,
			Description:  d.Description,
		},
		IsActive:  d.IsActive,
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}

type selectionDocument struct {
	VendorID    string `bson:"vendor_id"`
	ServiceID   string `bson:"service_id"`
	PackageName string `bson:"package_name"`
	Price       int64  `bson:"price"`
	Status      string `bson:"status"`
}

type eventDocument struct {
	ID              string              `bson:"_id"`
	HostID          string              `bson:"host_id"`
	Type            string              `bson:"event_type"`
	Name            string              `bson:"name,omitempty"`
	Date            time.Time           `bson:"date"`
	Time            string              `bson:"time,omitempty"`
	Venue           string              `bson:"venue,omitempty"`
	GuestCount      int                 `bson:"guest_count"`
	Budget          int64               `bson:"budget"`
	SpecialRequests string              `bson:"special_requests,omitempty"`
	Selections      []selectionDocument `bson:"selections"`
	TotalCost       int64               `bson:"total_cost"`
	Status          string              `bson:"status"`
	Version         int                 `bson:"version"`
	CreatedAt       time.Time           `bson:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at"`
}

func toEventDocument(e *aggregate.Event) eventDocument {
	s := e.State()
	return eventDocument{
		ID:              s.ID,
		HostID:          s.HostID,
		Type:            s.Details.Type,
		Name:            s.Details.Name,
		Date:            s.Details.Date,
		Time:            s.Details.Time,
		Venue:           s.Details.Venue,
		GuestCount:      s.Details.GuestCount,
		Budget:          s.Details.Budget,
		SpecialRequests: s.Details.SpecialRequests,
		Selections: lo.Map(s.Selections, func(v aggregate.VendorSelection, _ int) selectionDocument {
			return selectionDocument{
				VendorID:    v.VendorID,
				ServiceID:   v.ServiceID,
				PackageName: v.PackageName,
				Price:       v.Price,
				Status:      string(v.Status),
			}
		}),
		TotalCost: s.TotalCost,
		Status:    string(s.Status),
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (d eventDocument) toAggregate() *aggregate.Event {
	return aggregate.ReconstructEvent(aggregate.EventState{
		ID:     d.ID,
		HostID: d.HostID,
		Details: aggregate.EventDetails{
			Type:            d.Type,
			Name:            d.Name,
			Date:            d.Date,
			Time:            d.Time,
			Venue:           d.Venue,
			GuestCount:      d.GuestCount,
			Budget:          d.Budget,
			SpecialRequests: d.SpecialRequests,
		},
		Selections: lo.Map(d.Selections, func(v selectionDocument, _ int) aggregate.VendorSelection {
			return aggregate.VendorSelection{
				VendorID:    v.VendorID,
				ServiceID:   v.ServiceID,
				PackageName: v.PackageName,
				Price:       v.Price,
				Status:      aggregate.SelectionStatus(v.Status),
			}
		}),
		TotalCost: d.TotalCost,
		Status:    aggregate.EventStatus(d.Status),
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}

type paymentDocument struct {
	ID                string     `bson:"_id"`
	EventID           string     `bson:"event_id"`
	HostID            string     `bson:"host_id"`
	VendorID          string     `bson:"vendor_id"`
	Amount            int64      `bson:"amount"`
	Currency          string     `bson:"currency"`
	PackageName       string     `bson:"package_name,omitempty"`
	OrderID           string     `bson:"order_id"`
	ExternalPaymentID string     `bson:"payment_id,omitempty"`
	Status            string     `bson:"status"`
	RefundAmount      int64      `bson:"refund_amount,omitempty"`
	RefundID          string     `bson:"refund_id,omitempty"`
	RefundedAt        *time.Time `bson:"refunded_at,omitempty"`
	Version           int        `bson:"version"`
	CreatedAt         time.Time  `bson:"created_at"`
	UpdatedAt         time.Time  `bson:"updated_at"`
}

func toPaymentDocument(p *aggregate.Payment) paymentDocument {
	s := p.State()
	return paymentDocument{
		ID:                s.ID,
		EventID:           s.EventID,
		HostID:            s.HostID,
		VendorID:          s.VendorID,
		Amount:            s.Amount,
		Currency:          s.Currency,
		PackageName:       s.PackageName,
		OrderID:           s.OrderID,
		ExternalPaymentID: s.ExternalPaymentID,
		Status:            string(s.Status),
		RefundAmount:      s.RefundAmount,
		RefundID:          s.RefundID,
		RefundedAt:        s.RefundedAt,
		Version:           s.Version,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (d paymentDocument) toAggregate() *aggregate.Payment {
	return aggregate.ReconstructPayment(aggregate.PaymentState{
		ID:                d.ID,
		EventID:           d.EventID,
		HostID:            d.HostID,
		VendorID:          d.VendorID,
		Amount:            d.Amount,
		Currency:          d.Currency,
		PackageName:       d.PackageName,
		OrderID:           d.OrderID,
		ExternalPaymentID: d.ExternalPaymentID,
		Status:            aggregate.PaymentStatus(d.Status),
		RefundAmount:      d.RefundAmount,
		RefundID:          d.RefundID,
		RefundedAt:        d.RefundedAt,
		Version:           d.Version,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	})
}

type transactionDocument struct {
	ID          string    `bson:"id"`
	EventID     string    `bson:"event_id,omitempty"`
	PaymentID   string    `bson:"payment_id,omitempty"`
	Type        string    `bson:"type"`
	Amount      int64     `bson:"amount"`
	Description string    `bson:"description,omitempty"`
	Timestamp   time.Time `bson:"timestamp"`
	Status      string    `bson:"status"`
}

type bankDetailsDocument struct {
	AccountHolderName string `bson:"account_holder_name,omitempty"`
	AccountNumber     string `bson:"account_number,omitempty"`
	IFSCCode          string `bson:"ifsc_code,omitempty"`
	BankName          string `bson:"bank_name,omitempty"`
	IsVerified        bool   `bson:"is_verified"`
}

type earningsDocument struct {
	ID               string                `bson:"_id"`
	VendorID         string                `bson:"vendor_id"`
	TotalEarnings    int64                 `bson:"total_earnings"`
	PendingAmount    int64                 `bson:"pending_amount"`
	AvailableBalance int64                 `bson:"available_balance"`
	RefundedAmount   int64                 `bson:"refunded_amount"`
	WithdrawnAmount  int64                 `bson:"withdrawn_amount"`
	Transactions     []transactionDocument `bson:"transactions"`
	BankDetails      bankDetailsDocument   `bson:"bank_details"`
	Version          int                   `bson:"version"`
	CreatedAt        time.Time             `bson:"created_at"`
	UpdatedAt        time.Time             `bson:"updated_at"`
}

func toEarningsDocument(v *aggregate.VendorEarnings) earningsDocument {
	s := v.State()
	return earningsDocument{
		ID:               s.ID,
		VendorID:         s.VendorID,
		TotalEarnings:    s.TotalEarnings,
		PendingAmount:    s.PendingAmount,
		AvailableBalance: s.AvailableBalance,
		RefundedAmount:   s.RefundedAmount,
		WithdrawnAmount:  s.WithdrawnAmount,
		Transactions: lo.Map(s.Transactions, func(t aggregate.LedgerTransaction, _ int) transactionDocument {
			return transactionDocument{
				ID:          t.ID,
				EventID:     t.EventID,
				PaymentID:   t.PaymentID,
				Type:        string(t.Type),
				Amount:      t.Amount,
				Description: t.Description,
				Timestamp:   t.Timestamp,
				Status:      string(t.Status),
			}
		}),
		BankDetails: bankDetailsDocument(s.BankDetails),
		Version:     s.Version,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (d earningsDocument) toAggregate() *aggregate.VendorEarnings {
	return aggregate.ReconstructVendorEarnings(aggregate.VendorEarningsState{
		ID:               d.ID,
		VendorID:         d.VendorID,
		TotalEarnings:    d.TotalEarnings,
		PendingAmount:    d.PendingAmount,
		AvailableBalance: d.AvailableBalance,
		RefundedAmount:   d.RefundedAmount,
		WithdrawnAmount:  d.WithdrawnAmount,
		Transactions: lo.Map(d.Transactions, func(t transactionDocument, _ int) aggregate.LedgerTransaction {
			return aggregate.LedgerTransaction{
				ID:          t.ID,
				EventID:     t.EventID,
				PaymentID:   t.PaymentID,
				Type:        aggregate.TransactionType(t.Type),
				Amount:      t.Amount,
				Description: t.Description,
				Timestamp:   t.Timestamp,
				Status:      aggregate.TransactionStatus(t.Status),
			}
		}),
		BankDetails: aggregate.BankDetails(d.BankDetails),
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	})
}

type serviceDocument struct {
	ID           string    `bson:"_id"`
	VendorID     string    `bson:"vendor_id"`
	PackageName  string    `bson:"package_name"`
	Description  string    `bson:"description,omitempty"`
	Price        int64     `bson:"price"`
	Duration     string    `bson:"duration,omitempty"`
	Features     []string  `bson:"features"`
	AvailableFor []string  `bson:"available_for"`
	IsActive     bool      `bson:"is_active"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toServiceDocument(s *aggregate.Service) serviceDocument {
	return serviceDocument(s.State())
}

func (d serviceDocument) toAggregate() *aggregate.Service {
	return aggregate.ReconstructService(aggregate.ServiceState(d))
}

type reviewDocument struct {
	ID          string    `bson:"_id"`
	VendorID    string    `bson:"vendor_id"`
	HostID      string    `bson:"host_id"`
	EventID     string    `bson:"event_id"`
	Rating      int       `bson:"rating"`
	Text        string    `bson:"review"`
	ServiceType string    `bson:"service_type"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toReviewDocument(r *aggregate.Review) reviewDocument {
	return reviewDocument(r.State())
}

func (d reviewDocument) toAggregate() *aggregate.Review {
	return aggregate.ReconstructReview(aggregate.ReviewState(d))
}

type messageDocument struct {
	ID             string    `bson:"_id"`
	ConversationID string    `bson:"conversation_id"`
	SenderID       string    `bson:"sender_id"`
	ReceiverID     string    `bson:"receiver_id"`
	Text           string    `bson:"message"`
	Read           bool      `bson:"read"`
	CreatedAt      time.Time `bson:"created_at"`
}

func toMessageDocument(m *aggregate.Message) messageDocument {
	return messageDocument(m.State())
}

func (d messageDocument) toAggregate() *aggregate.Message {
	return aggregate.ReconstructMessage(aggregate.MessageState(d))
}
