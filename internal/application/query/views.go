package query

import (
	"time"

	"party-paradise/internal/domain/aggregate"

	"github.com/samber/lo"
)

// SelectionView is a vendor selection as returned to clients
type SelectionView struct {
	VendorID    string `json:"vendorId"`
	ServiceID   string `json:"serviceId"`
	PackageName string `json:"packageName"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
}

// EventView is the read model of an event
type EventView struct {
	ID              string          `json:"id"`
	HostID          string          `json:"hostId"`
	EventType       string          `json:"eventType"`
	EventName       string          `json:"eventName"`
	EventDate       time.Time       `json:"eventDate"`
	EventTime       string          `json:"eventTime,omitempty"`
	Venue           string          `json:"venue,omitempty"`
	GuestCount      int             `json:"guestCount"`
	Budget          int64           `json:"budget"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
	SelectedVendors []SelectionView `json:"selectedVendors"`
	TotalCost       int64           `json:"totalCost"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewEventView maps an event aggregate to its read model
func NewEventView(e *aggregate.Event) EventView {
	d := e.Details()
	return EventView{
		ID:              e.ID(),
		HostID:          e.HostID(),
		EventType:       d.Type,
		EventName:       d.Name,
		EventDate:       d.Date,
		EventTime:       d.Time,
		Venue:           d.Venue,
		GuestCount:      d.GuestCount,
		Budget:          d.Budget,
		SpecialRequests: d.SpecialRequests,
		SelectedVendors: selectionViews(e.Selections()),
		TotalCost:       e.TotalCost(),
		Status:          string(e.Status()),
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
}

// NewEventViews maps a list of events
func NewEventViews(events []*aggregate.Event) []EventView {
	return lo.Map(events, func(e *aggregate.Event, _ int) EventView { return NewEventView(e) })
}

func selectionViews(selections []aggregate.VendorSelection) []SelectionView {
	return lo.Map(selections, func(s aggregate.VendorSelection, _ int) SelectionView {
		return SelectionView{
			VendorID:    s.VendorID,
			ServiceID:   s.ServiceID,
			PackageName: s.PackageName,
			Price:       s.Price,
			Status:      string(s.Status),
		}
	})
}

// BookingView is an event seen by one of its vendors
type BookingView struct {
	EventView
	HostName     string          `json:"hostName,omitempty"`
	MySelections []SelectionView `json:"mySelections"`
}

// PaymentView is the read model of a payment
type PaymentView struct {
	ID                string     `json:"id"`
	EventID           string     `json:"eventId"`
	HostID            string     `json:"hostId"`
	VendorID          string     `json:"vendorId"`
	Amount            int64      `json:"amount"`
	Currency          string     `json:"currency"`
	PackageName       string     `json:"packageName,omitempty"`
	OrderID           string     `json:"orderId"`
	ExternalPaymentID string     `json:"paymentId,omitempty"`
	Status            string     `json:"status"`
	RefundAmount      int64      `json:"refundAmount,omitempty"`
	RefundID          string     `json:"refundId,omitempty"`
	RefundedAt        *time.Time `json:"refundedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// NewPaymentView maps a payment aggregate to its read model
func NewPaymentView(p *aggregate.Payment) PaymentView {
	return PaymentView{
		ID:                p.ID(),
		EventID:           p.EventID(),
		HostID:            p.HostID(),
		VendorID:          p.VendorID(),
		Amount:            p.Amount(),
		Currency:          p.Currency(),
		PackageName:       p.PackageName(),
		OrderID:           p.OrderID(),
		ExternalPaymentID: p.ExternalPaymentID(),
		Status:            string(p.Status()),
		RefundAmount:      p.RefundAmount(),
		RefundID:          p.RefundID(),
		RefundedAt:        p.RefundedAt(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

// NewPaymentViews maps a list of payments
func NewPaymentViews(payments []*aggregate.Payment) []PaymentView {
	return lo.Map(payments, func(p *aggregate.Payment, _ int) PaymentView { return NewPaymentView(p) })
}

// TransactionView is one ledger entry
type TransactionView struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId,omitempty"`
	PaymentID   string    `json:"paymentId,omitempty"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}

// BankDetailsView hides all but the last four account digits
type BankDetailsView struct {
	AccountHolderName string `json:"accountHolderName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
	BankName          string `json:"bankName,omitempty"`
	IsVerified        bool   `json:"isVerified"`
}

// EarningsView is the vendor ledger read model
type EarningsView struct {
	VendorID         string            `json:"vendorId"`
	TotalEarnings    int64             `json:"totalEarnings"`
	PendingAmount    int64             `json:"pendingAmount"`
	AvailableBalance int64             `json:"availableBalance"`
	RefundedAmount   int64             `json:"refundedAmount"`
	WithdrawnAmount  int64             `json:"withdrawnAmount"`
	Transactions     []TransactionView `json:"transactions"`
	BankDetails      BankDetailsView   `json:"bankDetails"`
	Reconciled       bool              `json:"reconciled"`
}

// NewEarningsView maps a ledger; transactions are returned newest first
func NewEarningsView(l *aggregate.VendorEarnings) EarningsView {
	txs := l.Transactions()
	views := make([]TransactionView, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		t := txs[i]
		views = append(views, TransactionView{
			ID:          t.ID,
			EventID:     t.EventID,
			PaymentID:   t.PaymentID,
			Type:        string(t.Type),
			Amount:      t.Amount,
			Description: t.Description,
			Timestamp:   t.Timestamp,
			Status:      string(t.Status),
		})
	}
	bank := l.BankDetails()
	return EarningsView{
		VendorID:         l.VendorID(),
		TotalEarnings:    l.TotalEarnings(),
		PendingAmount:    l.PendingAmount(),
		AvailableBalance: l.AvailableBalance(),
		RefundedAmount:   l.RefundedAmount(),
		WithdrawnAmount:  l.WithdrawnAmount(),
		Transactions:     views,
		BankDetails: BankDetailsView{
			AccountHolderName: bank.AccountHolderName,
			AccountNumber:     maskAccount(bank.AccountNumber),
			IFSCCode:          bank.IFSCCode,
			BankName:          bank.BankName,
			IsVerified:        bank.IsVerified,
		},
		Reconciled: l.Reconciles(),
	}
}

func maskAccount(number string) string {
	if len(number) <= 4 {
		return number
	}
	masked := make([]byte, len(number))
	for i := range masked {
		if i < len(number)-4 {
			masked[i] = '*'
		} else {
			masked[i] = number[i]
		}
	}
	return string(masked)
}

// UserView is a user without credentials
type UserView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"userType"`
	District     string    `json:"district,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	BusinessName string    `json:"businessName,omitempty"`
	ServiceType  string    `json:"serviceType,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUserView maps a user aggregate to its public shape
func NewUserView(u *aggregate.User) UserView {
	profile := u.VendorProfile()
	return UserView{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		Role:         string(u.Role()),
		District:     u.District(),
		Phone:        u.Phone(),
		BusinessName: profile.BusinessName,
		ServiceType:  profile.ServiceType,
		Description:  profile.Description,
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
	}
}

// NewUserViews maps a list of users
func NewUserViews(users []*aggregate.User) []UserView {
	return lo.Map(users, func(u *aggregate.User, _ int) UserView { return NewUserView(u) })
}

// DisplayName prefers the business name for vendors
func DisplayName(u *aggregate.User) string {
	if name := u.VendorProfile().BusinessName; name != "" {
		return name
	}
	return u.Name()
}

// ServiceView is a vendor listing
type ServiceView struct {
	ID           string    `json:"id"`
	VendorID     string    `json:"vendorId"`
	PackageName  string    `json:"packageName"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	Duration     string    `json:"duration,omitempty"`
	Features     []string  `json:"features"`
	AvailableFor []string  `json:"availableFor"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewServiceView maps a service aggregate
func NewServiceView(s *aggregate.Service) ServiceView {
	return ServiceView{
		ID:           s.ID(),
		VendorID:     s.VendorID(),
		PackageName:  s.PackageName(),
		Description:  s.Description(),
		Price:        s.Price(),
		Duration:     s.Duration(),
		Features:     nonNil(s.Features()),
		AvailableFor: nonNil(s.AvailableFor()),
		IsActive:     s.IsActive(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

// NewServiceViews maps a list of services
func NewServiceViews(services []*aggregate.Service) []ServiceView {
	return lo.Map(services, func(s *aggregate.Service, _ int) ServiceView { return NewServiceView(s) })
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ReviewView is a stored review
type ReviewView struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendorId"`
	HostID      string    `json:"hostId"`
	HostName    string    `json:"hostName,omitempty"`
	EventID     string    `json:"eventId"`
	Rating      int       `json:"rating"`
	Review      string    `json:"review"`
	ServiceType string    `json:"serviceType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewReviewView maps a review aggregate
func NewReviewView(r *aggregate.Review) ReviewView {
	return ReviewView{
		ID:          r.ID(),
		VendorID:    r.VendorID(),
		HostID:      r.HostID(),
		EventID:     r.EventID(),
		Rating:      r.Rating(),
		Review:      r.Text(),
		ServiceType: r.ServiceType(),
		CreatedAt:   r.CreatedAt(),
	}
}

// MessageView is one direct message
type MessageView struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewMessageView maps a message aggregate
func NewMessageView(m *aggregate.Message) MessageView {
	return MessageView{
		ID:             m.ID(),
		ConversationID: m.ConversationID(),
		SenderID:       m.SenderID(),
		ReceiverID:     m.ReceiverID(),
		Message:        m.Text(),
		IsRead:         m.IsRead(),
		CreatedAt:      m.CreatedAt(),
	}
}

// NewMessageViews maps a list of messages
func NewMessageViews(messages []*aggregate.Message) []MessageView {
	return lo.Map(messages, func(m *aggregate.Message, _ int) MessageView { return NewMessageView(m) })
}
