package query

import (
	"context"
	"sort"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/projection"

	"github.com/samber/lo"
)

const recentActivityLimit = 20

// ActivityFeed is the read side of the audit projection
type ActivityFeed interface {
	Recent(n int) []projection.ActivityEntry
}

// ListUsersHandler lists accounts for admins
type ListUsersHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(uowFactory repository.UnitOfWorkFactory) *ListUsersHandler {
	return &ListUsersHandler{uowFactory: uowFactory}
}

// Handle lists users; an empty role returns everyone
func (h *ListUsersHandler) Handle(ctx context.Context, role aggregate.UserRole) ([]UserView, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	users, err := uow.UserRepository().List(ctx, role)
	if err != nil {
		return nil, readError(err, "users")
	}
	return NewUserViews(users), nil
}

// NamedCount is one bucket of a report breakdown
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AdminReport is the platform overview
type AdminReport struct {
	TotalHosts       int                        `json:"totalHosts"`
	TotalVendors     int                        `json:"totalVendors"`
	TotalEvents      int                        `json:"totalEvents"`
	TotalRevenue     int64                      `json:"totalRevenue"`
	TotalRefunded    int64                      `json:"totalRefunded"`
	EventsByStatus   []NamedCount               `json:"eventsByStatus"`
	EventsByType     []NamedCount               `json:"eventsByType"`
	VendorsByService []NamedCount               `json:"vendorsByService"`
	RecentActivity   []projection.ActivityEntry `json:"recentActivity"`
}

// AdminReportHandler builds the admin report
type AdminReportHandler struct {
	uowFactory repository.UnitOfWorkFactory
	activity   ActivityFeed
}

// NewAdminReportHandler creates a new admin report handler
func NewAdminReportHandler(uowFactory repository.UnitOfWorkFactory, activity ActivityFeed) *AdminReportHandler {
	return &AdminReportHandler{
		uowFactory: uowFactory,
		activity:   activity,
	}
}

// Handle processes the admin report query
func (h *AdminReportHandler) Handle(ctx context.Context) (*AdminReport, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	hosts, err := uow.UserRepository().List(ctx, aggregate.RoleHost)
	if err != nil {
		return nil, readError(err, "users")
	}
	vendors, err := uow.UserRepository().List(ctx, aggregate.RoleVendor)
	if err != nil {
		return nil, readError(err, "users")
	}
	events, err := uow.EventRepository().ListAll(ctx)
	if err != nil {
		return nil, readError(err, "events")
	}
	payments, err := uow.PaymentRepository().ListAll(ctx)
	if err != nil {
		return nil, readError(err, "payments")
	}

	completed := lo.Filter(payments, func(p *aggregate.Payment, _ int) bool { return p.IsCompleted() })
	report := &AdminReport{
		TotalHosts:    len(hosts),
		TotalVendors:  len(vendors),
		TotalEvents:   len(events),
		TotalRevenue:  lo.SumBy(completed, func(p *aggregate.Payment) int64 { return p.Amount() }),
		TotalRefunded: lo.SumBy(payments, func(p *aggregate.Payment) int64 { return p.RefundAmount() }),
		EventsByStatus: countBy(events, func(e *aggregate.Event) string {
			return string(e.Status())
		}),
		EventsByType: countBy(events, func(e *aggregate.Event) string {
			return e.Details().Type
		}),
		VendorsByService: countBy(vendors, func(u *aggregate.User) string {
			return u.VendorProfile().ServiceType
		}),
		RecentActivity: []projection.ActivityEntry{},
	}
	if h.activity != nil {
		report.RecentActivity = h.activity.Recent(recentActivityLimit)
	}
	return report, nil
}

// countBy buckets items by key, largest bucket first
func countBy[T any](items []T, key func(T) string) []NamedCount {
	groups := lo.GroupBy(items, key)
	counts := make([]NamedCount, 0, len(groups))
	for name, group := range groups {
		counts = append(counts, NamedCount{Name: name, Count: len(group)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}
