package services

import (
	"context"

	"party-paradise/internal/application/query"
	"party-paradise/internal/domain/aggregate"
)

// AdminService handles the admin oversight views
type AdminService struct {
	listAllEventsHandler     *query.ListAllEventsHandler
	listEventPaymentsHandler *query.ListEventPaymentsHandler
	reportHandler            *query.AdminReportHandler
}

// NewAdminService creates a new admin service
func NewAdminService(
	listAllEventsHandler *query.ListAllEventsHandler,
	listEventPaymentsHandler *query.ListEventPaymentsHandler,
	reportHandler *query.AdminReportHandler,
) *AdminService {
	return &AdminService{
		listAllEventsHandler:     listAllEventsHandler,
		listEventPaymentsHandler: listEventPaymentsHandler,
		reportHandler:            reportHandler,
	}
}

// ListEvents lists every event
func (s *AdminService) ListEvents(ctx context.Context) ([]query.EventView, error) {
	return s.listAllEventsHandler.Handle(ctx)
}

// EventPayments lists payments for any event
func (s *AdminService) EventPayments(ctx context.Context, eventID string) ([]query.PaymentView, error) {
	return s.listEventPaymentsHandler.Handle(ctx, eventID, "", aggregate.RoleAdmin)
}

// Report builds the platform overview
func (s *AdminService) Report(ctx context.Context) (*query.AdminReport, error) {
	return s.reportHandler.Handle(ctx)
}
