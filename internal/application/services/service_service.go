package services

import (
	"context"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/query"
)

// ServiceService handles vendor listing operations
type ServiceService struct {
	createServiceHandler      *command.CreateServiceHandler
	updateServiceHandler      *command.UpdateServiceHandler
	deleteServiceHandler      *command.DeleteServiceHandler
	getServiceHandler         *query.GetServiceHandler
	listVendorServicesHandler *query.ListVendorServicesHandler
	listServicesHandler       *query.ListActiveServicesHandler
}

// NewServiceService creates a new service service
func NewServiceService(
	createServiceHandler *command.CreateServiceHandler,
	updateServiceHandler *command.UpdateServiceHandler,
	deleteServiceHandler *command.DeleteServiceHandler,
	getServiceHandler *query.GetServiceHandler,
	listVendorServicesHandler *query.ListVendorServicesHandler,
	listServicesHandler *query.ListActiveServicesHandler,
) *ServiceService {
	return &ServiceService{
		createServiceHandler:      createServiceHandler,
		updateServiceHandler:      updateServiceHandler,
		deleteServiceHandler:      deleteServiceHandler,
		getServiceHandler:         getServiceHandler,
		listVendorServicesHandler: listVendorServicesHandler,
		listServicesHandler:       listServicesHandler,
	}
}

// CreateService creates a new service
func (s *ServiceService) CreateService(ctx context.Context, cmd *command.CreateService) (*query.ServiceView, error) {
	service, err := s.createServiceHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewServiceView(service)
	return &view, nil
}

// UpdateService updates an existing service
func (s *ServiceService) UpdateService(ctx context.Context, cmd *command.UpdateService) (*query.ServiceView, error) {
	service, err := s.updateServiceHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewServiceView(service)
	return &view, nil
}

// DeleteService deletes a service
func (s *ServiceService) DeleteService(ctx context.Context, cmd *command.DeleteService) error {
	return s.deleteServiceHandler.Handle(ctx, cmd)
}

// GetService retrieves a service by ID
func (s *ServiceService) GetService(ctx context.Context, serviceID string) (*query.ServiceView, error) {
	return s.getServiceHandler.Handle(ctx, serviceID)
}

// ListVendorServices retrieves all services for a vendor
func (s *ServiceService) ListVendorServices(ctx context.Context, vendorID string) ([]query.ServiceView, error) {
	return s.listVendorServicesHandler.Handle(ctx, vendorID)
}

// ListServices retrieves every active service
func (s *ServiceService) ListServices(ctx context.Context) ([]query.ServiceView, error) {
	return s.listServicesHandler.Handle(ctx)
}
