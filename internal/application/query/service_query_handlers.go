package query

import (
	"context"
	"strings"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/pkg/errors"

	"github.com/samber/lo"
)

// GetServiceHandler handles get service by ID queries
type GetServiceHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewGetServiceHandler creates a new get service handler
func NewGetServiceHandler(uowFactory repository.UnitOfWorkFactory) *GetServiceHandler {
	return &GetServiceHandler{uowFactory: uowFactory}
}

// Handle processes the get service query
func (h *GetServiceHandler) Handle(ctx context.Context, serviceID string) (*ServiceView, error) {
	if serviceID == "" {
		return nil, errors.NewValidationError("service id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	service, err := uow.ServiceRepository().GetByID(ctx, serviceID)
	if err != nil {
		return nil, readError(err, "service")
	}

	view := NewServiceView(service)
	return &view, nil
}

// ListVendorServicesHandler handles list vendor services queries
type ListVendorServicesHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListVendorServicesHandler creates a new list vendor services handler
func NewListVendorServicesHandler(uowFactory repository.UnitOfWorkFactory) *ListVendorServicesHandler {
	return &ListVendorServicesHandler{uowFactory: uowFactory}
}

// Handle processes the list vendor services query
func (h *ListVendorServicesHandler) Handle(ctx context.Context, vendorID string) ([]ServiceView, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	services, err := uow.ServiceRepository().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, readError(err, "services")
	}
	return NewServiceViews(services), nil
}

// ListActiveServicesHandler lists every active listing
type ListActiveServicesHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListActiveServicesHandler creates a new list services handler
func NewListActiveServicesHandler(uowFactory repository.UnitOfWorkFactory) *ListActiveServicesHandler {
	return &ListActiveServicesHandler{uowFactory: uowFactory}
}

// Handle processes the list services query
func (h *ListActiveServicesHandler) Handle(ctx context.Context) ([]ServiceView, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	services, err := uow.ServiceRepository().ListActive(ctx)
	if err != nil {
		return nil, readError(err, "services")
	}
	return NewServiceViews(services), nil
}

// VendorFilter narrows the vendor directory; empty fields match everything
type VendorFilter struct {
	ServiceType string
	District    string
}

// VendorSummary is a vendor directory entry
type VendorSummary struct {
	UserView
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// ListVendorsHandler lists active vendors
type ListVendorsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListVendorsHandler creates a new list vendors handler
func NewListVendorsHandler(uowFactory repository.UnitOfWorkFactory) *ListVendorsHandler {
	return &ListVendorsHandler{uowFactory: uowFactory}
}

// Handle processes the list vendors query
func (h *ListVendorsHandler) Handle(ctx context.Context, filter VendorFilter) ([]VendorSummary, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	vendors, err := uow.UserRepository().List(ctx, aggregate.RoleVendor)
	if err != nil {
		return nil, readError(err, "vendors")
	}

	vendors = lo.Filter(vendors, func(u *aggregate.User, _ int) bool {
		if !u.IsActive() {
			return false
		}
		if filter.ServiceType != "" && !strings.EqualFold(u.VendorProfile().ServiceType, filter.ServiceType) {
			return false
		}
		return filter.District == "" || strings.EqualFold(u.District(), filter.District)
	})

	reviewRepo := uow.ReviewRepository()
	summaries := make([]VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		reviews, err := reviewRepo.ListByVendor(ctx, v.ID())
		if err != nil {
			return nil, readError(err, "reviews")
		}
		summaries = append(summaries, VendorSummary{
			UserView:    NewUserView(v),
			Rating:      averageRating(reviews),
			ReviewCount: len(reviews),
		})
	}
	return summaries, nil
}

// VendorDetail is a vendor with its listings
type VendorDetail struct {
	VendorSummary
	Services []ServiceView `json:"services"`
}

// GetVendorHandler returns one vendor profile
type GetVendorHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewGetVendorHandler creates a new get vendor handler
func NewGetVendorHandler(uowFactory repository.UnitOfWorkFactory) *GetVendorHandler {
	return &GetVendorHandler{uowFactory: uowFactory}
}

// Handle processes the get vendor query
func (h *GetVendorHandler) Handle(ctx context.Context, vendorID string) (*VendorDetail, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	vendor, err := uow.UserRepository().GetByID(ctx, vendorID)
	if err != nil {
		return nil, readError(err, "vendor")
	}
	if !vendor.IsVendor() {
		return nil, errors.NewNotFoundError("vendor")
	}

	services, err := uow.ServiceRepository().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, readError(err, "services")
	}
	reviews, err := uow.ReviewRepository().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, readError(err, "reviews")
	}

	active := lo.Filter(services, func(s *aggregate.Service, _ int) bool { return s.IsActive() })
	return &VendorDetail{
		VendorSummary: VendorSummary{
			UserView:    NewUserView(vendor),
			Rating:      averageRating(reviews),
			ReviewCount: len(reviews),
		},
		Services: NewServiceViews(active),
	}, nil
}
