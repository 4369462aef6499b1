package command

import (
	"context"
	"fmt"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/pkg/errors"
)

// CreateServiceHandler handles create service commands with Unit of Work
type CreateServiceHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewCreateServiceHandler creates a new create service handler
func NewCreateServiceHandler(uowFactory repository.UnitOfWorkFactory) *CreateServiceHandler {
	return &CreateServiceHandler{uowFactory: uowFactory}
}

// Handle processes the create service command
func (h *CreateServiceHandler) Handle(ctx context.Context, cmd *CreateService) (*aggregate.Service, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	service, err := aggregate.NewService(cmd.VendorID, cmd.PackageName, cmd.Description, cmd.Price, cmd.Duration, cmd.Features, cmd.AvailableFor)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}
	if err := uow.ServiceRepository().Save(ctx, service); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "service")
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}
	return service, nil
}

// UpdateServiceHandler handles update service commands
type UpdateServiceHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewUpdateServiceHandler creates a new update service handler
func NewUpdateServiceHandler(uowFactory repository.UnitOfWorkFactory) *UpdateServiceHandler {
	return &UpdateServiceHandler{uowFactory: uowFactory}
}

// Handle processes the update service command
func (h *UpdateServiceHandler) Handle(ctx context.Context, cmd *UpdateService) (*aggregate.Service, error) {
	if cmd == nil || cmd.ServiceID == "" {
		return nil, errors.NewValidationError("service id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	serviceRepo := uow.ServiceRepository()
	service, err := serviceRepo.GetByID(ctx, cmd.ServiceID)
	if err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "service")
	}
	if !service.OwnedBy(cmd.VendorID) {
		uow.Rollback(ctx)
		return nil, errors.NewForbiddenError("not authorized to modify this service")
	}
	if err := service.Update(cmd.Patch); err != nil {
		uow.Rollback(ctx)
		return nil, errors.NewValidationError(err.Error())
	}
	if err := serviceRepo.Save(ctx, service); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "service")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}
	return service, nil
}

// DeleteServiceHandler handles delete service commands
type DeleteServiceHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewDeleteServiceHandler creates a new delete service handler
func NewDeleteServiceHandler(uowFactory repository.UnitOfWorkFactory) *DeleteServiceHandler {
	return &DeleteServiceHandler{uowFactory: uowFactory}
}

// Handle processes the delete service command
func (h *DeleteServiceHandler) Handle(ctx context.Context, cmd *DeleteService) error {
	if cmd == nil || cmd.ServiceID == "" {
		return errors.NewValidationError("service id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	serviceRepo := uow.ServiceRepository()
	service, err := serviceRepo.GetByID(ctx, cmd.ServiceID)
	if err != nil {
		uow.Rollback(ctx)
		return domainError(err, "service")
	}
	if !service.OwnedBy(cmd.VendorID) {
		uow.Rollback(ctx)
		return errors.NewForbiddenError("not authorized to delete this service")
	}
	if err := serviceRepo.Delete(ctx, service.ID()); err != nil {
		uow.Rollback(ctx)
		return domainError(err, "service")
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}
	return nil
}
