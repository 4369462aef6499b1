package command

import (
	"context"
	stderrors "errors"
	"fmt"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/logger"

	"github.com/samber/lo"
)

// SubmitReviewHandler lets a host rate a vendor that worked their event
type SubmitReviewHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewSubmitReviewHandler creates a new submit review handler
func NewSubmitReviewHandler(uowFactory repository.UnitOfWorkFactory) *SubmitReviewHandler {
	return &SubmitReviewHandler{uowFactory: uowFactory}
}

// Handle processes the submit review command
func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd *SubmitReview) (*aggregate.Review, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	evt, err := loadOwnedEvent(ctx, uow.EventRepository(), cmd.EventID, cmd.HostID)
	if err != nil {
		uow.Rollback(ctx)
		return nil, err
	}
	if !lo.Contains(evt.AcceptedVendorIDs(), cmd.VendorID) {
		uow.Rollback(ctx)
		return nil, errors.NewValidationError("vendor did not accept a booking for this event")
	}

	serviceType := cmd.ServiceType
	if serviceType == "" {
		if vendor, err := uow.UserRepository().GetByID(ctx, cmd.VendorID); err == nil {
			serviceType = vendor.VendorProfile().ServiceType
		}
	}

	review, err := aggregate.NewReview(cmd.VendorID, cmd.HostID, cmd.EventID, cmd.Rating, cmd.Text, serviceType)
	if err != nil {
		uow.Rollback(ctx)
		return nil, errors.NewValidationError(err.Error())
	}

	reviewRepo := uow.ReviewRepository()
	exists, err := reviewRepo.Exists(ctx, cmd.VendorID, cmd.HostID, cmd.EventID)
	if err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "review")
	}
	if exists {
		uow.Rollback(ctx)
		return nil, errors.NewConflictError("you have already reviewed this vendor for this event")
	}
	if err := reviewRepo.Save(ctx, review); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "review")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}
	return review, nil
}

// SendMessageHandler stores a direct message
type SendMessageHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewSendMessageHandler creates a new send message handler
func NewSendMessageHandler(uowFactory repository.UnitOfWorkFactory) *SendMessageHandler {
	return &SendMessageHandler{uowFactory: uowFactory}
}

// Handle processes the send message command
func (h *SendMessageHandler) Handle(ctx context.Context, cmd *SendMessage) (*aggregate.Message, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	message, err := aggregate.NewMessage(cmd.SenderID, cmd.ReceiverID, cmd.Text)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}
	if _, err := uow.UserRepository().GetByID(ctx, cmd.ReceiverID); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "receiver")
	}
	if err := uow.MessageRepository().Save(ctx, message); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "message")
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}
	return message, nil
}

// DeleteUserHandler lets admins remove accounts
type DeleteUserHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *DeleteUserHandler {
	return &DeleteUserHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the delete user command
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd *DeleteUser) error {
	if cmd == nil || cmd.UserID == "" {
		return errors.NewValidationError("user id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	userRepo := uow.UserRepository()
	user, err := userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uow.Rollback(ctx)
		return domainError(err, "user")
	}
	if err := user.Delete(cmd.AdminID); err != nil {
		uow.Rollback(ctx)
		return errors.NewForbiddenError(err.Error())
	}

	events := user.GetUncommittedEvents()
	if err := userRepo.Delete(ctx, user.ID()); err != nil {
		uow.Rollback(ctx)
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("user")
		}
		return domainError(err, "user")
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish user events")
	}
	logger.FromContext(ctx).WithField("user_id", user.ID()).Info("user deleted")
	return nil
}
