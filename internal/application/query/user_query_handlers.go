package query

import (
	"context"

	"party-paradise/internal/domain/repository"
	"party-paradise/pkg/errors"
)

// GetUserHandler handles get user by ID queries
type GetUserHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(uowFactory repository.UnitOfWorkFactory) *GetUserHandler {
	return &GetUserHandler{uowFactory: uowFactory}
}

// Handle processes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, userID string) (*UserView, error) {
	if userID == "" {
		return nil, errors.NewValidationError("user id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, readError(err, "user")
	}

	view := NewUserView(user)
	return &view, nil
}
