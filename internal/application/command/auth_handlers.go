package command

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	jwtutil "party-paradise/pkg/jwt"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/logger"
)

// RegisterHandler creates host and vendor accounts
type RegisterHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	jwtManager *jwtutil.JWTManager
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
	jwtManager *jwtutil.JWTManager,
) *RegisterHandler {
	return &RegisterHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
		jwtManager: jwtManager,
	}
}

// Handle processes the register command
func (h *RegisterHandler) Handle(ctx context.Context, cmd *RegisterUser) (*AuthResult, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}
	if cmd.Role != aggregate.RoleHost && cmd.Role != aggregate.RoleVendor {
		return nil, errors.NewValidationError("role must be host or vendor")
	}
	if cmd.Role == aggregate.RoleVendor {
		if strings.TrimSpace(cmd.BusinessName) == "" || strings.TrimSpace(cmd.ServiceType) == "" {
			return nil, errors.NewValidationError("businessName and serviceType are required for vendors")
		}
	}

	user, err := aggregate.NewUser(cmd.Name, cmd.Email, cmd.Password, cmd.Role, cmd.District, cmd.Phone)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Role == aggregate.RoleVendor {
		if err := user.SetVendorProfile(aggregate.VendorProfile{
			BusinessName: strings.TrimSpace(cmd.BusinessName),
			ServiceType:  strings.TrimSpace(cmd.ServiceType),
			Description:  cmd.Description,
		}); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := saveNewUser(ctx, h.uowFactory, h.eventBus, user); err != nil {
		return nil, err
	}

	token, err := h.jwtManager.GenerateToken(user.ID(), user.Email(), user.Name(), string(user.Role()))
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to generate token: %v", err))
	}

	logger.FromContext(ctx).WithField("user_id", user.ID()).Info("user registered")
	return &AuthResult{Token: token, User: user}, nil
}

// saveNewUser persists a user, rejecting duplicate emails
func saveNewUser(ctx context.Context, factory repository.UnitOfWorkFactory, eventBus bus.EventBus, user *aggregate.User) error {
	uow := factory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	userRepo := uow.UserRepository()
	if _, err := userRepo.GetByEmail(ctx, user.Email()); err == nil {
		uow.Rollback(ctx)
		return errors.NewConflictError("user with this email already exists")
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		uow.Rollback(ctx)
		return domainError(err, "user")
	}

	events := user.GetUncommittedEvents()
	if err := userRepo.Save(ctx, user); err != nil {
		uow.Rollback(ctx)
		return domainError(err, "user")
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish user events")
	}
	return nil
}

// LoginHandler checks credentials and issues a token
type LoginHandler struct {
	uowFactory repository.UnitOfWorkFactory
	jwtManager *jwtutil.JWTManager
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(uowFactory repository.UnitOfWorkFactory, jwtManager *jwtutil.JWTManager) *LoginHandler {
	return &LoginHandler{
		uowFactory: uowFactory,
		jwtManager: jwtManager,
	}
}

// Handle processes the login command
func (h *LoginHandler) Handle(ctx context.Context, cmd *LoginUser) (*AuthResult, error) {
	if cmd == nil || cmd.Email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	user, err := uow.UserRepository().GetByEmail(ctx, cmd.Email)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		return nil, domainError(err, "user")
	}
	if !user.IsActive() {
		return nil, errors.NewUnauthorizedError("account is disabled")
	}
	if err := user.VerifyPassword(cmd.Password); err != nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	token, err := h.jwtManager.GenerateToken(user.ID(), user.Email(), user.Name(), string(user.Role()))
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to generate token: %v", err))
	}
	return &AuthResult{Token: token, User: user}, nil
}

// SeedAdmin creates the configured admin account when it does not exist yet
func SeedAdmin(ctx context.Context, factory repository.UnitOfWorkFactory, eventBus bus.EventBus, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	uow := factory.CreateUnitOfWork()
	_, err := uow.UserRepository().GetByEmail(ctx, email)
	uow.Close()
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	admin, err := aggregate.NewUser("Administrator", email, password, aggregate.RoleAdmin, "", "")
	if err != nil {
		return fmt.Errorf("invalid admin credentials: %w", err)
	}
	if err := saveNewUser(ctx, factory, eventBus, admin); err != nil {
		return err
	}

	logger.FromContext(ctx).WithField("email", admin.Email()).Info("admin account seeded")
	return nil
}
