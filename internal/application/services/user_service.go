package services

import (
	"context"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/query"
	"party-paradise/internal/domain/aggregate"
)

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string         `json:"token"`
	User  query.UserView `json:"user"`
}

// UserService handles account and vendor directory operations
type UserService struct {
	registerHandler    *command.RegisterHandler
	loginHandler       *command.LoginHandler
	deleteUserHandler  *command.DeleteUserHandler
	getUserHandler     *query.GetUserHandler
	listUsersHandler   *query.ListUsersHandler
	listVendorsHandler *query.ListVendorsHandler
	getVendorHandler   *query.GetVendorHandler
}

// NewUserService creates a new user service
func NewUserService(
	registerHandler *command.RegisterHandler,
	loginHandler *command.LoginHandler,
	deleteUserHandler *command.DeleteUserHandler,
	getUserHandler *query.GetUserHandler,
	listUsersHandler *query.ListUsersHandler,
	listVendorsHandler *query.ListVendorsHandler,
	getVendorHandler *query.GetVendorHandler,
) *UserService {
	return &UserService{
		registerHandler:    registerHandler,
		loginHandler:       loginHandler,
		deleteUserHandler:  deleteUserHandler,
		getUserHandler:     getUserHandler,
		listUsersHandler:   listUsersHandler,
		listVendorsHandler: listVendorsHandler,
		getVendorHandler:   getVendorHandler,
	}
}

// Register creates an account and signs a token for it
func (s *UserService) Register(ctx context.Context, cmd *command.RegisterUser) (*AuthResponse, error) {
	result, err := s.registerHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: result.Token, User: query.NewUserView(result.User)}, nil
}

// Login checks credentials and signs a token
func (s *UserService) Login(ctx context.Context, cmd *command.LoginUser) (*AuthResponse, error) {
	result, err := s.loginHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: result.Token, User: query.NewUserView(result.User)}, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID string) (*query.UserView, error) {
	return s.getUserHandler.Handle(ctx, userID)
}

// ListUsers lists accounts, optionally by role
func (s *UserService) ListUsers(ctx context.Context, role aggregate.UserRole) ([]query.UserView, error) {
	return s.listUsersHandler.Handle(ctx, role)
}

// DeleteUser removes a non-admin account
func (s *UserService) DeleteUser(ctx context.Context, cmd *command.DeleteUser) error {
	return s.deleteUserHandler.Handle(ctx, cmd)
}

// ListVendors lists active vendors matching the filter
func (s *UserService) ListVendors(ctx context.Context, filter query.VendorFilter) ([]query.VendorSummary, error) {
	return s.listVendorsHandler.Handle(ctx, filter)
}

// GetVendor retrieves a vendor profile with its listings
func (s *UserService) GetVendor(ctx context.Context, vendorID string) (*query.VendorDetail, error) {
	return s.getVendorHandler.Handle(ctx, vendorID)
}
