package http

import (
	"net/http"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/services"
	"party-paradise/internal/domain/aggregate"
	"party-paradise/pkg/middleware"
	"party-paradise/pkg/response"
)

// HTTPAuthController handles registration, login and the current user
type HTTPAuthController struct {
	userService *services.UserService
}

// NewHTTPAuthController creates a new auth controller
func NewHTTPAuthController(userService *services.UserService) *HTTPAuthController {
	return &HTTPAuthController{userService: userService}
}

// Register handles POST /auth/register
func (c *HTTPAuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		UserType     string `json:"userType"`
		District     string `json:"district"`
		Phone        string `json:"phone"`
		BusinessName string `json:"businessName"`
		ServiceType  string `json:"serviceType"`
		Description  string `json:"description"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	result, err := c.userService.Register(r.Context(), &command.RegisterUser{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         aggregate.UserRole(req.UserType),
		District:     req.District,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		ServiceType:  req.ServiceType,
		Description:  req.Description,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, result)
}

// Login handles POST /auth/login
func (c *HTTPAuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	result, err := c.userService.Login(r.Context(), &command.LoginUser{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// Me handles GET /auth/me
func (c *HTTPAuthController) Me(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	user, err := c.userService.GetUser(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, user)
}
