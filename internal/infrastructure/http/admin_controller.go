package http

import (
	"net/http"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/services"
	"party-paradise/internal/domain/aggregate"
	"party-paradise/pkg/middleware"
	"party-paradise/pkg/response"

	"github.com/go-chi/chi/v5"
)

// AdminController handles admin-only endpoints
type AdminController struct {
	adminService *services.AdminService
	userService  *services.UserService
}

// NewAdminController creates a new admin controller
func NewAdminController(adminService *services.AdminService, userService *services.UserService) *AdminController {
	return &AdminController{
		adminService: adminService,
		userService:  userService,
	}
}

// ListUsers handles GET /admin/users?role=
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.userService.ListUsers(r.Context(), aggregate.UserRole(r.URL.Query().Get("role")))
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, users)
}

// DeleteUser handles DELETE /admin/users/{id}
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	if err := c.userService.DeleteUser(r.Context(), &command.DeleteUser{
		UserID:  chi.URLParam(r, "id"),
		AdminID: p.UserID,
	}); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "User deleted successfully"})
}

// ListEvents handles GET /admin/events
func (c *AdminController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.adminService.ListEvents(r.Context())
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, events)
}

// EventPayments handles GET /admin/event-payments/{eventId}
func (c *AdminController) EventPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := c.adminService.EventPayments(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, payments)
}

// Reports handles GET /admin/reports
func (c *AdminController) Reports(w http.ResponseWriter, r *http.Request) {
	report, err := c.adminService.Report(r.Context())
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, report)
}
