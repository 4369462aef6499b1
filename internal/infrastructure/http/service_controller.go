package http

import (
	"net/http"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/query"
	"party-paradise/internal/application/services"
	"party-paradise/internal/domain/aggregate"
	"party-paradise/pkg/middleware"
	"party-paradise/pkg/response"

	"github.com/go-chi/chi/v5"
)

// HTTPServiceController handles HTTP requests for vendor listings and the
// vendor directory
type HTTPServiceController struct {
	service     *services.ServiceService
	userService *services.UserService
}

// NewHTTPServiceController creates a new HTTP service controller
func NewHTTPServiceController(service *services.ServiceService, userService *services.UserService) *HTTPServiceController {
	return &HTTPServiceController{
		service:     service,
		userService: userService,
	}
}

// CreateService handles POST /services
func (c *HTTPServiceController) CreateService(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		PackageName  string   `json:"packageName"`
		Description  string   `json:"description"`
		Price        int64    `json:"price"`
		Duration     string   `json:"duration"`
		Features     []string `json:"features"`
		AvailableFor []string `json:"availableFor"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	service, err := c.service.CreateService(r.Context(), &command.CreateService{
		VendorID:     p.UserID,
		PackageName:  req.PackageName,
		Description:  req.Description,
		Price:        req.Price,
		Duration:     req.Duration,
		Features:     req.Features,
		AvailableFor: req.AvailableFor,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, service)
}

// UpdateService handles PUT /services/{id}
func (c *HTTPServiceController) UpdateService(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		PackageName  *string  `json:"packageName"`
		Description  *string  `json:"description"`
		Price        *int64   `json:"price"`
		Duration     *string  `json:"duration"`
		Features     []string `json:"features"`
		AvailableFor []string `json:"availableFor"`
		IsActive     *bool    `json:"isActive"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	service, err := c.service.UpdateService(r.Context(), &command.UpdateService{
		ServiceID: chi.URLParam(r, "id"),
		VendorID:  p.UserID,
		Patch: aggregate.ServicePatch{
			PackageName:  req.PackageName,
			Description:  req.Description,
			Price:        req.Price,
			Duration:     req.Duration,
			Features:     req.Features,
			AvailableFor: req.AvailableFor,
			IsActive:     req.IsActive,
		},
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, service)
}

// DeleteService handles DELETE /services/{id}
func (c *HTTPServiceController) DeleteService(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	if err := c.service.DeleteService(r.Context(), &command.DeleteService{
		ServiceID: chi.URLParam(r, "id"),
		VendorID:  p.UserID,
	}); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Service deleted successfully"})
}

// GetService handles GET /services/{id}
func (c *HTTPServiceController) GetService(w http.ResponseWriter, r *http.Request) {
	service, err := c.service.GetService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, service)
}

// MyServices handles GET /services/my-services
func (c *HTTPServiceController) MyServices(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	listings, err := c.service.ListVendorServices(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, listings)
}

// ListServices handles GET /services/all
func (c *HTTPServiceController) ListServices(w http.ResponseWriter, r *http.Request) {
	listings, err := c.service.ListServices(r.Context())
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, listings)
}

// ListVendors handles GET /vendors?serviceType=&district=
func (c *HTTPServiceController) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := c.userService.ListVendors(r.Context(), query.VendorFilter{
		ServiceType: r.URL.Query().Get("serviceType"),
		District:    r.URL.Query().Get("district"),
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, vendors)
}

// GetVendor handles GET /vendors/{vendorId}
func (c *HTTPServiceController) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := c.userService.GetVendor(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, vendor)
}
