package http

import (
	"net/http"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/services"
	"party-paradise/pkg/middleware"
	"party-paradise/pkg/response"

	"github.com/go-chi/chi/v5"
)

// HTTPSocialController handles reviews and direct messages
type HTTPSocialController struct {
	reviewService  *services.ReviewService
	messageService *services.MessageService
}

// NewHTTPSocialController creates a new reviews and messages controller
func NewHTTPSocialController(reviewService *services.ReviewService, messageService *services.MessageService) *HTTPSocialController {
	return &HTTPSocialController{
		reviewService:  reviewService,
		messageService: messageService,
	}
}

// SubmitReview handles POST /reviews/submit
func (c *HTTPSocialController) SubmitReview(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		VendorID    string `json:"vendorId"`
		EventID     string `json:"eventId"`
		Rating      int    `json:"rating"`
		Review      string `json:"review"`
		ServiceType string `json:"serviceType"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	review, err := c.reviewService.SubmitReview(r.Context(), &command.SubmitReview{
		HostID:      p.UserID,
		VendorID:    req.VendorID,
		EventID:     req.EventID,
		Rating:      req.Rating,
		Text:        req.Review,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, review)
}

// VendorsToReview handles GET /reviews/vendors-to-review
func (c *HTTPSocialController) VendorsToReview(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	vendors, err := c.reviewService.VendorsToReview(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, vendors)
}

// MyReviews handles GET /reviews/vendor-reviews
func (c *HTTPSocialController) MyReviews(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	result, err := c.reviewService.VendorReviews(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// VendorReviews handles GET /reviews/vendor/{vendorId}
func (c *HTTPSocialController) VendorReviews(w http.ResponseWriter, r *http.Request) {
	result, err := c.reviewService.VendorReviews(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// SendMessage handles POST /messages/send
func (c *HTTPSocialController) SendMessage(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	var req struct {
		ReceiverID string `json:"receiverId"`
		Message    string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	message, err := c.messageService.SendMessage(r.Context(), &command.SendMessage{
		SenderID:   p.UserID,
		ReceiverID: req.ReceiverID,
		Text:       req.Message,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, message)
}

// Conversations handles GET /messages/conversations
func (c *HTTPSocialController) Conversations(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	conversations, err := c.messageService.Conversations(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, conversations)
}

// Conversation handles GET /messages/conversation/{otherUserId}
func (c *HTTPSocialController) Conversation(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	messages, err := c.messageService.Conversation(r.Context(), p.UserID, chi.URLParam(r, "otherUserId"))
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendList(w, r, messages)
}

// UnreadCount handles GET /messages/unread-count
func (c *HTTPSocialController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	count, err := c.messageService.UnreadCount(r.Context(), p.UserID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]int{"unreadCount": count})
}
