package services

import (
	"context"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/query"
)

// ReviewService handles vendor reviews
type ReviewService struct {
	submitReviewHandler    *command.SubmitReviewHandler
	vendorReviewsHandler   *query.VendorReviewsHandler
	vendorsToReviewHandler *query.VendorsToReviewHandler
}

// NewReviewService creates a new review service
func NewReviewService(
	submitReviewHandler *command.SubmitReviewHandler,
	vendorReviewsHandler *query.VendorReviewsHandler,
	vendorsToReviewHandler *query.VendorsToReviewHandler,
) *ReviewService {
	return &ReviewService{
		submitReviewHandler:    submitReviewHandler,
		vendorReviewsHandler:   vendorReviewsHandler,
		vendorsToReviewHandler: vendorsToReviewHandler,
	}
}

// SubmitReview stores a host's review of a vendor
func (s *ReviewService) SubmitReview(ctx context.Context, cmd *command.SubmitReview) (*query.ReviewView, error) {
	review, err := s.submitReviewHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewReviewView(review)
	return &view, nil
}

// VendorReviews lists a vendor's reviews with the average rating
func (s *ReviewService) VendorReviews(ctx context.Context, vendorID string) (*query.VendorReviewsResult, error) {
	return s.vendorReviewsHandler.Handle(ctx, vendorID)
}

// VendorsToReview lists vendors the host can still review
func (s *ReviewService) VendorsToReview(ctx context.Context, hostID string) ([]query.ReviewCandidate, error) {
	return s.vendorsToReviewHandler.Handle(ctx, hostID)
}

// MessageService handles direct messages
type MessageService struct {
	sendMessageHandler       *command.SendMessageHandler
	listConversationsHandler *query.ListConversationsHandler
	getConversationHandler   *query.GetConversationHandler
	unreadCountHandler       *query.UnreadCountHandler
}

// NewMessageService creates a new message service
func NewMessageService(
	sendMessageHandler *command.SendMessageHandler,
	listConversationsHandler *query.ListConversationsHandler,
	getConversationHandler *query.GetConversationHandler,
	unreadCountHandler *query.UnreadCountHandler,
) *MessageService {
	return &MessageService{
		sendMessageHandler:       sendMessageHandler,
		listConversationsHandler: listConversationsHandler,
		getConversationHandler:   getConversationHandler,
		unreadCountHandler:       unreadCountHandler,
	}
}

// SendMessage stores a message
func (s *MessageService) SendMessage(ctx context.Context, cmd *command.SendMessage) (*query.MessageView, error) {
	message, err := s.sendMessageHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewMessageView(message)
	return &view, nil
}

// Conversations lists the caller's conversations
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]query.ConversationSummary, error) {
	return s.listConversationsHandler.Handle(ctx, userID)
}

// Conversation returns the thread with another user and marks it read
func (s *MessageService) Conversation(ctx context.Context, userID, otherUserID string) ([]query.MessageView, error) {
	return s.getConversationHandler.Handle(ctx, userID, otherUserID)
}

// UnreadCount counts the caller's unread messages
func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.unreadCountHandler.Handle(ctx, userID)
}
