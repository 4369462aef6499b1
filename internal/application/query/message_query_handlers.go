package query

import (
	"context"
	"fmt"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/pkg/errors"
)

// ConversationSummary is the latest message with one counterpart
type ConversationSummary struct {
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	District        string    `json:"district,omitempty"`
	UserType        string    `json:"userType,omitempty"`
	ConversationID  string    `json:"conversationId"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
}

// ListConversationsHandler groups a user's messages by counterpart
type ListConversationsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListConversationsHandler creates a new list conversations handler
func NewListConversationsHandler(uowFactory repository.UnitOfWorkFactory) *ListConversationsHandler {
	return &ListConversationsHandler{uowFactory: uowFactory}
}

// Handle returns conversations, most recently active first
func (h *ListConversationsHandler) Handle(ctx context.Context, userID string) ([]ConversationSummary, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	messages, err := uow.MessageRepository().ListForUser(ctx, userID)
	if err != nil {
		return nil, readError(err, "messages")
	}

	userRepo := uow.UserRepository()
	index := map[string]int{}
	conversations := []ConversationSummary{}

	// messages are oldest first
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		other := m.Counterpart(userID)
		pos, ok := index[other]
		if !ok {
			summary := ConversationSummary{
				UserID:          other,
				ConversationID:  m.ConversationID(),
				LastMessage:     m.Text(),
				LastMessageTime: m.CreatedAt(),
			}
			if u, err := userRepo.GetByID(ctx, other); err == nil {
				summary.Name = DisplayName(u)
				summary.District = u.District()
				summary.UserType = string(u.Role())
			}
			pos = len(conversations)
			index[other] = pos
			conversations = append(conversations, summary)
		}
		if m.ReceiverID() == userID && !m.IsRead() {
			conversations[pos].UnreadCount++
		}
	}
	return conversations, nil
}

// GetConversationHandler returns the thread with one user and marks the
// caller's incoming messages read
type GetConversationHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewGetConversationHandler creates a new get conversation handler
func NewGetConversationHandler(uowFactory repository.UnitOfWorkFactory) *GetConversationHandler {
	return &GetConversationHandler{uowFactory: uowFactory}
}

// Handle processes the get conversation query
func (h *GetConversationHandler) Handle(ctx context.Context, userID, otherUserID string) ([]MessageView, error) {
	if otherUserID == "" {
		return nil, errors.NewValidationError("other user id is required")
	}
	conversationID := aggregate.ConversationID(userID, otherUserID)

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}
	if _, err := uow.MessageRepository().MarkRead(ctx, conversationID, userID); err != nil {
		uow.Rollback(ctx)
		return nil, readError(err, "messages")
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	messages, err := uow.MessageRepository().ListConversation(ctx, conversationID)
	if err != nil {
		return nil, readError(err, "messages")
	}
	return NewMessageViews(messages), nil
}

// UnreadCountHandler counts a user's unread incoming messages
type UnreadCountHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewUnreadCountHandler creates a new unread count handler
func NewUnreadCountHandler(uowFactory repository.UnitOfWorkFactory) *UnreadCountHandler {
	return &UnreadCountHandler{uowFactory: uowFactory}
}

// Handle processes the unread count query
func (h *UnreadCountHandler) Handle(ctx context.Context, userID string) (int, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	count, err := uow.MessageRepository().CountUnread(ctx, userID)
	if err != nil {
		return 0, readError(err, "messages")
	}
	return count, nil
}
