package repository

import (
	"context"

	"party-paradise/internal/domain/aggregate"
)

// ServiceRepository persists vendor listings
type ServiceRepository interface {
	Save(ctx context.Context, service *aggregate.Service) error
	GetByID(ctx context.Context, id string) (*aggregate.Service, error)
	Delete(ctx context.Context, id string) error
	ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Service, error)
	ListActive(ctx context.Context) ([]*aggregate.Service, error)
}

// ReviewRepository persists reviews; (vendor, host, event) is unique
type ReviewRepository interface {
	Save(ctx context.Context, review *aggregate.Review) error
	Exists(ctx context.Context, vendorID, hostID, eventID string) (bool, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Review, error)
	ListByHost(ctx context.Context, hostID string) ([]*aggregate.Review, error)
}

// MessageRepository persists direct messages
type MessageRepository interface {
	Save(ctx context.Context, message *aggregate.Message) error
	ListConversation(ctx context.Context, conversationID string) ([]*aggregate.Message, error)
	ListForUser(ctx context.Context, userID string) ([]*aggregate.Message, error)
	// MarkRead flags every unread message to receiverID in the conversation
	MarkRead(ctx context.Context, conversationID, receiverID string) (int, error)
	CountUnread(ctx context.Context, receiverID string) (int, error)
}
