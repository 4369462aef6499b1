package mongo

import (
	"context"
	"errors"
	"fmt"

	"party-paradise/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// sessionBinder implements repository.TransactionalRepository for the
// concrete repositories
type sessionBinder struct {
	session mongo.Session
}

// SetTransaction implements TransactionalRepository
func (b *sessionBinder) SetTransaction(tx interface{}) {
	session, _ := tx.(mongo.Session)
	b.session = session
}

// GetTransaction implements TransactionalRepository
func (b *sessionBinder) GetTransaction() interface{} {
	return b.session
}

// IsTransactional implements TransactionalRepository
func (b *sessionBinder) IsTransactional() bool {
	return b.session != nil
}

// getContext returns the appropriate context for MongoDB operations
func (b *sessionBinder) getContext(ctx context.Context) context.Context {
	if b.session != nil {
		return mongo.NewSessionContext(ctx, b.session)
	}
	return ctx
}

// appendEvents stores the aggregate's uncommitted events in the shared log
func appendEvents(ctx context.Context, collection *mongo.Collection, aggregateType string, root repository.AggregateRoot) error {
	events := root.GetUncommittedEvents()
	if len(events) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(events))
	for _, evt := range events {
		docs = append(docs, bson.M{
			"aggregate_type": aggregateType,
			"aggregate_id":   evt.AggregateID(),
			"event_type":     evt.EventType(),
			"event_data":     evt,
			"occurred_at":    evt.OccurredAt(),
		})
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}

// mapError translates driver errors into repository sentinels
func mapError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", action, repository.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

// decodeAll drains a cursor through convert
func decodeAll[D any, A any](ctx context.Context, cursor *mongo.Cursor, convert func(D) A) ([]A, error) {
	defer cursor.Close(ctx)

	var out []A
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		out = append(out, convert(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}
