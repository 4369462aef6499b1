package mongo

import (
	"context"

	"party-paradise/internal/domain/aggregate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMessageRepository stores direct messages
type MongoMessageRepository struct {
	sessionBinder
	collection *mongo.Collection
}

func NewMongoMessageRepository(database *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: database.Collection(messagesCollection)}
}

func (r *MongoMessageRepository) Save(ctx context.Context, message *aggregate.Message) error {
	ctx = r.getContext(ctx)

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": message.ID()}, toMessageDocument(message), opts)
	return mapError(err, "failed to save message")
}

func (r *MongoMessageRepository) find(ctx context.Context, filter bson.M) ([]*aggregate.Message, error) {
	ctx = r.getContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "failed to find messages")
	}
	return decodeAll(ctx, cursor, messageDocument.toAggregate)
}

func (r *MongoMessageRepository) ListConversation(ctx context.Context, conversationID string) ([]*aggregate.Message, error) {
	return r.find(ctx, bson.M{"conversation_id": conversationID})
}

func (r *MongoMessageRepository) ListForUser(ctx context.Context, userID string) ([]*aggregate.Message, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"receiver_id": userID},
	}})
}

func (r *MongoMessageRepository) MarkRead(ctx context.Context, conversationID, receiverID string) (int, error) {
	ctx = r.getContext(ctx)

	res, err := r.collection.UpdateMany(ctx,
		bson.M{"conversation_id": conversationID, "receiver_id": receiverID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, mapError(err, "failed to mark messages read")
	}
	return int(res.ModifiedCount), nil
}

func (r *MongoMessageRepository) CountUnread(ctx context.Context, receiverID string) (int, error) {
	ctx = r.getContext(ctx)

	n, err := r.collection.CountDocuments(ctx, bson.M{"receiver_id": receiverID, "read": false})
	if err != nil {
		return 0, mapError(err, "failed to count unread messages")
	}
	return int(n), nil
}
