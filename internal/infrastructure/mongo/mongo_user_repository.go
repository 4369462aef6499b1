package mongo

import (
	"context"

	"party-paradise/internal/domain/aggregate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements UserRepository
type MongoUserRepository struct {
	sessionBinder
	collection      *mongo.Collection
	eventCollection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(database *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection:      database.Collection(usersCollection),
		eventCollection: database.Collection(domainEvents),
	}
}

func (r *MongoUserRepository) Save(ctx context.Context, user *aggregate.User) error {
	ctx = r.getContext(ctx)

	if err := appendEvents(ctx, r.eventCollection, "user", user); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID()}, toUserDocument(user), opts); err != nil {
		return mapError(err, "failed to save user")
	}

	user.MarkEventsAsCommitted()
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*aggregate.User, error) {
	ctx = r.getContext(ctx)

	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, "failed to get user")
	}
	return doc.toAggregate(), nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*aggregate.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*aggregate.User, error) {
	return r.findOne(ctx, bson.M{"email": aggregate.NormalizeEmail(email)})
}

func (r *MongoUserRepository) List(ctx context.Context, role aggregate.UserRole) ([]*aggregate.User, error) {
	ctx = r.getContext(ctx)

	filter := bson.M{}
	if role != "" {
		filter["role"] = string(role)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "failed to list users")
	}
	return decodeAll(ctx, cursor, userDocument.toAggregate)
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	ctx = r.getContext(ctx)

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "failed to delete user")
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments, "failed to delete user")
	}
	return nil
}
