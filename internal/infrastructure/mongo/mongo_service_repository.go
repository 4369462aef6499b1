package mongo

import (
	"context"

	"party-paradise/internal/domain/aggregate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepository stores vendor listings
type MongoServiceRepository struct {
	sessionBinder
	collection *mongo.Collection
}

func NewMongoServiceRepository(database *mongo.Database) *MongoServiceRepository {
	return &MongoServiceRepository{collection: database.Collection(servicesCollection)}
}

func (r *MongoServiceRepository) Save(ctx context.Context, service *aggregate.Service) error {
	ctx = r.getContext(ctx)

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": service.ID()}, toServiceDocument(service), opts)
	return mapError(err, "failed to save service")
}

func (r *MongoServiceRepository) GetByID(ctx context.Context, id string) (*aggregate.Service, error) {
	ctx = r.getContext(ctx)

	var doc serviceDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapError(err, "failed to get service")
	}
	return doc.toAggregate(), nil
}

func (r *MongoServiceRepository) Delete(ctx context.Context, id string) error {
	ctx = r.getContext(ctx)

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "failed to delete service")
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments, "failed to delete service")
	}
	return nil
}

func (r *MongoServiceRepository) find(ctx context.Context, filter bson.M) ([]*aggregate.Service, error) {
	ctx = r.getContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "failed to find services")
	}
	return decodeAll(ctx, cursor, serviceDocument.toAggregate)
}

func (r *MongoServiceRepository) ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Service, error) {
	return r.find(ctx, bson.M{"vendor_id": vendorID})
}

func (r *MongoServiceRepository) ListActive(ctx context.Context) ([]*aggregate.Service, error) {
	return r.find(ctx, bson.M{"is_active": true})
}

// MongoReviewRepository stores reviews; the unique index rejects repeats
type MongoReviewRepository struct {
	sessionBinder
	collection *mongo.Collection
}

func NewMongoReviewRepository(database *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{collection: database.Collection(reviewsCollection)}
}

func (r *MongoReviewRepository) Save(ctx context.Context, review *aggregate.Review) error {
	ctx = r.getContext(ctx)

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": review.ID()}, toReviewDocument(review), opts)
	return mapError(err, "failed to save review")
}

func (r *MongoReviewRepository) Exists(ctx context.Context, vendorID, hostID, eventID string) (bool, error) {
	ctx = r.getContext(ctx)

	n, err := r.collection.CountDocuments(ctx, bson.M{
		"vendor_id": vendorID,
		"host_id":   hostID,
		"event_id":  eventID,
	})
	if err != nil {
		return false, mapError(err, "failed to count reviews")
	}
	return n > 0, nil
}

func (r *MongoReviewRepository) find(ctx context.Context, filter bson.M) ([]*aggregate.Review, error) {
	ctx = r.getContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "failed to find reviews")
	}
	return decodeAll(ctx, cursor, reviewDocument.toAggregate)
}

func (r *MongoReviewRepository) ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Review, error) {
	return r.find(ctx, bson.M{"vendor_id": vendorID})
}

func (r *MongoReviewRepository) ListByHost(ctx context.Context, hostID string) ([]*aggregate.Review, error) {
	return r.find(ctx, bson.M{"host_id": hostID})
}
