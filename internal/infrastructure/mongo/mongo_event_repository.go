package mongo

import (
	"context"
	"time"

	"party-paradise/internal/domain/aggregate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEventRepository stores events with their embedded selections
type MongoEventRepository struct {
	sessionBinder
	collection      *mongo.Collection
	eventCollection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoDB event repository
func NewMongoEventRepository(database *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{
		collection:      database.Collection(eventsCollection),
		eventCollection: database.Collection(domainEvents),
	}
}

// Save upserts the event document and appends its domain events
func (r *MongoEventRepository) Save(ctx context.Context, e *aggregate.Event) error {
	ctx = r.getContext(ctx)

	if err := appendEvents(ctx, r.eventCollection, "event", e); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": e.ID()}, toEventDocument(e), opts); err != nil {
		return mapError(err, "failed to save event")
	}

	e.MarkEventsAsCommitted()
	return nil
}

func (r *MongoEventRepository) GetByID(ctx context.Context, id string) (*aggregate.Event, error) {
	ctx = r.getContext(ctx)

	var doc eventDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapError(err, "failed to get event")
	}
	return doc.toAggregate(), nil
}

func (r *MongoEventRepository) Delete(ctx context.Context, id string) error {
	ctx = r.getContext(ctx)

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "failed to delete event")
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments, "failed to delete event")
	}
	return nil
}

func (r *MongoEventRepository) find(ctx context.Context, filter bson.M) ([]*aggregate.Event, error) {
	ctx = r.getContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "failed to find events")
	}
	return decodeAll(ctx, cursor, eventDocument.toAggregate)
}

func (r *MongoEventRepository) ListByHost(ctx context.Context, hostID string) ([]*aggregate.Event, error) {
	return r.find(ctx, bson.M{"host_id": hostID})
}

func (r *MongoEventRepository) ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Event, error) {
	return r.find(ctx, bson.M{"selections.vendor_id": vendorID})
}

func (r *MongoEventRepository) ListAll(ctx context.Context) ([]*aggregate.Event, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoEventRepository) ListDroppable(ctx context.Context, hostID string, before time.Time) ([]*aggregate.Event, error) {
	filter := bson.M{
		"date": bson.M{"$lt": before},
		"status": bson.M{"$in": bson.A{
			string(aggregate.EventStatusDraft),
			string(aggregate.EventStatusPending),
			string(aggregate.EventStatusSubmitted),
			string(aggregate.EventStatusDropped),
		}},
	}
	if hostID != "" {
		filter["host_id"] = hostID
	}
	return r.find(ctx, filter)
}
