package mongo

import (
	"context"

	"party-paradise/internal/domain/aggregate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepository implements PaymentRepository with real MongoDB persistence
type MongoPaymentRepository struct {
	sessionBinder
	entityCollection *mongo.Collection
	eventCollection  *mongo.Collection
}

// NewMongoPaymentRepository creates a new MongoDB payment repository
func NewMongoPaymentRepository(database *mongo.Database) *MongoPaymentRepository {
	return &MongoPaymentRepository{
		entityCollection: database.Collection(paymentsCollection),
		eventCollection:  database.Collection(domainEvents),
	}
}

// Save stores a payment. A second completed payment for the same
// event/vendor pair is rejected by the partial unique index.
func (r *MongoPaymentRepository) Save(ctx context.Context, payment *aggregate.Payment) error {
	ctx = r.getContext(ctx)

	if err := appendEvents(ctx, r.eventCollection, "payment", payment); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.entityCollection.ReplaceOne(ctx, bson.M{"_id": payment.ID()}, toPaymentDocument(payment), opts)
	if err != nil {
		return mapError(err, "failed to save payment")
	}

	payment.MarkEventsAsCommitted()
	return nil
}

func (r *MongoPaymentRepository) findOne(ctx context.Context, filter bson.M) (*aggregate.Payment, error) {
	ctx = r.getContext(ctx)

	var doc paymentDocument
	if err := r.entityCollection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, "failed to get payment")
	}
	return doc.toAggregate(), nil
}

func (r *MongoPaymentRepository) find(ctx context.Context, filter bson.M) ([]*aggregate.Payment, error) {
	ctx = r.getContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}) // Sort by newest first
	cursor, err := r.entityCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "failed to find payments")
	}
	return decodeAll(ctx, cursor, paymentDocument.toAggregate)
}

func (r *MongoPaymentRepository) GetByID(ctx context.Context, id string) (*aggregate.Payment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*aggregate.Payment, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *MongoPaymentRepository) FindCompleted(ctx context.Context, eventID, vendorID string) (*aggregate.Payment, error) {
	return r.findOne(ctx, bson.M{
		"event_id":  eventID,
		"vendor_id": vendorID,
		"status":    string(aggregate.PaymentStatusCompleted),
	})
}

func (r *MongoPaymentRepository) ListByEvent(ctx context.Context, eventID string) ([]*aggregate.Payment, error) {
	return r.find(ctx, bson.M{"event_id": eventID})
}

func (r *MongoPaymentRepository) ListByVendor(ctx context.Context, vendorID string, status aggregate.PaymentStatus) ([]*aggregate.Payment, error) {
	filter := bson.M{"vendor_id": vendorID}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.find(ctx, filter)
}

func (r *MongoPaymentRepository) ListAll(ctx context.Context) ([]*aggregate.Payment, error) {
	return r.find(ctx, bson.M{})
}

// MongoEarningsRepository stores one ledger document per vendor
type MongoEarningsRepository struct {
	sessionBinder
	collection      *mongo.Collection
	eventCollection *mongo.Collection
}

// NewMongoEarningsRepository creates a new MongoDB ledger repository
func NewMongoEarningsRepository(database *mongo.Database) *MongoEarningsRepository {
	return &MongoEarningsRepository{
		collection:      database.Collection(earningsCollection),
		eventCollection: database.Collection(domainEvents),
	}
}

func (r *MongoEarningsRepository) Save(ctx context.Context, earnings *aggregate.VendorEarnings) error {
	ctx = r.getContext(ctx)

	if err := appendEvents(ctx, r.eventCollection, "vendor_earnings", earnings); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": earnings.ID()}, toEarningsDocument(earnings), opts)
	if err != nil {
		return mapError(err, "failed to save vendor earnings")
	}

	earnings.MarkEventsAsCommitted()
	return nil
}

func (r *MongoEarningsRepository) GetByVendorID(ctx context.Context, vendorID string) (*aggregate.VendorEarnings, error) {
	ctx = r.getContext(ctx)

	var doc earningsDocument
	if err := r.collection.FindOne(ctx, bson.M{"vendor_id": vendorID}).Decode(&doc); err != nil {
		return nil, mapError(err, "failed to get vendor earnings")
	}
	return doc.toAggregate(), nil
}
