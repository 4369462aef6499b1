package mongo

import (
	"context"
	"fmt"
	"sync"

	"party-paradise/internal/domain/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUnitOfWork implements the Unit of Work pattern for MongoDB.
// Multi-document transactions need a replica set.
type MongoUnitOfWork struct {
	client        *mongo.Client
	database      *mongo.Database
	session       mongo.Session
	repositories  map[string]repository.TransactionalRepository
	mutex         sync.RWMutex
	inTransaction bool
}

// NewMongoUnitOfWork creates a new MongoDB unit of work
func NewMongoUnitOfWork(client *mongo.Client, database *mongo.Database) *MongoUnitOfWork {
	return &MongoUnitOfWork{
		client:       client,
		database:     database,
		repositories: make(map[string]repository.TransactionalRepository),
	}
}

// Begin starts a new transaction
func (uow *MongoUnitOfWork) Begin(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.inTransaction {
		return fmt.Errorf("unit of work is already in transaction")
	}

	session, err := uow.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	if err := session.StartTransaction(); err != nil {
		session.EndSession(ctx)
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	uow.session = session
	uow.inTransaction = true

	for _, repo := range uow.repositories {
		repo.SetTransaction(uow.session)
	}
	return nil
}

// Commit commits the current transaction
func (uow *MongoUnitOfWork) Commit(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to commit")
	}

	if err := uow.session.CommitTransaction(ctx); err != nil {
		uow.endTransaction(ctx)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	uow.endTransaction(ctx)
	return nil
}

// Rollback rolls back the current transaction
func (uow *MongoUnitOfWork) Rollback(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to rollback")
	}

	err := uow.session.AbortTransaction(ctx)
	uow.endTransaction(ctx)
	if err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// repo returns the cached repository for name, creating and binding it on first use
func (uow *MongoUnitOfWork) repo(name string, create func(*mongo.Database) repository.TransactionalRepository) repository.TransactionalRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if r, ok := uow.repositories[name]; ok {
		return r
	}

	r := create(uow.database)
	if uow.inTransaction {
		r.SetTransaction(uow.session)
	}
	uow.repositories[name] = r
	return r
}

func (uow *MongoUnitOfWork) UserRepository() repository.UserRepository {
	return uow.repo("user", func(db *mongo.Database) repository.TransactionalRepository {
		return NewMongoUserRepository(db)
	}).(repository.UserRepository)
}

func (uow *MongoUnitOfWork) EventRepository() repository.EventRepository {
	return uow.repo("event", func(db *mongo.Database) repository.TransactionalRepository {
		return NewMongoEventRepository(db)
	}).(repository.EventRepository)
}

func (uow *MongoUnitOfWork) PaymentRepository() repository.PaymentRepository {
	return uow.repo("payment", func(db *mongo.Database) repository.TransactionalRepository {
		return NewMongoPaymentRepository(db)
	}).(repository.PaymentRepository)
}

func (uow *MongoUnitOfWork) EarningsRepository() repository.EarningsRepository {
	return uow.repo("earnings", func(db *mongo.Database) repository.TransactionalRepository {
		return NewMongoEarningsRepository(db)
	}).(repository.EarningsRepository)
}

func (uow *MongoUnitOfWork) ServiceRepository() repository.ServiceRepository {
	return uow.repo("service", func(db *mongo.Database) repository.TransactionalRepository {
		return NewMongoServiceRepository(db)
	}).(repository.ServiceRepository)
}

func (uow *MongoUnitOfWork) ReviewRepository() repository.ReviewRepository {
	return uow.repo("review", func(db *mongo.Database) repository.TransactionalRepository {
		return NewMongoReviewRepository(db)
	}).(repository.ReviewRepository)
}

func (uow *MongoUnitOfWork) MessageRepository() repository.MessageRepository {
	return uow.repo("message", func(db *mongo.Database) repository.TransactionalRepository {
		return NewMongoMessageRepository(db)
	}).(repository.MessageRepository)
}

// Close aborts any transaction left open
func (uow *MongoUnitOfWork) Close() error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.inTransaction && uow.session != nil {
		ctx := context.Background()
		_ = uow.session.AbortTransaction(ctx)
		uow.endTransaction(ctx)
	}
	return nil
}

// IsInTransaction returns whether the unit of work is in a transaction
func (uow *MongoUnitOfWork) IsInTransaction() bool {
	uow.mutex.RLock()
	defer uow.mutex.RUnlock()
	return uow.inTransaction
}

// endTransaction cleans up transaction resources
func (uow *MongoUnitOfWork) endTransaction(ctx context.Context) {
	if uow.session != nil {
		uow.session.EndSession(ctx)
		uow.session = nil
	}
	uow.inTransaction = false

	for _, repo := range uow.repositories {
		repo.SetTransaction(nil)
	}
}

// MongoUnitOfWorkFactory creates MongoDB unit of work instances
type MongoUnitOfWorkFactory struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoUnitOfWorkFactory creates a new MongoDB unit of work factory
func NewMongoUnitOfWorkFactory(client *mongo.Client, database *mongo.Database) *MongoUnitOfWorkFactory {
	return &MongoUnitOfWorkFactory{
		client:   client,
		database: database,
	}
}

// CreateUnitOfWork creates a new unit of work instance
func (f *MongoUnitOfWorkFactory) CreateUnitOfWork() repository.UnitOfWork {
	return NewMongoUnitOfWork(f.client, f.database)
}
