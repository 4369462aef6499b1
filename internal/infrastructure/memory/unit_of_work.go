package memory

import (
	"context"
	"fmt"

	"party-paradise/internal/domain/repository"
)

// UnitOfWork implements repository.UnitOfWork over a Store
type UnitOfWork struct {
	store         *Store
	snapshot      tables
	inTransaction bool
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.inTransaction {
		return fmt.Errorf("unit of work is already in transaction")
	}
	uow.store.txMu.Lock()
	uow.store.read(func(t tables) { uow.snapshot = t.clone() })
	uow.inTransaction = true
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to commit")
	}
	uow.end()
	return nil
}

func (uow *UnitOfWork) Rollback(ctx context.Context) error {
	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to rollback")
	}
	uow.store.mu.Lock()
	uow.store.data = uow.snapshot
	uow.store.mu.Unlock()
	uow.end()
	return nil
}

func (uow *UnitOfWork) end() {
	uow.snapshot = tables{}
	uow.inTransaction = false
	uow.store.txMu.Unlock()
}

// Close rolls back a transaction that was never committed
func (uow *UnitOfWork) Close() error {
	if uow.inTransaction {
		return uow.Rollback(context.Background())
	}
	return nil
}

func (uow *UnitOfWork) IsInTransaction() bool { return uow.inTransaction }

func (uow *UnitOfWork) UserRepository() repository.UserRepository {
	return &userRepository{store: uow.store}
}

func (uow *UnitOfWork) EventRepository() repository.EventRepository {
	return &eventRepository{store: uow.store}
}

func (uow *UnitOfWork) PaymentRepository() repository.PaymentRepository {
	return &paymentRepository{store: uow.store}
}

func (uow *UnitOfWork) EarningsRepository() repository.EarningsRepository {
	return &earningsRepository{store: uow.store}
}

func (uow *UnitOfWork) ServiceRepository() repository.ServiceRepository {
	return &serviceRepository{store: uow.store}
}

func (uow *UnitOfWork) ReviewRepository() repository.ReviewRepository {
	return &reviewRepository{store: uow.store}
}

func (uow *UnitOfWork) MessageRepository() repository.MessageRepository {
	return &messageRepository{store: uow.store}
}

// UnitOfWorkFactory creates units of work sharing one Store
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) CreateUnitOfWork() repository.UnitOfWork {
	return &UnitOfWork{store: f.store}
}
