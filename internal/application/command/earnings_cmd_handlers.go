package command

import (
	"context"
	stderrors "errors"
	"fmt"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/logger"
)

// loadOrOpenLedger returns the vendor's ledger, opening an empty one on first use
func loadOrOpenLedger(ctx context.Context, repo repository.EarningsRepository, vendorID string) (*aggregate.VendorEarnings, error) {
	ledger, err := repo.GetByVendorID(ctx, vendorID)
	if err == nil {
		return ledger, nil
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return aggregate.NewVendorEarnings(vendorID)
}

// ledgerMutator runs a change against one vendor ledger in a unit of work
type ledgerMutator struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// RequestWithdrawalHandler handles vendor withdrawals
type RequestWithdrawalHandler struct {
	ledgerMutator
}

// NewRequestWithdrawalHandler creates a new withdrawal handler
func NewRequestWithdrawalHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *RequestWithdrawalHandler {
	return &RequestWithdrawalHandler{ledgerMutator{uowFactory: uowFactory, eventBus: eventBus}}
}

// Handle processes the withdrawal command
func (h *RequestWithdrawalHandler) Handle(ctx context.Context, cmd *RequestWithdrawal) (*aggregate.VendorEarnings, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}
	if cmd.Amount <= 0 {
		return nil, errors.NewValidationError("amount must be greater than 0")
	}

	return h.mutateLedger(ctx, cmd.VendorID, false, func(ledger *aggregate.VendorEarnings) error {
		if err := ledger.ProcessWithdrawal(cmd.Amount, "Withdrawal to bank account"); err != nil {
			return errors.NewValidationError(err.Error())
		}
		return nil
	})
}

// UpdateBankDetailsHandler stores vendor payout details
type UpdateBankDetailsHandler struct {
	ledgerMutator
}

// NewUpdateBankDetailsHandler creates a new bank details handler
func NewUpdateBankDetailsHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *UpdateBankDetailsHandler {
	return &UpdateBankDetailsHandler{ledgerMutator{uowFactory: uowFactory, eventBus: eventBus}}
}

// Handle processes the bank details command
func (h *UpdateBankDetailsHandler) Handle(ctx context.Context, cmd *UpdateBankDetails) (*aggregate.VendorEarnings, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	return h.mutateLedger(ctx, cmd.VendorID, true, func(ledger *aggregate.VendorEarnings) error {
		if err := ledger.UpdateBankDetails(cmd.Details); err != nil {
			return errors.NewValidationError(err.Error())
		}
		return nil
	})
}

func (h *ledgerMutator) mutateLedger(
	ctx context.Context,
	vendorID string,
	openIfMissing bool,
	fn func(*aggregate.VendorEarnings) error,
) (*aggregate.VendorEarnings, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	earningsRepo := uow.EarningsRepository()
	var (
		ledger *aggregate.VendorEarnings
		err    error
	)
	if openIfMissing {
		ledger, err = loadOrOpenLedger(ctx, earningsRepo, vendorID)
	} else {
		ledger, err = earningsRepo.GetByVendorID(ctx, vendorID)
		if stderrors.Is(err, repository.ErrNotFound) {
			uow.Rollback(ctx)
			return nil, errors.NewValidationError(aggregate.ErrInsufficientBalance.Error())
		}
	}
	if err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "vendor earnings")
	}

	if err := fn(ledger); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	events := ledger.GetUncommittedEvents()
	if err := earningsRepo.Save(ctx, ledger); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "vendor earnings")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish ledger events")
	}
	return ledger, nil
}
