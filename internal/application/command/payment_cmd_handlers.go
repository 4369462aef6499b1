package command

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/event"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/internal/infrastructure/gateway"
	"party-paradise/internal/metrics"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/logger"
	"party-paradise/pkg/signature"

	"github.com/sirupsen/logrus"
)

// CreatePaymentOrderHandler opens a gateway order and records a pending payment
type CreatePaymentOrderHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	gateway    gateway.PaymentGateway
	currency   string
}

// NewCreatePaymentOrderHandler creates a new create order handler
func NewCreatePaymentOrderHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
	paymentGateway gateway.PaymentGateway,
	currency string,
) *CreatePaymentOrderHandler {
	return &CreatePaymentOrderHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
		gateway:    paymentGateway,
		currency:   currency,
	}
}

// Handle processes the create order command
func (h *CreatePaymentOrderHandler) Handle(ctx context.Context, cmd *CreatePaymentOrder) (*CreatePaymentOrderResult, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return nil, errors.NewValidationError("vendorId is required")
	}
	if cmd.Amount <= 0 {
		return nil, errors.NewValidationError("amount must be greater than 0")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	evt, err := loadOwnedEvent(ctx, uow.EventRepository(), cmd.EventID, cmd.HostID)
	if err != nil {
		return nil, err
	}
	if !evt.HasVendor(cmd.VendorID) {
		return nil, errors.NewValidationError("vendor is not selected for this event")
	}

	if _, err := uow.PaymentRepository().FindCompleted(ctx, evt.ID(), cmd.VendorID); err == nil {
		return nil, errors.NewConflictError("payment already completed for this vendor")
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, domainError(err, "payment")
	}

	packageName := cmd.PackageName
	if packageName == "" {
		if selections := evt.SelectionsFor(cmd.VendorID); len(selections) > 0 {
			packageName = selections[0].PackageName
		}
	}

	order, err := h.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:      cmd.Amount,
		Currency:    h.currency,
		Description: fmt.Sprintf("Event %s", shortRef(evt.ID())),
		ItemName:    packageName,
	})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("gateway order creation failed")
		return nil, errors.NewServiceUnavailableError("payment provider is unavailable")
	}

	payment, err := aggregate.NewPayment(evt.ID(), cmd.HostID, cmd.VendorID, cmd.Amount, order.Currency, packageName, order.OrderID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	events := payment.GetUncommittedEvents()
	if err := uow.PaymentRepository().Save(ctx, payment); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "payment")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish payment events")
	}

	return &CreatePaymentOrderResult{
		PaymentID:   payment.ID(),
		OrderID:     order.OrderID,
		Amount:      payment.Amount(),
		Currency:    payment.Currency(),
		KeyID:       h.gateway.KeyID(),
		CheckoutURL: order.CheckoutURL,
		QRCode:      order.QRCode,
	}, nil
}

func shortRef(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// VerifyPaymentHandler completes payments reported by the checkout client
type VerifyPaymentHandler struct {
	completer *paymentCompleter
	secret    string
}

// NewVerifyPaymentHandler creates a new verify payment handler
func NewVerifyPaymentHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, secret string) *VerifyPaymentHandler {
	return &VerifyPaymentHandler{
		completer: &paymentCompleter{uowFactory: uowFactory, eventBus: eventBus},
		secret:    secret,
	}
}

// Handle checks the signature before touching any state
func (h *VerifyPaymentHandler) Handle(ctx context.Context, cmd *VerifyPayment) (*aggregate.Payment, error) {
	if cmd == nil || cmd.OrderID == "" || cmd.PaymentID == "" || cmd.Signature == "" {
		return nil, errors.NewValidationError("orderId, paymentId and signature are required")
	}

	if !signature.Verify(h.secret, cmd.OrderID, cmd.PaymentID, cmd.Signature) {
		metrics.PaymentVerifications.WithLabelValues("invalid_signature").Inc()
		logger.FromContext(ctx).WithField("order_id", cmd.OrderID).Warn("payment signature mismatch")
		return nil, errors.NewInvalidSignatureError("invalid payment signature")
	}

	return h.completer.complete(ctx, cmd.OrderID, cmd.PaymentID)
}

// ConfirmWebhookPaymentHandler completes payments from gateway callbacks
type ConfirmWebhookPaymentHandler struct {
	completer *paymentCompleter
	gateway   gateway.PaymentGateway
}

// NewConfirmWebhookPaymentHandler creates a new webhook handler
func NewConfirmWebhookPaymentHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
	paymentGateway gateway.PaymentGateway,
) *ConfirmWebhookPaymentHandler {
	return &ConfirmWebhookPaymentHandler{
		completer: &paymentCompleter{uowFactory: uowFactory, eventBus: eventBus},
		gateway:   paymentGateway,
	}
}

// Handle returns a nil payment for verified notifications of unsuccessful payments
func (h *ConfirmWebhookPaymentHandler) Handle(ctx context.Context, cmd *ConfirmWebhookPayment) (*aggregate.Payment, error) {
	if cmd == nil || len(cmd.Payload) == 0 {
		return nil, errors.NewValidationError("webhook payload is required")
	}

	hook, err := h.gateway.VerifyWebhook(ctx, cmd.Payload)
	if err != nil {
		metrics.PaymentVerifications.WithLabelValues("invalid_signature").Inc()
		logger.FromContext(ctx).WithError(err).Warn("webhook verification failed")
		return nil, errors.NewInvalidSignatureError("invalid webhook signature")
	}
	if !hook.Success {
		metrics.PaymentVerifications.WithLabelValues("unsuccessful").Inc()
		logger.FromContext(ctx).WithField("order_id", hook.OrderID).Info("webhook reported unsuccessful payment")
		return nil, nil
	}

	return h.completer.complete(ctx, hook.OrderID, hook.PaymentID)
}

// paymentCompleter marks a payment completed and credits the vendor ledger
// in one unit of work
type paymentCompleter struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

func (c *paymentCompleter) complete(ctx context.Context, orderID, externalPaymentID string) (*aggregate.Payment, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{"order_id": orderID, "external_payment_id": externalPaymentID})

	uow := c.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	paymentRepo := uow.PaymentRepository()
	payment, err := paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		uow.Rollback(ctx)
		metrics.PaymentVerifications.WithLabelValues("not_found").Inc()
		return nil, domainError(err, "payment")
	}

	if payment.IsCompleted() {
		uow.Rollback(ctx)
		metrics.PaymentVerifications.WithLabelValues("already_completed").Inc()
		log.Info("payment already completed")
		return payment, nil
	}

	if err := payment.MarkCompleted(externalPaymentID); err != nil {
		uow.Rollback(ctx)
		metrics.PaymentVerifications.WithLabelValues("rejected").Inc()
		return nil, errors.NewValidationError(err.Error())
	}

	earningsRepo := uow.EarningsRepository()
	ledger, err := loadOrOpenLedger(ctx, earningsRepo, payment.VendorID())
	if err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "vendor earnings")
	}
	description := fmt.Sprintf("Payment for %s", payment.PackageName())
	if err := ledger.AddEarning(payment.EventID(), payment.ID(), payment.Amount(), description); err != nil {
		uow.Rollback(ctx)
		return nil, errors.NewValidationError(err.Error())
	}

	var events []event.DomainEvent
	events = append(events, payment.GetUncommittedEvents()...)
	events = append(events, ledger.GetUncommittedEvents()...)

	if err := paymentRepo.Save(ctx, payment); err != nil {
		uow.Rollback(ctx)
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.NewConflictError("payment already completed for this vendor")
		}
		return nil, domainError(err, "payment")
	}
	if err := earningsRepo.Save(ctx, ledger); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "vendor earnings")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	metrics.PaymentVerifications.WithLabelValues("completed").Inc()
	log.WithField("payment_id", payment.ID()).Info("payment completed")

	if err := c.eventBus.PublishBatch(ctx, events); err != nil {
		log.WithError(err).Warn("failed to publish payment events")
	}
	return payment, nil
}
