package app

import (
	"net/http"
	"time"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/query"
	"party-paradise/internal/application/services"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/internal/infrastructure/gateway"
	httpHandler "party-paradise/internal/infrastructure/http"
	"party-paradise/internal/infrastructure/projection"
	"party-paradise/pkg/jwt"
)

// Dependencies are the infrastructure pieces the application is built on
type Dependencies struct {
	UnitOfWorkFactory repository.UnitOfWorkFactory
	EventBus          bus.EventBus
	Gateway           gateway.PaymentGateway
	JWTManager        *jwt.JWTManager

	SignatureSecret string
	Currency        string
	RequestTimeout  time.Duration
	SweepInterval   time.Duration

	// HealthCheck reports store liveness on /health; nil means always healthy
	HealthCheck func() error
}

// App is the wired application: handlers, services and the HTTP router
type App struct {
	Router   http.Handler
	Sweeper  *services.DroppedEventSweeper
	Activity *projection.ActivityProjection

	Users    *services.UserService
	Events   *services.EventService
	Payments *services.PaymentService
	Earnings *services.EarningsService
	Services *services.ServiceService
	Reviews  *services.ReviewService
	Messages *services.MessageService
	Admin    *services.AdminService
}

// New wires every command and query handler into services and controllers
func New(deps Dependencies) (*App, error) {
	uowFactory := deps.UnitOfWorkFactory
	eventBus := deps.EventBus

	activity := projection.NewActivityProjection(0)
	if err := activity.Register(eventBus); err != nil {
		return nil, err
	}

	// Command handlers
	registerHandler := command.NewRegisterHandler(uowFactory, eventBus, deps.JWTManager)
	loginHandler := command.NewLoginHandler(uowFactory, deps.JWTManager)
	deleteUserHandler := command.NewDeleteUserHandler(uowFactory, eventBus)

	createEventHandler := command.NewCreateEventHandler(uowFactory, eventBus)
	setEventVendorsHandler := command.NewSetEventVendorsHandler(uowFactory, eventBus)
	updateEventHandler := command.NewUpdateEventHandler(uowFactory, eventBus)
	updateSelectionStatusHandler := command.NewUpdateSelectionStatusHandler(uowFactory, eventBus)
	cancelEventHandler := command.NewCancelEventHandler(uowFactory, eventBus, deps.Gateway)
	completeEventHandler := command.NewCompleteEventHandler(uowFactory, eventBus)
	sweepDroppedEventsHandler := command.NewSweepDroppedEventsHandler(uowFactory, eventBus)

	createOrderHandler := command.NewCreatePaymentOrderHandler(uowFactory, eventBus, deps.Gateway, deps.Currency)
	verifyPaymentHandler := command.NewVerifyPaymentHandler(uowFactory, eventBus, deps.SignatureSecret)
	confirmWebhookHandler := command.NewConfirmWebhookPaymentHandler(uowFactory, eventBus, deps.Gateway)
	withdrawalHandler := command.NewRequestWithdrawalHandler(uowFactory, eventBus)
	updateBankDetailsHandler := command.NewUpdateBankDetailsHandler(uowFactory, eventBus)

	createServiceHandler := command.NewCreateServiceHandler(uowFactory)
	updateServiceHandler := command.NewUpdateServiceHandler(uowFactory)
	deleteServiceHandler := command.NewDeleteServiceHandler(uowFactory)

	submitReviewHandler := command.NewSubmitReviewHandler(uowFactory)
	sendMessageHandler := command.NewSendMessageHandler(uowFactory)

	// Query handlers
	getUserHandler := query.NewGetUserHandler(uowFactory)
	listUsersHandler := query.NewListUsersHandler(uowFactory)
	listVendorsHandler := query.NewListVendorsHandler(uowFactory)
	getVendorHandler := query.NewGetVendorHandler(uowFactory)

	getEventHandler := query.NewGetEventHandler(uowFactory)
	listHostEventsHandler := query.NewListHostEventsHandler(uowFactory)
	listVendorBookingsHandler := query.NewListVendorBookingsHandler(uowFactory)
	listAllEventsHandler := query.NewListAllEventsHandler(uowFactory)

	listEventPaymentsHandler := query.NewListEventPaymentsHandler(uowFactory)
	vendorPaymentsHandler := query.NewVendorPaymentsHandler(uowFactory)
	getEarningsHandler := query.NewGetEarningsHandler(uowFactory)

	getServiceHandler := query.NewGetServiceHandler(uowFactory)
	listVendorServicesHandler := query.NewListVendorServicesHandler(uowFactory)
	listActiveServicesHandler := query.NewListActiveServicesHandler(uowFactory)

	vendorReviewsHandler := query.NewVendorReviewsHandler(uowFactory)
	vendorsToReviewHandler := query.NewVendorsToReviewHandler(uowFactory)

	listConversationsHandler := query.NewListConversationsHandler(uowFactory)
	getConversationHandler := query.NewGetConversationHandler(uowFactory)
	unreadCountHandler := query.NewUnreadCountHandler(uowFactory)

	adminReportHandler := query.NewAdminReportHandler(uowFactory, activity)

	// Application services
	a := &App{Activity: activity}
	a.Users = services.NewUserService(
		registerHandler,
		loginHandler,
		deleteUserHandler,
		getUserHandler,
		listUsersHandler,
		listVendorsHandler,
		getVendorHandler,
	)
	a.Events = services.NewEventService(
		createEventHandler,
		setEventVendorsHandler,
		updateEventHandler,
		updateSelectionStatusHandler,
		cancelEventHandler,
		completeEventHandler,
		sweepDroppedEventsHandler,
		getEventHandler,
		listHostEventsHandler,
		listVendorBookingsHandler,
	)
	a.Payments = services.NewPaymentService(
		createOrderHandler,
		verifyPaymentHandler,
		confirmWebhookHandler,
		listEventPaymentsHandler,
		vendorPaymentsHandler,
	)
	a.Earnings = services.NewEarningsService(getEarningsHandler, withdrawalHandler, updateBankDetailsHandler)
	a.Services = services.NewServiceService(
		createServiceHandler,
		updateServiceHandler,
		deleteServiceHandler,
		getServiceHandler,
		listVendorServicesHandler,
		listActiveServicesHandler,
	)
	a.Reviews = services.NewReviewService(submitReviewHandler, vendorReviewsHandler, vendorsToReviewHandler)
	a.Messages = services.NewMessageService(
		sendMessageHandler,
		listConversationsHandler,
		getConversationHandler,
		unreadCountHandler,
	)
	a.Admin = services.NewAdminService(listAllEventsHandler, listEventPaymentsHandler, adminReportHandler)

	interval := deps.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}
	a.Sweeper = services.NewDroppedEventSweeper(sweepDroppedEventsHandler, interval)

	// HTTP layer
	a.Router = httpHandler.NewRouter(httpHandler.Controllers{
		Auth:    httpHandler.NewHTTPAuthController(a.Users),
		Event:   httpHandler.NewHTTPEventController(a.Events),
		Payment: httpHandler.NewHTTPPaymentController(a.Payments, a.Earnings),
		Service: httpHandler.NewHTTPServiceController(a.Services, a.Users),
		Social:  httpHandler.NewHTTPSocialController(a.Reviews, a.Messages),
		Admin:   httpHandler.NewAdminController(a.Admin, a.Users),
	}, deps.JWTManager, deps.RequestTimeout, deps.HealthCheck)

	return a, nil
}
