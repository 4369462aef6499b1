package http

import (
	"net/http"
	"strconv"
	"time"

	"party-paradise/internal/metrics"
	"party-paradise/pkg/jwt"
	"party-paradise/pkg/logger"
	"party-paradise/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers groups every HTTP controller mounted by the router
type Controllers struct {
	Auth    *HTTPAuthController
	Event   *HTTPEventController
	Payment *HTTPPaymentController
	Service *HTTPServiceController
	Social  *HTTPSocialController
	Admin   *AdminController
}

// NewRouter builds the API router. healthCheck may be nil.
func NewRouter(c Controllers, jwtManager *jwt.JWTManager, requestTimeout time.Duration, healthCheck func() error) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.TimeoutMiddleware(requestTimeout))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if healthCheck != nil {
			if err := healthCheck(); err != nil {
				logger.FromContext(r.Context()).WithError(err).Warn("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unhealthy","service":"party-paradise"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"party-paradise"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	auth := middleware.JWTAuthMiddleware(jwtManager)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", c.Auth.Register)
			r.Post("/login", c.Auth.Login)
			r.With(auth).Get("/me", c.Auth.Me)
		})

		// gateway callback, verified by the gateway checksum
		r.Post("/payments/webhook", c.Payment.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Route("/events", func(r chi.Router) {
				r.With(middleware.RequireHost).Post("/", c.Event.CreateEvent)
				r.With(middleware.RequireHost).Get("/my-events", c.Event.MyEvents)
				r.With(middleware.RequireHost).Get("/dropped-events", c.Event.DroppedEvents)
				r.With(middleware.RequireVendor).Get("/bookings", c.Event.Bookings)
				r.With(middleware.RequireVendor).Put("/bookings/{eventId}/status", c.Event.UpdateBookingStatus)
				r.Get("/{id}", c.Event.GetEvent)
				r.With(middleware.RequireHost).Put("/{id}", c.Event.UpdateEvent)
				r.With(middleware.RequireHost).Put("/{id}/vendors", c.Event.SetVendors)
				r.With(middleware.RequireHost).Put("/{id}/complete", c.Event.CompleteEvent)
				r.With(middleware.RequireHost).Delete("/{id}", c.Event.DeleteEvent)
			})

			r.Route("/payments", func(r chi.Router) {
				r.With(middleware.RequireHost).Post("/create-order", c.Payment.CreateOrder)
				r.With(middleware.RequireHost).Post("/verify-payment", c.Payment.VerifyPayment)
				r.Get("/event/{eventId}", c.Payment.EventPayments)
				r.With(middleware.RequireVendor).Get("/vendor-payments", c.Payment.VendorPayments)
			})

			r.Route("/earnings", func(r chi.Router) {
				r.Use(middleware.RequireVendor)
				r.Get("/", c.Payment.GetEarnings)
				r.Post("/withdraw", c.Payment.Withdraw)
				r.Put("/bank-details", c.Payment.UpdateBankDetails)
			})

			r.Route("/services", func(r chi.Router) {
				r.With(middleware.RequireVendor).Get("/my-services", c.Service.MyServices)
				r.Get("/all", c.Service.ListServices)
				r.Get("/{id}", c.Service.GetService)
				r.With(middleware.RequireVendor).Post("/", c.Service.CreateService)
				r.With(middleware.RequireVendor).Put("/{id}", c.Service.UpdateService)
				r.With(middleware.RequireVendor).Delete("/{id}", c.Service.DeleteService)
			})

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", c.Service.ListVendors)
				r.Get("/{vendorId}", c.Service.GetVendor)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.With(middleware.RequireHost).Get("/vendors-to-review", c.Social.VendorsToReview)
				r.With(middleware.RequireHost).Post("/submit", c.Social.SubmitReview)
				r.With(middleware.RequireVendor).Get("/vendor-reviews", c.Social.MyReviews)
				r.Get("/vendor/{vendorId}", c.Social.VendorReviews)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/conversations", c.Social.Conversations)
				r.Get("/conversation/{otherUserId}", c.Social.Conversation)
				r.Post("/send", c.Social.SendMessage)
				r.Get("/unread-count", c.Social.UnreadCount)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/users", c.Admin.ListUsers)
				r.Delete("/users/{id}", c.Admin.DeleteUser)
				r.Get("/events", c.Admin.ListEvents)
				r.Get("/event-payments/{eventId}", c.Admin.EventPayments)
				r.Get("/reports", c.Admin.Reports)
			})
		})
	})

	return r
}

// metricsMiddleware records request counts and latency by route pattern
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
