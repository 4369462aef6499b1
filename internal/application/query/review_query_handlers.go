package query

import (
	"context"
	"math"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"

	"github.com/samber/lo"
)

// averageRating rounds to one decimal; zero when there are no reviews
func averageRating(reviews []*aggregate.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := lo.SumBy(reviews, func(r *aggregate.Review) int { return r.Rating() })
	return math.Round(float64(total)/float64(len(reviews))*10) / 10
}

// VendorReviewsResult is a vendor's reviews with their average
type VendorReviewsResult struct {
	Reviews       []ReviewView `json:"reviews"`
	AverageRating float64      `json:"averageRating"`
	TotalReviews  int          `json:"totalReviews"`
}

// VendorReviewsHandler lists reviews left for a vendor
type VendorReviewsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewVendorReviewsHandler creates a new vendor reviews handler
func NewVendorReviewsHandler(uowFactory repository.UnitOfWorkFactory) *VendorReviewsHandler {
	return &VendorReviewsHandler{uowFactory: uowFactory}
}

// Handle processes the vendor reviews query
func (h *VendorReviewsHandler) Handle(ctx context.Context, vendorID string) (*VendorReviewsResult, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	reviews, err := uow.ReviewRepository().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, readError(err, "reviews")
	}

	userRepo := uow.UserRepository()
	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		view := NewReviewView(r)
		if host, err := userRepo.GetByID(ctx, r.HostID()); err == nil {
			view.HostName = host.Name()
		}
		views = append(views, view)
	}

	return &VendorReviewsResult{
		Reviews:       views,
		AverageRating: averageRating(reviews),
		TotalReviews:  len(reviews),
	}, nil
}

// ReviewCandidate is a vendor the host worked with and has not reviewed
type ReviewCandidate struct {
	VendorID    string `json:"vendorId"`
	Name        string `json:"name"`
	ServiceType string `json:"serviceType,omitempty"`
	District    string `json:"district,omitempty"`
	EventID     string `json:"eventId"`
	EventName   string `json:"eventName,omitempty"`
	EventType   string `json:"eventType"`
}

// VendorsToReviewHandler lists accepted vendors on a host's confirmed or
// completed events that still lack a review
type VendorsToReviewHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewVendorsToReviewHandler creates a new vendors to review handler
func NewVendorsToReviewHandler(uowFactory repository.UnitOfWorkFactory) *VendorsToReviewHandler {
	return &VendorsToReviewHandler{uowFactory: uowFactory}
}

// Handle returns each vendor at most once
func (h *VendorsToReviewHandler) Handle(ctx context.Context, hostID string) ([]ReviewCandidate, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	events, err := uow.EventRepository().ListByHost(ctx, hostID)
	if err != nil {
		return nil, readError(err, "events")
	}

	reviewRepo := uow.ReviewRepository()
	userRepo := uow.UserRepository()
	seen := map[string]bool{}
	candidates := []ReviewCandidate{}

	for _, e := range events {
		if e.Status() != aggregate.EventStatusConfirmed && e.Status() != aggregate.EventStatusCompleted {
			continue
		}
		for _, vendorID := range e.AcceptedVendorIDs() {
			if seen[vendorID] {
				continue
			}
			reviewed, err := reviewRepo.Exists(ctx, vendorID, hostID, e.ID())
			if err != nil {
				return nil, readError(err, "reviews")
			}
			if reviewed {
				continue
			}
			vendor, err := userRepo.GetByID(ctx, vendorID)
			if err != nil {
				continue
			}
			seen[vendorID] = true
			candidates = append(candidates, ReviewCandidate{
				VendorID:    vendorID,
				Name:        DisplayName(vendor),
				ServiceType: vendor.VendorProfile().ServiceType,
				District:    vendor.District(),
				EventID:     e.ID(),
				EventName:   e.Details().Name,
				EventType:   e.Details().Type,
			})
		}
	}
	return candidates, nil
}
