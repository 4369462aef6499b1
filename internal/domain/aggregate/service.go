package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceState is the persisted shape of a Service
type ServiceState struct {
	ID           string
	VendorID     string
	PackageName  string
	Description  string
	Price        int64
	Duration     string
	Features     []string
	AvailableFor []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ServicePatch is a partial update of a listing
type ServicePatch struct {
	PackageName  *string
	Description  *string
	Price        *int64
	Duration     *string
	Features     []string
	AvailableFor []string
	IsActive     *bool
}

// Service is a vendor's package listing
type Service struct {
	id           string
	vendorID     string
	packageName  string
	description  string
	price        int64
	duration     string
	features     []string
	availableFor []string
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewService creates an active listing
func NewService(vendorID, packageName, description string, price int64, duration string, features, availableFor []string) (*Service, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("vendorID cannot be empty")
	}
	packageName = strings.TrimSpace(packageName)
	if packageName == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	now := time.Now()
	return &Service{
		id:           uuid.New().String(),
		vendorID:     vendorID,
		packageName:  packageName,
		description:  description,
		price:        price,
		duration:     duration,
		features:     append([]string(nil), features...),
		availableFor: append([]string(nil), availableFor...),
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructService(s ServiceState) *Service {
	return &Service{
		id:           s.ID,
		vendorID:     s.VendorID,
		packageName:  s.PackageName,
		description:  s.Description,
		price:        s.Price,
		duration:     s.Duration,
		features:     append([]string(nil), s.Features...),
		availableFor: append([]string(nil), s.AvailableFor...),
		isActive:     s.IsActive,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

func (s *Service) State() ServiceState {
	return ServiceState{
		ID:           s.id,
		VendorID:     s.vendorID,
		PackageName:  s.packageName,
		Description:  s.description,
		Price:        s.price,
		Duration:     s.duration,
		Features:     s.Features(),
		AvailableFor: s.AvailableFor(),
		IsActive:     s.isActive,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
}

// Update applies a partial update
func (s *Service) Update(patch ServicePatch) error {
	if patch.PackageName != nil {
		name := strings.TrimSpace(*patch.PackageName)
		if name == "" {
			return fmt.Errorf("package name is required")
		}
		s.packageName = name
	}
	if patch.Description != nil {
		s.description = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return fmt.Errorf("price cannot be negative")
		}
		s.price = *patch.Price
	}
	if patch.Duration != nil {
		s.duration = *patch.Duration
	}
	if patch.Features != nil {
		s.features = append([]string(nil), patch.Features...)
	}
	if patch.AvailableFor != nil {
		s.availableFor = append([]string(nil), patch.AvailableFor...)
	}
	if patch.IsActive != nil {
		s.isActive = *patch.IsActive
	}
	s.updatedAt = time.Now()
	return nil
}

func (s *Service) OwnedBy(vendorID string) bool { return s.vendorID == vendorID }

func (s *Service) ID() string             { return s.id }
func (s *Service) VendorID() string       { return s.vendorID }
func (s *Service) PackageName() string    { return s.packageName }
func (s *Service) Description() string    { return s.description }
func (s *Service) Price() int64           { return s.price }
func (s *Service) Duration() string       { return s.duration }
func (s *Service) IsActive() bool         { return s.isActive }
func (s *Service) CreatedAt() time.Time   { return s.createdAt }
func (s *Service) UpdatedAt() time.Time   { return s.updatedAt }
func (s *Service) Features() []string     { return append([]string(nil), s.features...) }
func (s *Service) AvailableFor() []string { return append([]string(nil), s.availableFor...) }
