package aggregate

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"party-paradise/internal/domain/event"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleHost   UserRole = "host"
	RoleVendor UserRole = "vendor"
	RoleAdmin  UserRole = "admin"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	return r == RoleHost || r == RoleVendor || r == RoleAdmin
}

// VendorProfile holds vendor-only business fields
type VendorProfile struct {
	BusinessName string
	ServiceType  string
	Description  string
}

// UserState is the persisted shape of a User
type UserState struct {
	ID             string
	Name           string
	Email          string
	HashedPassword string
	Role           UserRole
	District       string
	Phone          string
	Vendor         VendorProfile
	IsActive       bool
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// User is an account: host, vendor or admin
type User struct {
	id                string
	name              string
	email             string
	hashedPassword    string
	role              UserRole
	district          string
	phone             string
	vendor            VendorProfile
	isActive          bool
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	uncommittedEvents []event.DomainEvent
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(name, email, password string, role UserRole, district, phone string) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &User{
		id:             uuid.New().String(),
		name:           name,
		email:          email,
		hashedPassword: string(hashedPassword),
		role:           role,
		district:       strings.TrimSpace(district),
		phone:          strings.TrimSpace(phone),
		isActive:       true,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}

	u.raiseEvent(&event.UserRegistered{
		UserID:    u.id,
		Email:     u.email,
		Role:      string(role),
		Timestamp: now,
	})

	return u, nil
}

// ReconstructUser rebuilds a user from storage
func ReconstructUser(s UserState) *User {
	return &User{
		id:             s.ID,
		name:           s.Name,
		email:          s.Email,
		hashedPassword: s.HashedPassword,
		role:           s.Role,
		district:       s.District,
		phone:          s.Phone,
		vendor:         s.Vendor,
		isActive:       s.IsActive,
		version:        s.Version,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

// State returns the persisted fields
func (u *User) State() UserState {
	return UserState{
		ID:             u.id,
		Name:           u.name,
		Email:          u.email,
		HashedPassword: u.hashedPassword,
		Role:           u.role,
		District:       u.district,
		Phone:          u.phone,
		Vendor:         u.vendor,
		IsActive:       u.isActive,
		Version:        u.version,
		CreatedAt:      u.createdAt,
		UpdatedAt:      u.updatedAt,
	}
}

// SetVendorProfile sets business details; only vendors have them
func (u *User) SetVendorProfile(profile VendorProfile) error {
	if u.role != RoleVendor {
		return fmt.Errorf("only vendors have a business profile")
	}
	profile.BusinessName = strings.TrimSpace(profile.BusinessName)
	profile.ServiceType = strings.TrimSpace(profile.ServiceType)
	if profile.BusinessName == "" || profile.ServiceType == "" {
		return fmt.Errorf("business name and service type are required for vendors")
	}
	u.vendor = profile
	u.version++
	u.updatedAt = time.Now()
	return nil
}

// VerifyPassword checks the password against the stored hash
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.hashedPassword), []byte(password))
}

// Delete records removal of the account
func (u *User) Delete(deletedBy string) error {
	if u.role == RoleAdmin {
		return fmt.Errorf("cannot delete admin users")
	}
	u.isActive = false
	u.raiseEvent(&event.UserDeleted{
		UserID:    u.id,
		DeletedBy: deletedBy,
		Timestamp: time.Now(),
	})
	return nil
}

// NormalizeEmail lower-cases and trims an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) IsAdmin() bool  { return u.role == RoleAdmin }
func (u *User) IsVendor() bool { return u.role == RoleVendor }

func (u *User) raiseEvent(ev event.DomainEvent) {
	u.uncommittedEvents = append(u.uncommittedEvents, ev)
}

func (u *User) GetUncommittedEvents() []event.DomainEvent {
	return u.uncommittedEvents
}

func (u *User) MarkEventsAsCommitted() {
	u.uncommittedEvents = nil
}

// Getters
func (u *User) ID() string                   { return u.id }
func (u *User) Name() string                 { return u.name }
func (u *User) Email() string                { return u.email }
func (u *User) Role() UserRole               { return u.role }
func (u *User) District() string             { return u.district }
func (u *User) Phone() string                { return u.phone }
func (u *User) VendorProfile() VendorProfile { return u.vendor }
func (u *User) IsActive() bool               { return u.isActive }
func (u *User) Version() int                 { return u.version }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }
