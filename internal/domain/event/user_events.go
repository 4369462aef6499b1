package event

import "time"

// DomainEvent represents a domain event
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
	Version() int
}

// UserRegistered event
type UserRegistered struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *UserRegistered) EventType() string     { return "UserRegistered" }
func (e *UserRegistered) AggregateID() string   { return e.UserID }
func (e *UserRegistered) OccurredAt() time.Time { return e.Timestamp }
func (e *UserRegistered) Version() int          { return 1 }

// UserDeleted event
type UserDeleted struct {
	UserID    string    `json:"user_id"`
	DeletedBy string    `json:"deleted_by"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *UserDeleted) EventType() string     { return "UserDeleted" }
func (e *UserDeleted) AggregateID() string   { return e.UserID }
func (e *UserDeleted) OccurredAt() time.Time { return e.Timestamp }
func (e *UserDeleted) Version() int          { return 1 }
