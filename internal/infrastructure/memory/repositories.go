package memory

import (
	"context"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"

	"github.com/samber/lo"
)

func newestFirst[S any](created func(S) time.Time) func(a, b S) bool {
	return func(a, b S) bool { return created(a).After(created(b)) }
}

// --- users ---

type userRepository struct{ store *Store }

func (r *userRepository) Save(ctx context.Context, user *aggregate.User) error {
	state := user.State()
	err := r.store.write(func(t tables) error {
		for id, other := range t.users {
			if id != state.ID && other.Email == state.Email {
				return repository.ErrDuplicate
			}
		}
		t.users[state.ID] = state
		return nil
	})
	if err == nil {
		user.MarkEventsAsCommitted()
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*aggregate.User, error) {
	var (
		state aggregate.UserState
		ok    bool
	)
	r.store.read(func(t tables) { state, ok = t.users[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.ReconstructUser(state), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*aggregate.User, error) {
	email = aggregate.NormalizeEmail(email)
	var (
		state aggregate.UserState
		ok    bool
	)
	r.store.read(func(t tables) {
		state, ok = lo.Find(lo.Values(t.users), func(u aggregate.UserState) bool { return u.Email == email })
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.ReconstructUser(state), nil
}

func (r *userRepository) List(ctx context.Context, role aggregate.UserRole) ([]*aggregate.User, error) {
	var rows []aggregate.UserState
	r.store.read(func(t tables) {
		rows = selectRows(t.users,
			func(u aggregate.UserState) bool { return role == "" || u.Role == role },
			newestFirst(func(u aggregate.UserState) time.Time { return u.CreatedAt }))
	})
	return lo.Map(rows, func(s aggregate.UserState, _ int) *aggregate.User { return aggregate.ReconstructUser(s) }), nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(func(t tables) error {
		if _, ok := t.users[id]; !ok {
			return repository.ErrNotFound
		}
		delete(t.users, id)
		return nil
	})
}

// --- events ---

type eventRepository struct{ store *Store }

func (r *eventRepository) Save(ctx context.Context, e *aggregate.Event) error {
	state := e.State()
	r.store.write(func(t tables) error {
		t.events[state.ID] = state
		return nil
	})
	e.MarkEventsAsCommitted()
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*aggregate.Event, error) {
	var (
		state aggregate.EventState
		ok    bool
	)
	r.store.read(func(t tables) { state, ok = t.events[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.ReconstructEvent(state), nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(func(t tables) error {
		if _, ok := t.events[id]; !ok {
			return repository.ErrNotFound
		}
		delete(t.events, id)
		return nil
	})
}

func (r *eventRepository) list(keep func(aggregate.EventState) bool) []*aggregate.Event {
	var rows []aggregate.EventState
	r.store.read(func(t tables) {
		rows = selectRows(t.events, keep, newestFirst(func(e aggregate.EventState) time.Time { return e.CreatedAt }))
	})
	return lo.Map(rows, func(s aggregate.EventState, _ int) *aggregate.Event { return aggregate.ReconstructEvent(s) })
}

func (r *eventRepository) ListByHost(ctx context.Context, hostID string) ([]*aggregate.Event, error) {
	return r.list(func(e aggregate.EventState) bool { return e.HostID == hostID }), nil
}

func (r *eventRepository) ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Event, error) {
	return r.list(func(e aggregate.EventState) bool {
		return lo.ContainsBy(e.Selections, func(s aggregate.VendorSelection) bool { return s.VendorID == vendorID })
	}), nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*aggregate.Event, error) {
	return r.list(func(aggregate.EventState) bool { return true }), nil
}

func (r *eventRepository) ListDroppable(ctx context.Context, hostID string, before time.Time) ([]*aggregate.Event, error) {
	return r.list(func(e aggregate.EventState) bool {
		if hostID != "" && e.HostID != hostID {
			return false
		}
		return e.Details.Date.Before(before) && lo.Contains(droppableStatuses, e.Status)
	}), nil
}

var droppableStatuses = []aggregate.EventStatus{
	aggregate.EventStatusDraft,
	aggregate.EventStatusPending,
	aggregate.EventStatusSubmitted,
	aggregate.EventStatusDropped,
}

// --- payments ---

type paymentRepository struct{ store *Store }

func (r *paymentRepository) Save(ctx context.Context, p *aggregate.Payment) error {
	state := p.State()
	err := r.store.write(func(t tables) error {
		if state.Status == aggregate.PaymentStatusCompleted {
			for id, other := range t.payments {
				if id != state.ID && other.Status == aggregate.PaymentStatusCompleted &&
					other.EventID == state.EventID && other.VendorID == state.VendorID {
					return repository.ErrDuplicate
				}
			}
		}
		t.payments[state.ID] = state
		return nil
	})
	if err == nil {
		p.MarkEventsAsCommitted()
	}
	return err
}

func (r *paymentRepository) find(keep func(aggregate.PaymentState) bool) (*aggregate.Payment, error) {
	var (
		state aggregate.PaymentState
		ok    bool
	)
	r.store.read(func(t tables) { state, ok = lo.Find(lo.Values(t.payments), keep) })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.ReconstructPayment(state), nil
}

func (r *paymentRepository) list(keep func(aggregate.PaymentState) bool) []*aggregate.Payment {
	var rows []aggregate.PaymentState
	r.store.read(func(t tables) {
		rows = selectRows(t.payments, keep, newestFirst(func(p aggregate.PaymentState) time.Time { return p.CreatedAt }))
	})
	return lo.Map(rows, func(s aggregate.PaymentState, _ int) *aggregate.Payment { return aggregate.ReconstructPayment(s) })
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*aggregate.Payment, error) {
	return r.find(func(p aggregate.PaymentState) bool { return p.ID == id })
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*aggregate.Payment, error) {
	return r.find(func(p aggregate.PaymentState) bool { return p.OrderID == orderID })
}

func (r *paymentRepository) FindCompleted(ctx context.Context, eventID, vendorID string) (*aggregate.Payment, error) {
	return r.find(func(p aggregate.PaymentState) bool {
		return p.EventID == eventID && p.VendorID == vendorID && p.Status == aggregate.PaymentStatusCompleted
	})
}

func (r *paymentRepository) ListByEvent(ctx context.Context, eventID string) ([]*aggregate.Payment, error) {
	return r.list(func(p aggregate.PaymentState) bool { return p.EventID == eventID }), nil
}

func (r *paymentRepository) ListByVendor(ctx context.Context, vendorID string, status aggregate.PaymentStatus) ([]*aggregate.Payment, error) {
	return r.list(func(p aggregate.PaymentState) bool {
		return p.VendorID == vendorID && (status == "" || p.Status == status)
	}), nil
}

func (r *paymentRepository) ListAll(ctx context.Context) ([]*aggregate.Payment, error) {
	return r.list(func(aggregate.PaymentState) bool { return true }), nil
}

// --- earnings ---

type earningsRepository struct{ store *Store }

func (r *earningsRepository) Save(ctx context.Context, v *aggregate.VendorEarnings) error {
	state := v.State()
	err := r.store.write(func(t tables) error {
		if existing, ok := t.earnings[state.VendorID]; ok && existing.ID != state.ID {
			return repository.ErrDuplicate
		}
		t.earnings[state.VendorID] = state
		return nil
	})
	if err == nil {
		v.MarkEventsAsCommitted()
	}
	return err
}

func (r *earningsRepository) GetByVendorID(ctx context.Context, vendorID string) (*aggregate.VendorEarnings, error) {
	var (
		state aggregate.VendorEarningsState
		ok    bool
	)
	r.store.read(func(t tables) { state, ok = t.earnings[vendorID] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.ReconstructVendorEarnings(state), nil
}

// --- services ---

type serviceRepository struct{ store *Store }

func (r *serviceRepository) Save(ctx context.Context, s *aggregate.Service) error {
	state := s.State()
	return r.store.write(func(t tables) error {
		t.services[state.ID] = state
		return nil
	})
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*aggregate.Service, error) {
	var (
		state aggregate.ServiceState
		ok    bool
	)
	r.store.read(func(t tables) { state, ok = t.services[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.ReconstructService(state), nil
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(func(t tables) error {
		if _, ok := t.services[id]; !ok {
			return repository.ErrNotFound
		}
		delete(t.services, id)
		return nil
	})
}

func (r *serviceRepository) list(keep func(aggregate.ServiceState) bool) []*aggregate.Service {
	var rows []aggregate.ServiceState
	r.store.read(func(t tables) {
		rows = selectRows(t.services, keep, newestFirst(func(s aggregate.ServiceState) time.Time { return s.CreatedAt }))
	})
	return lo.Map(rows, func(s aggregate.ServiceState, _ int) *aggregate.Service { return aggregate.ReconstructService(s) })
}

func (r *serviceRepository) ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Service, error) {
	return r.list(func(s aggregate.ServiceState) bool { return s.VendorID == vendorID }), nil
}

func (r *serviceRepository) ListActive(ctx context.Context) ([]*aggregate.Service, error) {
	return r.list(func(s aggregate.ServiceState) bool { return s.IsActive }), nil
}

// --- reviews ---

type reviewRepository struct{ store *Store }

func (r *reviewRepository) Save(ctx context.Context, review *aggregate.Review) error {
	state := review.State()
	return r.store.write(func(t tables) error {
		for id, other := range t.reviews {
			if id != state.ID && other.VendorID == state.VendorID &&
				other.HostID == state.HostID && other.EventID == state.EventID {
				return repository.ErrDuplicate
			}
		}
		t.reviews[state.ID] = state
		return nil
	})
}

func (r *reviewRepository) Exists(ctx context.Context, vendorID, hostID, eventID string) (bool, error) {
	var found bool
	r.store.read(func(t tables) {
		found = lo.SomeBy(lo.Values(t.reviews), func(rv aggregate.ReviewState) bool {
			return rv.VendorID == vendorID && rv.HostID == hostID && rv.EventID == eventID
		})
	})
	return found, nil
}

func (r *reviewRepository) list(keep func(aggregate.ReviewState) bool) []*aggregate.Review {
	var rows []aggregate.ReviewState
	r.store.read(func(t tables) {
		rows = selectRows(t.reviews, keep, newestFirst(func(rv aggregate.ReviewState) time.Time { return rv.CreatedAt }))
	})
	return lo.Map(rows, func(s aggregate.ReviewState, _ int) *aggregate.Review { return aggregate.ReconstructReview(s) })
}

func (r *reviewRepository) ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Review, error) {
	return r.list(func(rv aggregate.ReviewState) bool { return rv.VendorID == vendorID }), nil
}

func (r *reviewRepository) ListByHost(ctx context.Context, hostID string) ([]*aggregate.Review, error) {
	return r.list(func(rv aggregate.ReviewState) bool { return rv.HostID == hostID }), nil
}

// --- messages ---

type messageRepository struct{ store *Store }

func (r *messageRepository) Save(ctx context.Context, m *aggregate.Message) error {
	state := m.State()
	return r.store.write(func(t tables) error {
		t.messages[state.ID] = state
		return nil
	})
}

func (r *messageRepository) list(keep func(aggregate.MessageState) bool) []*aggregate.Message {
	var rows []aggregate.MessageState
	r.store.read(func(t tables) {
		rows = selectRows(t.messages, keep, func(a, b aggregate.MessageState) bool { return a.CreatedAt.Before(b.CreatedAt) })
	})
	return lo.Map(rows, func(s aggregate.MessageState, _ int) *aggregate.Message { return aggregate.ReconstructMessage(s) })
}

func (r *messageRepository) ListConversation(ctx context.Context, conversationID string) ([]*aggregate.Message, error) {
	return r.list(func(m aggregate.MessageState) bool { return m.ConversationID == conversationID }), nil
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]*aggregate.Message, error) {
	return r.list(func(m aggregate.MessageState) bool { return m.SenderID == userID || m.ReceiverID == userID }), nil
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID, receiverID string) (int, error) {
	count := 0
	err := r.store.write(func(t tables) error {
		for id, m := range t.messages {
			if m.ConversationID == conversationID && m.ReceiverID == receiverID && !m.Read {
				m.Read = true
				t.messages[id] = m
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID string) (int, error) {
	var count int
	r.store.read(func(t tables) {
		count = lo.CountBy(lo.Values(t.messages), func(m aggregate.MessageState) bool {
			return m.ReceiverID == receiverID && !m.Read
		})
	})
	return count, nil
}
