// Package memory is an in-process store with the same repository contracts
// as the MongoDB implementation. It backs tests and MONGO_URI=memory runs.
package memory

import (
	"sort"
	"sync"

	"party-paradise/internal/domain/aggregate"

	"github.com/samber/lo"
)

type tables struct {
	users    map[string]aggregate.UserState
	events   map[string]aggregate.EventState
	payments map[string]aggregate.PaymentState
	earnings map[string]aggregate.VendorEarningsState // keyed by vendor id
	services map[string]aggregate.ServiceState
	reviews  map[string]aggregate.ReviewState
	messages map[string]aggregate.MessageState
}

func newTables() tables {
	return tables{
		users:    map[string]aggregate.UserState{},
		events:   map[string]aggregate.EventState{},
		payments: map[string]aggregate.PaymentState{},
		earnings: map[string]aggregate.VendorEarningsState{},
		services: map[string]aggregate.ServiceState{},
		reviews:  map[string]aggregate.ReviewState{},
		messages: map[string]aggregate.MessageState{},
	}
}

// clone copies the maps. Stored states are replaced on save, never mutated,
// so a shallow copy is a consistent snapshot.
func (t tables) clone() tables {
	return tables{
		users:    lo.Assign(t.users),
		events:   lo.Assign(t.events),
		payments: lo.Assign(t.payments),
		earnings: lo.Assign(t.earnings),
		services: lo.Assign(t.services),
		reviews:  lo.Assign(t.reviews),
		messages: lo.Assign(t.messages),
	}
}

// Store holds every collection. Transactions are serialized by txMu and
// rolled back by restoring the snapshot taken at Begin.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data tables
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: newTables()}
}

func (s *Store) read(fn func(t tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(t tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// selectRows filters rows and orders them with less
func selectRows[S any](rows map[string]S, keep func(S) bool, less func(a, b S) bool) []S {
	out := lo.Filter(lo.Values(rows), func(row S, _ int) bool { return keep(row) })
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
