package application

import (
	"sync"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// OrderStore holds one order draft. Reads hand out deep copies, so callers
// can never mutate the stored state behind the store's back.
type OrderStore struct {
	mu    sync.Mutex
	order domain.OrderDetails
	epoch uint64

	subs    map[int]func(domain.OrderDetails)
	nextSub int
}

func NewOrderStore() *OrderStore {
	return &OrderStore{subs: make(map[int]func(domain.OrderDetails))}
}

func (s *OrderStore) Get() domain.OrderDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Clone()
}

// Snapshot returns the draft together with its epoch. The epoch changes only
// on Reset.
func (s *OrderStore) Snapshot() (domain.OrderDetails, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Clone(), s.epoch
}

// Update merges p into the draft and returns the result.
func (s *OrderStore) Update(p domain.Patch) domain.OrderDetails {
	s.mu.Lock()
	s.order = s.order.Merge(p)
	out, subs := s.publishLocked()
	s.mu.Unlock()
	notify(subs, out)
	return out
}

// UpdateIf merges p only while the draft is still in epoch. It reports false,
// and changes nothing, when the draft was reset in between.
func (s *OrderStore) UpdateIf(epoch uint64, p domain.Patch) (domain.OrderDetails, bool) {
	s.mu.Lock()
	if s.epoch != epoch {
		cur := s.order.Clone()
		s.mu.Unlock()
		return cur, false
	}
	s.order = s.order.Merge(p)
	out, subs := s.publishLocked()
	s.mu.Unlock()
	notify(subs, out)
	return out, true
}

func (s *OrderStore) Reset() {
	s.mu.Lock()
	s.order = domain.OrderDetails{}
	s.epoch++
	out, subs := s.publishLocked()
	s.mu.Unlock()
	notify(subs, out)
}

// Subscribe registers fn to run after every change. The returned func removes it.
func (s *OrderStore) Subscribe(fn func(domain.OrderDetails)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *OrderStore) publishLocked() (domain.OrderDetails, []func(domain.OrderDetails)) {
	subs := make([]func(domain.OrderDetails), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return s.order.Clone(), subs
}

// subscribers run outside the lock and each get their own copy
func notify(subs []func(domain.OrderDetails), o domain.OrderDetails) {
	for _, fn := range subs {
		fn(o.Clone())
	}
}
