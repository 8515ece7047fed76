package application

import (
	"context"
	"sync"
	"time"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/logger"
)

type draftEntry struct {
	store    *OrderStore
	lastSeen time.Time
}

// Drafts keeps one OrderStore per browsing session. Drafts live in memory
// only and are evicted after ttl without a request.
type Drafts struct {
	mu   sync.Mutex
	byID map[string]*draftEntry
	ttl  time.Duration
	now  func() time.Time
}

func NewDrafts(ttl time.Duration) *Drafts {
	return &Drafts{
		byID: make(map[string]*draftEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns the draft for id, starting an empty one when none exists.
func (d *Drafts) Get(id string) *OrderStore {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.byID[id]; ok {
		e.lastSeen = d.now()
		return e.store
	}

	st := NewOrderStore()
	st.Subscribe(func(o domain.OrderDetails) {
		logger.Debug("draft changed", "draft", id, "empty", o.IsZero())
	})
	d.byID[id] = &draftEntry{store: st, lastSeen: d.now()}
	return st
}

func (d *Drafts) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.byID)
}

// Sweep evicts drafts idle for longer than ttl and returns how many went.
func (d *Drafts) Sweep() int {
	if d.ttl <= 0 {
		return 0
	}
	cutoff := d.now().Add(-d.ttl)

	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for id, e := range d.byID {
		if e.lastSeen.Before(cutoff) {
			delete(d.byID, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (d *Drafts) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := d.Sweep(); n > 0 {
				logger.Info("idle drafts evicted", "count", n, "left", d.Len())
			}
		}
	}
}
