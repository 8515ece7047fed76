package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/flow"
	"github.com/RaikyD/stitch-storefront/internal/logger"
)

type bookEntry struct {
	list     []domain.Address
	lastSeen time.Time
}

// AddressBook caches a signed-in user's saved addresses per token and keeps
// at most one of them marked default.
type AddressBook struct {
	api AddressAPI
	now func() time.Time

	mu      sync.Mutex
	byToken map[string]*bookEntry
}

func NewAddressBook(api AddressAPI) *AddressBook {
	return &AddressBook{api: api, now: time.Now, byToken: make(map[string]*bookEntry)}
}

func (b *AddressBook) List(ctx context.Context, token string) ([]domain.Address, error) {
	b.mu.Lock()
	e, ok := b.byToken[token]
	if ok {
		e.lastSeen = b.now()
		list := copyAddresses(e.list)
		b.mu.Unlock()
		return list, nil
	}
	b.mu.Unlock()

	list, err := b.api.Addresses(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	list = domain.NormalizeDefaults(list)
	b.store(token, list)
	return copyAddresses(list), nil
}

func (b *AddressBook) Get(ctx context.Context, token, id string) (domain.Address, error) {
	list, err := b.List(ctx, token)
	if err != nil {
		return domain.Address{}, err
	}
	a, ok := domain.FindAddress(list, id)
	if !ok {
		return domain.Address{}, fmt.Errorf("address %q: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

// Create validates and saves a. The first address, or one flagged default,
// becomes the default.
func (b *AddressBook) Create(ctx context.Context, token string, a domain.Address) (domain.Address, error) {
	a = trimAddress(a)
	if errs := flow.ValidateStruct(a); len(errs) > 0 {
		return domain.Address{}, errs
	}
	list, err := b.List(ctx, token)
	if err != nil {
		return domain.Address{}, err
	}

	created, err := b.api.CreateAddress(ctx, token, a)
	if err != nil {
		return domain.Address{}, fmt.Errorf("create address: %w", err)
	}
	list = append(list, created)

	if a.IsDefault || len(list) == 1 {
		if err := b.api.SetDefaultAddress(ctx, token, created.ID); err != nil {
			b.Forget(token)
			return created, fmt.Errorf("set default address: %w", err)
		}
		list = domain.MarkDefault(list, created.ID)
		created.IsDefault = true
	} else {
		list = domain.NormalizeDefaults(list)
	}
	b.store(token, list)
	return created, nil
}

func (b *AddressBook) Update(ctx context.Context, token string, a domain.Address) (domain.Address, error) {
	a = trimAddress(a)
	if errs := flow.ValidateStruct(a); len(errs) > 0 {
		return domain.Address{}, errs
	}
	list, err := b.List(ctx, token)
	if err != nil {
		return domain.Address{}, err
	}
	prev, ok := domain.FindAddress(list, a.ID)
	if !ok {
		return domain.Address{}, fmt.Errorf("address %q: %w", a.ID, domain.ErrNotFound)
	}

	updated, err := b.api.UpdateAddress(ctx, token, a)
	if err != nil {
		return domain.Address{}, fmt.Errorf("update address: %w", err)
	}
	for i := range list {
		if list[i].ID == updated.ID {
			list[i] = updated
		}
	}

	switch {
	case a.IsDefault && !prev.IsDefault:
		if err := b.api.SetDefaultAddress(ctx, token, a.ID); err != nil {
			b.Forget(token)
			return updated, fmt.Errorf("set default address: %w", err)
		}
		list = domain.MarkDefault(list, a.ID)
		updated.IsDefault = true
	case prev.IsDefault:
		// editing the default keeps it default
		list = domain.MarkDefault(list, a.ID)
		updated.IsDefault = true
	default:
		list = domain.NormalizeDefaults(list)
	}
	b.store(token, list)
	return updated, nil
}

func (b *AddressBook) Delete(ctx context.Context, token, id string) error {
	list, err := b.List(ctx, token)
	if err != nil {
		return err
	}
	if err := b.api.DeleteAddress(ctx, token, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	out := list[:0]
	for _, a := range list {
		if a.ID != id {
			out = append(out, a)
		}
	}
	b.store(token, domain.NormalizeDefaults(out))
	return nil
}

func (b *AddressBook) SetDefault(ctx context.Context, token, id string) ([]domain.Address, error) {
	list, err := b.List(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.FindAddress(list, id); !ok {
		return nil, fmt.Errorf("address %q: %w", id, domain.ErrNotFound)
	}
	if err := b.api.SetDefaultAddress(ctx, token, id); err != nil {
		return nil, fmt.Errorf("set default address: %w", err)
	}
	list = domain.MarkDefault(list, id)
	b.store(token, list)
	return copyAddresses(list), nil
}

// Forget drops the cached list, e.g. on logout.
func (b *AddressBook) Forget(token string) {
	b.mu.Lock()
	delete(b.byToken, token)
	b.mu.Unlock()
}

func (b *AddressBook) store(token string, list []domain.Address) {
	b.mu.Lock()
	b.byToken[token] = &bookEntry{list: copyAddresses(list), lastSeen: b.now()}
	b.mu.Unlock()
}

// Sweep drops lists not read for longer than ttl, so tokens that simply
// expire do not stay cached. A zero ttl keeps everything.
func (b *AddressBook) Sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := b.now().Add(-ttl)

	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for tok, e := range b.byToken {
		if e.lastSeen.Before(cutoff) {
			delete(b.byToken, tok)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (b *AddressBook) Run(ctx context.Context, every, ttl time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := b.Sweep(ttl); n > 0 {
				logger.Info("idle address lists evicted", "count", n)
			}
		}
	}
}

func copyAddresses(list []domain.Address) []domain.Address {
	out := make([]domain.Address, len(list))
	copy(out, list)
	return out
}

func trimAddress(a domain.Address) domain.Address {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = strings.TrimSpace(a.Phone)
	a.DoorNo = strings.TrimSpace(a.DoorNo)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.Area = strings.TrimSpace(a.Area)
	a.Landmark = strings.TrimSpace(a.Landmark)
	a.Pincode = strings.TrimSpace(a.Pincode)
	return a
}
