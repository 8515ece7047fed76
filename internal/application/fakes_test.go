package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/repository"
)

type fakeCatalog struct {
	boutiques map[string]domain.Boutique
	styles    map[string][]domain.Style
	materials map[string][]domain.Material
	// onBoutique runs inside Boutique, before it returns
	onBoutique func()
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		boutiques: map[string]domain.Boutique{
			"b1": {ID: "b1", Name: "Stitch Co", IsOpen: true, Services: []domain.Service{{ID: "s1", Name: "Blouse"}}},
			"b2": {ID: "b2", Name: "Closed Loop", IsOpen: false},
		},
		styles: map[string][]domain.Style{
			"s1": {{ID: "st1", Name: "Princess cut", Price: 1800}},
		},
		materials: map[string][]domain.Material{
			"s1": {{ID: "silk", Name: "Silk", Type: "silk", Price: 2500}, {ID: "cotton", Name: "Cotton", Price: 600}},
		},
	}
}

func (f *fakeCatalog) Boutiques(_ context.Context, _ string) ([]domain.Boutique, error) {
	out := []domain.Boutique{}
	for _, b := range f.boutiques {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeCatalog) Boutique(_ context.Context, id string) (domain.Boutique, error) {
	if f.onBoutique != nil {
		f.onBoutique()
	}
	b, ok := f.boutiques[id]
	if !ok {
		return domain.Boutique{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeCatalog) Services(_ context.Context) ([]domain.Service, error) {
	return []domain.Service{{ID: "s1", Name: "Blouse"}, {ID: "s2", Name: "Lehenga"}}, nil
}

func (f *fakeCatalog) PredesignedStyles(_ context.Context, serviceID string) ([]domain.Style, error) {
	return f.styles[serviceID], nil
}

func (f *fakeCatalog) Materials(_ context.Context, serviceID string) ([]domain.Material, error) {
	return f.materials[serviceID], nil
}

type fakeAddressAPI struct {
	mu      sync.Mutex
	list    []domain.Address
	seq     int
	calls   int
	failSet bool
}

func (f *fakeAddressAPI) Addresses(_ context.Context, _ string) ([]domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]domain.Address(nil), f.list...), nil
}

func (f *fakeAddressAPI) CreateAddress(_ context.Context, _ string, a domain.Address) (domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	a.ID = fmt.Sprintf("a%d", f.seq)
	a.IsDefault = false
	f.list = append(f.list, a)
	return a, nil
}

func (f *fakeAddressAPI) UpdateAddress(_ context.Context, _ string, a domain.Address) (domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.list {
		if f.list[i].ID == a.ID {
			f.list[i] = a
			return a, nil
		}
	}
	return domain.Address{}, domain.ErrNotFound
}

func (f *fakeAddressAPI) DeleteAddress(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.list {
		if f.list[i].ID == id {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeAddressAPI) SetDefaultAddress(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return fmt.Errorf("backend down")
	}
	f.list = domain.MarkDefault(f.list, id)
	return nil
}

type fakeOrderAPI struct {
	err       error
	submitted []domain.PlacedOrder
}

func (f *fakeOrderAPI) SubmitOrder(_ context.Context, _ string, po domain.PlacedOrder) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.submitted = append(f.submitted, po)
	return "REF-1", nil
}

type fakePublisher struct {
	err       error
	published []domain.PlacedOrder
}

func (f *fakePublisher) PublishOrder(_ context.Context, po domain.PlacedOrder) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, po)
	return nil
}

type fakeRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.PlacedOrder
	adds int
	gets int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uuid.UUID]domain.PlacedOrder{}}
}

func (f *fakeRepo) AddOrder(_ context.Context, o *domain.PlacedOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds++
	if _, ok := f.rows[o.ID]; ok {
		return repository.ErrOrderAlreadyExists
	}
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.PlacedOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	o, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeRepo) ListRecentPayloads(_ context.Context, limit int) ([]repository.PayloadRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.PayloadRow
	for id, o := range f.rows {
		if len(out) == limit {
			break
		}
		b, _ := json.Marshal(o)
		out = append(out, repository.PayloadRow{ID: id, Payload: b})
	}
	return out, nil
}
