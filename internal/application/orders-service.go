package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/logger"
	"github.com/RaikyD/stitch-storefront/internal/repository"
)

var ErrOrderAlreadyExists = repository.ErrOrderAlreadyExists

// OrdersService is the archive of placed orders: an in-memory cache in front
// of the repository. Without a repository it is cache-only.
type OrdersService struct {
	repo repository.OrderRepo
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.PlacedOrder
}

func NewOrdersService(r repository.OrderRepo) *OrdersService {
	return &OrdersService{
		repo: r,
		byID: make(map[uuid.UUID]*domain.PlacedOrder),
	}
}

// AddOrder persists o. A duplicate is not an error: the stored copy is cached.
func (s *OrdersService) AddOrder(ctx context.Context, order *domain.PlacedOrder) error {
	if s.repo == nil {
		s.Remember(*order)
		return nil
	}

	err := s.repo.AddOrder(ctx, order)
	if err != nil {
		if errors.Is(err, ErrOrderAlreadyExists) {
			o, e := s.repo.GetOrderByID(ctx, order.ID)
			if e == nil && o != nil {
				s.Remember(*o)
			}
			return nil
		}
		logger.Warn("archive placed order failed", "id", order.ID, "err", err)
		return err
	}

	s.Remember(*order)
	return nil
}

// Remember caches o without touching the repository.
func (s *OrdersService) Remember(o domain.PlacedOrder) {
	s.mu.Lock()
	s.byID[o.ID] = &o
	s.mu.Unlock()
}

// GetByID returns domain.ErrNotFound when the order is unknown.
func (s *OrdersService) GetByID(ctx context.Context, id uuid.UUID) (domain.PlacedOrder, error) {
	s.mu.RLock()
	if o, ok := s.byID[id]; ok {
		s.mu.RUnlock()
		return *o, nil
	}
	s.mu.RUnlock()

	if s.repo == nil {
		return domain.PlacedOrder{}, domain.ErrNotFound
	}
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		logger.Warn("placed order lookup failed", "id", id, "err", err)
		return domain.PlacedOrder{}, err
	}
	if o == nil {
		return domain.PlacedOrder{}, domain.ErrNotFound
	}

	s.Remember(*o)
	return *o, nil
}

// RestoreCache replaces the cache with the most recent limit orders.
func (s *OrdersService) RestoreCache(ctx context.Context, limit int) error {
	if s.repo == nil {
		return nil
	}
	rows, err := s.repo.ListRecentPayloads(ctx, limit)
	if err != nil {
		return err
	}

	tmp := make(map[uuid.UUID]*domain.PlacedOrder, len(rows))
	for _, r := range rows {
		var o domain.PlacedOrder
		if err := json.Unmarshal(r.Payload, &o); err != nil {
			logger.Warn("skip undecodable placed order", "id", r.ID, "err", err)
			continue
		}
		o.ID = r.ID
		tmp[o.ID] = &o
	}

	s.mu.Lock()
	s.byID = tmp
	s.mu.Unlock()
	logger.Info("placed order cache restored", "count", len(tmp))
	return nil
}
