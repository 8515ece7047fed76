package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

func placed() domain.PlacedOrder {
	return domain.PlacedOrder{
		ID:        uuid.New(),
		Reference: "REF-9",
		UserID:    "u1",
		Order:     domain.OrderDetails{DesignType: domain.Ptr(domain.DesignCustom)},
		Pricing:   domain.Pricing{TotalPrice: 2500, DeliveryFee: 100, GrandTotal: 2600},
		CreatedAt: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrdersServiceAddAndGet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewOrdersService(repo)
	ctx := context.Background()
	po := placed()

	require.NoError(t, svc.AddOrder(ctx, &po))
	require.NoError(t, svc.AddOrder(ctx, &po), "duplicates are absorbed")
	assert.Equal(t, 2, repo.adds)

	got, err := svc.GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "REF-9", got.Reference)
	assert.Equal(t, 1, repo.gets, "served from cache after the duplicate reload")

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrdersServiceRestoreCache(t *testing.T) {
	repo := newFakeRepo()
	po := placed()
	repo.rows[po.ID] = po

	svc := NewOrdersService(repo)
	require.NoError(t, svc.RestoreCache(context.Background(), 100))

	got, err := svc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, 2600.0, got.Pricing.GrandTotal)
	assert.Zero(t, repo.gets)
}

func TestOrdersServiceWithoutRepo(t *testing.T) {
	svc := NewOrdersService(nil)
	po := placed()
	require.NoError(t, svc.AddOrder(context.Background(), &po))
	require.NoError(t, svc.RestoreCache(context.Background(), 10))

	got, err := svc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, po.ID, got.ID)
}
