package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/logger"
)

var ErrOrderAlreadyExists = errors.New("order already exists")

// PayloadRow is a stored order as raw JSON, used to warm caches.
type PayloadRow struct {
	ID      uuid.UUID
	Payload []byte
}

type OrderRepo interface {
	AddOrder(ctx context.Context, order *domain.PlacedOrder) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.PlacedOrder, error)
	ListRecentPayloads(ctx context.Context, limit int) ([]PayloadRow, error)
}

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(p *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: p}
}

func (p *OrderRepository) AddOrder(ctx context.Context, o *domain.PlacedOrder) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal placed order: %w", err)
	}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var designType string
	if o.Order.DesignType != nil {
		designType = string(*o.Order.DesignType)
	}
	var boutiqueID string
	if o.Order.Boutique != nil {
		boutiqueID = o.Order.Boutique.ID
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO tailor.placed_orders
			(id, reference, user_id, phone, boutique_id, design_type,
			 total_price, delivery_fee, grand_total, delivery_estimate, payload, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6,
			 $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`,
		o.ID,
		o.Reference,
		o.UserID,
		o.Phone,
		boutiqueID,
		designType,
		o.Pricing.TotalPrice,
		o.Pricing.DeliveryFee,
		o.Pricing.GrandTotal,
		o.Pricing.DeliveryEstimate,
		payload,
		o.CreatedAt,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrOrderAlreadyExists
	}
	if err != nil {
		logger.Warn("insert placed order failed", "id", o.ID, "err", err)
		return err
	}

	// price lines, one row each
	if len(o.Pricing.Lines) > 0 {
		batch := &pgx.Batch{}
		for i, l := range o.Pricing.Lines {
			batch.Queue(`
				INSERT INTO tailor.placed_order_lines (order_id, position, label, amount)
				VALUES ($1, $2, $3, $4)
			`, id, i, l.Label, l.Amount)
		}
		br := tx.SendBatch(ctx, batch)
		if err = br.Close(); err != nil {
			return fmt.Errorf("insert price lines: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit placed order: %w", err)
	}
	tx = nil
	return nil
}

// GetOrderByID returns nil, nil when the order does not exist.
func (p *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.PlacedOrder, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx,
		`SELECT payload FROM tailor.placed_orders WHERE id = $1`, id,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var o domain.PlacedOrder
	if err := json.Unmarshal(payload, &o); err != nil {
		return nil, fmt.Errorf("decode placed order %s: %w", id, err)
	}
	o.ID = id
	return &o, nil
}

func (p *OrderRepository) ListRecentPayloads(ctx context.Context, limit int) ([]PayloadRow, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, payload FROM tailor.placed_orders
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (PayloadRow, error) {
		var r PayloadRow
		err := row.Scan(&r.ID, &r.Payload)
		return r, err
	})
}
