package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/logger"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// Archiver stores a placed order; duplicates must not be an error.
type Archiver interface {
	AddOrder(ctx context.Context, order *domain.PlacedOrder) error
}

// StartConsumer archives placed orders from the topic until ctx is done.
// A message is committed only after it was stored, or when it can never be.
func StartConsumer(ctx context.Context, svc Archiver, cfg ConsumerConfig) (*kafka.Reader, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         splitBrokers(cfg.Brokers),
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()

		backoff := time.Millisecond * 300
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				sleep(ctx, backoff)
				continue
			}

			o, ok := decode(m)
			if !ok {
				_ = r.CommitMessages(ctx, m)
				continue
			}

			for {
				if err = svc.AddOrder(ctx, &o); err == nil {
					break
				}
				logger.Warn("kafka archive fail, will retry", "id", o.ID, "err", err)
				if !sleep(ctx, backoff) {
					return
				}
			}

			if err := r.CommitMessages(ctx, m); err != nil {
				logger.Warn("kafka commit failed", "err", err)
			} else {
				logger.Info("placed order archived", "id", o.ID, "partition", m.Partition, "offset", m.Offset)
			}
		}
	}()
	return r, nil
}

// decode rejects messages that can never be archived.
func decode(m kafka.Message) (domain.PlacedOrder, bool) {
	var o domain.PlacedOrder
	if err := json.Unmarshal(m.Value, &o); err != nil {
		logger.Warn("kafka invalid json, skip and commit", "offset", m.Offset, "err", err)
		return o, false
	}
	if o.ID == uuid.Nil {
		logger.Warn("kafka placed order without id, skip and commit", "offset", m.Offset)
		return o, false
	}
	return o, true
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
