package cache

import (
	"context"
	"time"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// AggregateSnapshotCache caches the aggregate-ledger totals for read-only
// consumers. The cached snapshot is bounded-stale: writers invalidate it
// after commit and readers fall back to the database on a miss.
type AggregateSnapshotCache interface {
	Get(ctx context.Context) (*domain.AggregateLedger, bool, error)
	Set(ctx context.Context, snapshot *domain.AggregateLedger, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopAggregateCache satisfies AggregateSnapshotCache without caching
// anything. Used when no redis address is configured and in tests.
type NoopAggregateCache struct{}

func (NoopAggregateCache) Get(_ context.Context) (*domain.AggregateLedger, bool, error) {
	return nil, false, nil
}

func (NoopAggregateCache) Set(_ context.Context, _ *domain.AggregateLedger, _ time.Duration) error {
	return nil
}

func (NoopAggregateCache) Invalidate(_ context.Context) error {
	return nil
}
