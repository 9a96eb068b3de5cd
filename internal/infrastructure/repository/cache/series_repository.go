package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/series"
	basecache "github.com/riskibarqy/decksite-ingest/internal/platform/cache"
)

const seriesListKey = "series:list"

// SeriesRepository is a read-through cache over the series allow-list.
// Writes go straight to the wrapped repository and drop every cached entry.
type SeriesRepository struct {
	next       series.Repository
	registered *basecache.Store[bool]
	list       *basecache.Store[[]series.Series]
}

func NewSeriesRepository(next series.Repository, ttl time.Duration) *SeriesRepository {
	return &SeriesRepository{
		next:       next,
		registered: basecache.NewStore[bool](ttl),
		list:       basecache.NewStore[[]series.Series](ttl),
	}
}

func (r *SeriesRepository) IsRegistered(ctx context.Context, name string) (bool, error) {
	key := "series:registered:" + strings.TrimSpace(name)
	return r.registered.GetOrLoad(ctx, key, func(ctx context.Context) (bool, error) {
		return r.next.IsRegistered(ctx, name)
	})
}

func (r *SeriesRepository) ListSeries(ctx context.Context) ([]series.Series, error) {
	items, err := r.list.GetOrLoad(ctx, seriesListKey, func(ctx context.Context) ([]series.Series, error) {
		items, err := r.next.ListSeries(ctx)
		if err != nil {
			return nil, err
		}
		return append([]series.Series(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]series.Series(nil), items...), nil
}

func (r *SeriesRepository) AddSeries(ctx context.Context, name string) error {
	defer r.invalidate(ctx)
	return r.next.AddSeries(ctx, name)
}

func (r *SeriesRepository) RemoveSeries(ctx context.Context, name string) (bool, error) {
	defer r.invalidate(ctx)
	return r.next.RemoveSeries(ctx, name)
}

func (r *SeriesRepository) invalidate(ctx context.Context) {
	r.registered.DeletePrefix(ctx, "series:registered:")
	r.list.Delete(ctx, seriesListKey)
}
