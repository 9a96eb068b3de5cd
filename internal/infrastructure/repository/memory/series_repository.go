package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/decksite-ingest/internal/domain/series"
)

type SeriesRepository struct {
	h holder
}

func (r *SeriesRepository) IsRegistered(_ context.Context, name string) (bool, error) {
	data, release := r.h.acquire(false)
	defer release()

	_, ok := data.series[name]
	return ok, nil
}

func (r *SeriesRepository) ListSeries(_ context.Context) ([]series.Series, error) {
	data, release := r.h.acquire(false)
	defer release()

	out := make([]series.Series, 0, len(data.series))
	for _, item := range data.series {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SeriesRepository) AddSeries(_ context.Context, name string) error {
	data, release := r.h.acquire(true)
	defer release()

	if _, ok := data.series[name]; ok {
		return nil
	}
	data.series[name] = series.Series{ID: data.newID(), Name: name}
	return nil
}

func (r *SeriesRepository) RemoveSeries(_ context.Context, name string) (bool, error) {
	data, release := r.h.acquire(true)
	defer release()

	if _, ok := data.series[name]; !ok {
		return false, nil
	}
	delete(data.series, name)
	return true, nil
}
