package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/decksite-ingest/internal/domain/series"
)

type SeriesService struct {
	repo series.Repository
}

func NewSeriesService(repo series.Repository) *SeriesService {
	return &SeriesService{repo: repo}
}

func (s *SeriesService) IsInteresting(ctx context.Context, name string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.IsInteresting")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	ok, err := s.repo.IsRegistered(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check series %q: %w", name, err)
	}
	return ok, nil
}

func (s *SeriesService) List(ctx context.Context) ([]series.Series, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.List")
	defer span.End()

	items, err := s.repo.ListSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	return items, nil
}

func (s *SeriesService) Add(ctx context.Context, name string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.Add")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: series name is required", ErrInvalidInput)
	}
	if err := s.repo.AddSeries(ctx, name); err != nil {
		return fmt.Errorf("add series %q: %w", name, err)
	}
	return nil
}

func (s *SeriesService) Remove(ctx context.Context, name string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.Remove")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: series name is required", ErrInvalidInput)
	}
	removed, err := s.repo.RemoveSeries(ctx, name)
	if err != nil {
		return fmt.Errorf("remove series %q: %w", name, err)
	}
	if !removed {
		return fmt.Errorf("%w: series %q", ErrNotFound, name)
	}
	return nil
}
