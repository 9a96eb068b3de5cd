package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	seriesmock "github.com/riskibarqy/decksite-ingest/internal/mocks/domain/series"
)

func TestSeriesService_IsInteresting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seriesmock.NewRepository(t)
	repo.On("IsRegistered", mock.Anything, "Penny Dreadful Thursdays").Return(true, nil).Once()

	service := NewSeriesService(repo)
	ok, err := service.IsInteresting(ctx, "  Penny Dreadful Thursdays ")
	if err != nil {
		t.Fatalf("IsInteresting: %v", err)
	}
	if !ok {
		t.Fatalf("expected registered series to be interesting")
	}

	ok, err = service.IsInteresting(ctx, "   ")
	if err != nil || ok {
		t.Fatalf("blank series should not be interesting: ok=%v err=%v", ok, err)
	}
}

func TestSeriesService_RemoveUnknown(t *testing.T) {
	t.Parallel()

	repo := seriesmock.NewRepository(t)
	repo.On("RemoveSeries", mock.Anything, "Gone").Return(false, nil).Once()

	err := NewSeriesService(repo).Remove(context.Background(), "Gone")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeriesService_AddRequiresName(t *testing.T) {
	t.Parallel()

	repo := seriesmock.NewRepository(t)
	err := NewSeriesService(repo).Add(context.Background(), " ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
