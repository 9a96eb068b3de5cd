package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

func TestCompetitionService_GetByNameReportsRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Aliases().UpsertAlias(ctx, alias.Alias{Alias: "jsmith", MTGOUsername: "j_smith_mtgo"}))
	f.serve(sampleEvent())

	report, err := f.service.RunBatch(ctx)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)

	svc := usecase.NewCompetitionService(f.store.Competitions(), f.store.Decks(), f.store.Matches())
	details, err := svc.GetByName(ctx, report.Outcomes[0].Name)
	require.NoError(t, err)
	require.Equal(t, report.Outcomes[0].CompetitionID, details.Competition.ID)
	require.Len(t, details.Decks, 5)

	type record struct{ Finish, Wins, Losses, Draws int }
	got := make(map[string]record, len(details.Decks))
	for _, item := range details.Decks {
		got[item.Deck.MTGOUsername] = record{item.Deck.Finish, item.Wins, item.Losses, item.Draws}
	}
	want := map[string]record{
		"alice_mtgo":   {Finish: 1, Wins: 3},
		"Bob":          {Finish: 2, Wins: 1, Losses: 2},
		"Carol":        {Finish: 3, Losses: 1},
		"j_smith_mtgo": {Finish: 3, Losses: 1},
		"Eve":          {Finish: 5, Wins: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("deck records mismatch (-want +got):\n%s", diff)
	}
	if details.Decks[0].Deck.MTGOUsername != "alice_mtgo" || details.Decks[4].Deck.MTGOUsername != "Eve" {
		t.Fatalf("expected decks in finish order, got first=%q last=%q",
			details.Decks[0].Deck.MTGOUsername, details.Decks[4].Deck.MTGOUsername)
	}
}

func TestCompetitionService_GetByNameErrors(t *testing.T) {
	f := newFixture(t)
	svc := usecase.NewCompetitionService(f.store.Competitions(), f.store.Decks(), f.store.Matches())

	if _, err := svc.GetByName(context.Background(), "  "); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetByName(context.Background(), "Nope 1.01"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
