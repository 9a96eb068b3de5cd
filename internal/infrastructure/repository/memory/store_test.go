package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

func TestStore_WithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	errAbort := errors.New("abort")

	err := store.WithinTx(ctx, func(ctx context.Context, tx usecase.TournamentTx) error {
		id, err := tx.Competitions().GetOrInsert(ctx, competition.Competition{Name: "PDS 1.01", Series: "PDS", StartDate: time.Now()})
		if err != nil {
			return err
		}
		if _, err := tx.Decks().Insert(ctx, deck.NewDeck{Source: deck.SourceGatherling, Identifier: "1", CompetitionID: id}); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("expected abort error, got %v", err)
	}

	if stats := store.Stats(); stats.Competitions != 0 || stats.Decks != 0 {
		t.Fatalf("expected nothing committed, got %+v", stats)
	}
	items, err := store.Competitions().ListByName(ctx, "PDS 1.01")
	if err != nil {
		t.Fatalf("list competitions: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected rolled back competition to be gone, got %+v", items)
	}
}

func TestStore_WithinTx_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var inTx int64
	err := store.WithinTx(ctx, func(ctx context.Context, tx usecase.TournamentTx) error {
		id, err := tx.Competitions().GetOrInsert(ctx, competition.Competition{Name: "PDS 1.01", Series: "PDS"})
		inTx = id

		if committed, _ := store.Competitions().ListByName(ctx, "PDS 1.01"); len(committed) != 0 {
			t.Errorf("uncommitted competition visible outside the transaction")
		}
		return err
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	items, err := store.Competitions().ListByName(ctx, "PDS 1.01")
	if err != nil {
		t.Fatalf("list competitions: %v", err)
	}
	if len(items) != 1 || items[0].ID != inTx {
		t.Fatalf("expected committed competition %d, got %+v", inTx, items)
	}

	again, err := store.Competitions().GetOrInsert(ctx, competition.Competition{Name: "PDS 1.01"})
	if err != nil {
		t.Fatalf("GetOrInsert: %v", err)
	}
	if again != inTx {
		t.Fatalf("expected existing id %d, got %d", inTx, again)
	}
}

func TestDeckRepository_InsertRejectsDuplicateIdentifier(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Decks()

	if _, err := repo.Insert(ctx, deck.NewDeck{Source: deck.SourceGatherling, Identifier: "42"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := repo.Insert(ctx, deck.NewDeck{Source: deck.SourceGatherling, Identifier: "42"}); !errors.Is(err, deck.ErrDuplicateIdentifier) {
		t.Fatalf("expected duplicate identifier error, got %v", err)
	}
	if _, err := repo.Insert(ctx, deck.NewDeck{Source: "mtgo", Identifier: "42"}); err != nil {
		t.Fatalf("same identifier under another source should insert: %v", err)
	}
}

func TestDeckRepository_ListSimilarCandidates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	archetypeID := int64(900)
	store.SeedDecks(
		deck.Deck{ID: 10, Source: "mtgo", Identifier: "a", ArchetypeID: &archetypeID, Cards: deck.Decklist{Maindeck: map[string]int{"Island": 20}}},
		deck.Deck{ID: 11, Source: "mtgo", Identifier: "b", Cards: deck.Decklist{Maindeck: map[string]int{"Island": 20}}},
		deck.Deck{ID: 12, Source: "mtgo", Identifier: "c", ArchetypeID: &archetypeID, Cards: deck.Decklist{Maindeck: map[string]int{"Mountain": 20}}},
	)

	got, err := store.Decks().ListSimilarCandidates(ctx, 99, []string{"Island"}, 10)
	if err != nil {
		t.Fatalf("ListSimilarCandidates: %v", err)
	}
	if len(got) != 2 || got[0].ID != 11 || got[1].ID != 10 {
		t.Fatalf("expected every deck sharing a card, classified or not, got %+v", got)
	}

	got, err = store.Decks().ListSimilarCandidates(ctx, 11, []string{"Island"}, 10)
	if err != nil {
		t.Fatalf("ListSimilarCandidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != 10 {
		t.Fatalf("expected excluded deck to be skipped, got %+v", got)
	}
}
