package usecase

import (
	"context"

	"github.com/riskibarqy/decksite-ingest/internal/domain/archetype"
	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/domain/match"
	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

type TournamentFeed interface {
	FetchRecentEvents(ctx context.Context) ([]tournament.RawEvent, error)
	DecodeEvent(raw tournament.RawEvent) (tournament.Event, error)
	EventReportURL(name string) string
	DeckURL(id int64) string
}

type DecklistFetcher interface {
	FetchDecklists(ctx context.Context, ids []int64) (map[int64]string, error)
}

// TournamentTx is the repository set bound to one open transaction.
type TournamentTx interface {
	Competitions() competition.Repository
	Decks() deck.Repository
	Matches() match.Repository
	Archetypes() archetype.Repository
}

// TxRunner commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TournamentTx) error) error
}
