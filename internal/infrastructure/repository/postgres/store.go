package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/domain/archetype"
	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/domain/match"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

// Store hands out repositories bound either to the pool or to one open
// transaction.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx usecase.TournamentTx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tournament tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, txRepositories{ext: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tournament tx: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Competitions() *CompetitionRepository { return &CompetitionRepository{db: s.db} }
func (s *Store) Decks() *DeckRepository               { return &DeckRepository{db: s.db} }
func (s *Store) Matches() *MatchRepository            { return &MatchRepository{db: s.db} }
func (s *Store) Archetypes() *ArchetypeRepository     { return &ArchetypeRepository{db: s.db} }
func (s *Store) Series() *SeriesRepository            { return &SeriesRepository{db: s.db} }
func (s *Store) Aliases() *AliasRepository            { return &AliasRepository{db: s.db} }
func (s *Store) RawData() *RawDataRepository          { return &RawDataRepository{db: s.db} }
func (s *Store) Cards() *CardCatalog                  { return &CardCatalog{db: s.db} }

type txRepositories struct {
	ext sqlx.ExtContext
}

func (t txRepositories) Competitions() competition.Repository {
	return &CompetitionRepository{db: t.ext}
}

func (t txRepositories) Decks() deck.Repository {
	return &DeckRepository{db: t.ext}
}

func (t txRepositories) Matches() match.Repository {
	return &MatchRepository{db: t.ext}
}

func (t txRepositories) Archetypes() archetype.Repository {
	return &ArchetypeRepository{db: t.ext}
}
