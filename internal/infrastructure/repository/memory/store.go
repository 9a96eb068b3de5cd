package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/domain/archetype"
	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/domain/match"
	"github.com/riskibarqy/decksite-ingest/internal/domain/rawdata"
	"github.com/riskibarqy/decksite-ingest/internal/domain/series"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

type state struct {
	nextID            int64
	series            map[string]series.Series
	competitions      map[int64]competition.Competition
	competitionByName map[string]int64
	decks             map[int64]deck.Deck
	deckByKey         map[string]int64
	matches           map[int64]match.Match
	aliases           map[string]alias.Alias
	archetypes        map[int64]archetype.Archetype
	guesses           map[int64]archetype.Guess
	cards             map[string]string
	raw               map[string]rawdata.Document
}

func newState() *state {
	return &state{
		series:            make(map[string]series.Series),
		competitions:      make(map[int64]competition.Competition),
		competitionByName: make(map[string]int64),
		decks:             make(map[int64]deck.Deck),
		deckByKey:         make(map[string]int64),
		matches:           make(map[int64]match.Match),
		aliases:           make(map[string]alias.Alias),
		archetypes:        make(map[int64]archetype.Archetype),
		guesses:           make(map[int64]archetype.Guess),
		cards:             make(map[string]string),
		raw:               make(map[string]rawdata.Document),
	}
}

// clone copies every table. Stored values are never mutated in place, so
// a shallow copy of each map is enough.
func (s *state) clone() *state {
	return &state{
		nextID:            s.nextID,
		series:            maps.Clone(s.series),
		competitions:      maps.Clone(s.competitions),
		competitionByName: maps.Clone(s.competitionByName),
		decks:             maps.Clone(s.decks),
		deckByKey:         maps.Clone(s.deckByKey),
		matches:           maps.Clone(s.matches),
		aliases:           maps.Clone(s.aliases),
		archetypes:        maps.Clone(s.archetypes),
		guesses:           maps.Clone(s.guesses),
		cards:             maps.Clone(s.cards),
		raw:               maps.Clone(s.raw),
	}
}

func (s *state) newID() int64 {
	s.nextID++
	return s.nextID
}

// holder hands repositories the table set they operate on together with the
// lock guarding it.
type holder interface {
	acquire(write bool) (*state, func())
}

type guarded struct {
	mu   sync.RWMutex
	data *state
}

func (g *guarded) acquire(write bool) (*state, func()) {
	if write {
		g.mu.Lock()
		return g.data, g.mu.Unlock
	}
	g.mu.RLock()
	return g.data, g.mu.RUnlock
}

// Store keeps every table in memory. Transactions work on a private copy
// that replaces the committed tables only when the callback succeeds, and
// run one at a time.
type Store struct {
	committed guarded
	txMu      sync.Mutex
}

func NewStore() *Store {
	return &Store{committed: guarded{data: newState()}}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx usecase.TournamentTx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	data, release := s.committed.acquire(false)
	working := &guarded{data: data.clone()}
	release()

	if err := fn(ctx, newTx(working)); err != nil {
		return err
	}

	s.committed.mu.Lock()
	s.committed.data = working.data
	s.committed.mu.Unlock()
	return nil
}

func (s *Store) Competitions() *CompetitionRepository { return &CompetitionRepository{h: &s.committed} }
func (s *Store) Decks() *DeckRepository               { return &DeckRepository{h: &s.committed} }
func (s *Store) Matches() *MatchRepository            { return &MatchRepository{h: &s.committed} }
func (s *Store) Archetypes() *ArchetypeRepository     { return &ArchetypeRepository{h: &s.committed} }
func (s *Store) Series() *SeriesRepository            { return &SeriesRepository{h: &s.committed} }
func (s *Store) Aliases() *AliasRepository            { return &AliasRepository{h: &s.committed} }
func (s *Store) RawData() *RawDataRepository          { return &RawDataRepository{h: &s.committed} }
func (s *Store) Cards() *CardCatalog                  { return &CardCatalog{h: &s.committed} }

type Stats struct {
	Competitions int
	Decks        int
	Matches      int
	Guesses      int
}

func (s *Store) Stats() Stats {
	data, release := s.committed.acquire(false)
	defer release()
	return Stats{
		Competitions: len(data.competitions),
		Decks:        len(data.decks),
		Matches:      len(data.matches),
		Guesses:      len(data.guesses),
	}
}

type tx struct {
	h holder
}

func newTx(h holder) *tx {
	return &tx{h: h}
}

func (t *tx) Competitions() competition.Repository { return &CompetitionRepository{h: t.h} }
func (t *tx) Decks() deck.Repository               { return &DeckRepository{h: t.h} }
func (t *tx) Matches() match.Repository            { return &MatchRepository{h: t.h} }
func (t *tx) Archetypes() archetype.Repository     { return &ArchetypeRepository{h: t.h} }
