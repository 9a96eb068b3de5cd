package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/domain/match"
)

type DeckRecord struct {
	Deck   deck.Deck
	Wins   int
	Losses int
	Draws  int
}

type CompetitionDetails struct {
	Competition competition.Competition
	Decks       []DeckRecord
}

type CompetitionService struct {
	competitions competition.Repository
	decks        deck.Repository
	matches      match.Repository
}

func NewCompetitionService(competitions competition.Repository, decks deck.Repository, matches match.Repository) *CompetitionService {
	return &CompetitionService{competitions: competitions, decks: decks, matches: matches}
}

// GetByName returns decks in finish order with their match records.
func (s *CompetitionService) GetByName(ctx context.Context, name string) (CompetitionDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetByName")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return CompetitionDetails{}, fmt.Errorf("%w: competition name is required", ErrInvalidInput)
	}

	found, err := s.competitions.ListByName(ctx, name)
	if err != nil {
		return CompetitionDetails{}, fmt.Errorf("list competitions by name: %w", err)
	}
	if len(found) == 0 {
		return CompetitionDetails{}, fmt.Errorf("%w: competition %q", ErrNotFound, name)
	}
	comp := found[0]

	decks, err := s.decks.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return CompetitionDetails{}, fmt.Errorf("list decks for competition=%d: %w", comp.ID, err)
	}

	records := make([]DeckRecord, 0, len(decks))
	for _, d := range decks {
		matches, err := s.matches.ListByDeck(ctx, d.ID)
		if err != nil {
			return CompetitionDetails{}, fmt.Errorf("list matches for deck=%d: %w", d.ID, err)
		}
		record := DeckRecord{Deck: d}
		for _, m := range matches {
			mine, theirs := m.Deck1Wins, m.Deck2Wins
			if m.Deck1ID != d.ID {
				mine, theirs = theirs, mine
			}
			switch {
			case m.Deck2ID == nil || mine > theirs:
				record.Wins++
			case mine < theirs:
				record.Losses++
			default:
				record.Draws++
			}
		}
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Deck.Finish != records[j].Deck.Finish {
			return records[i].Deck.Finish < records[j].Deck.Finish
		}
		return records[i].Deck.ID < records[j].Deck.ID
	})

	return CompetitionDetails{Competition: comp, Decks: records}, nil
}
