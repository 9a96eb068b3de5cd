package usecase

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/domain/match"
	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

type MatchReconcileInput struct {
	Date        time.Time
	Decks       []ReconciledDeck
	Matches     []tournament.ReportedMatch
	TotalRounds int
	Aliases     *alias.Table
}

type MatchReconciler struct{}

func NewMatchReconciler() *MatchReconciler {
	return &MatchReconciler{}
}

func (r *MatchReconciler) Reconcile(ctx context.Context, repo match.Repository, in MatchReconcileInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchReconciler.Reconcile")
	defer span.End()

	decks := newCompetitorIndex[deck.Deck](in.Aliases, len(in.Decks))
	for _, item := range in.Decks {
		decks.put(item.Competitor, item.Deck)
	}

	for i, reported := range in.Matches {
		m, err := buildMatch(decks, reported, in.Date, in.TotalRounds)
		if err != nil {
			return 0, crerr.WithDetailf(err, "match #%d round %d", i, reported.Round)
		}
		if _, err := repo.Insert(ctx, m); err != nil {
			return 0, fmt.Errorf("insert match round %d: %w", reported.Round, err)
		}
	}
	return len(in.Matches), nil
}

func buildMatch(decks *competitorIndex[deck.Deck], reported tournament.ReportedMatch, date time.Time, totalRounds int) (match.Match, error) {
	first, ok := decks.get(reported.PlayerA)
	if !ok {
		return match.Match{}, missingDataf("no deck for %q", reported.PlayerA)
	}

	if reported.Timing == tournament.TimingFinals && !match.FinalsRoundInRange(reported.Round, totalRounds) {
		return match.Match{}, NewSchemaError("matches.round", "finals round %d outside 1..%d", reported.Round, totalRounds)
	}
	elimination := match.Elimination(reported.Timing, reported.Round, totalRounds)
	m := match.Match{
		Date:        date,
		Deck1ID:     first.ID,
		Deck1Wins:   int(reported.PlayerAWins),
		Round:       reported.Round,
		Elimination: &elimination,
	}
	if match.IsBye(reported) {
		return m, nil
	}

	second, ok := decks.get(reported.PlayerB)
	if !ok {
		return match.Match{}, missingDataf("no deck for %q", reported.PlayerB)
	}
	secondID := second.ID
	m.Deck2ID = &secondID
	m.Deck2Wins = int(reported.PlayerBWins)
	return m, nil
}
