package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

type DeckReconcileInput struct {
	CompetitionID int64
	Date          time.Time
	Decks         []tournament.ReportedDeck
	Finishes      map[string]int
	Players       []tournament.Player
	Aliases       *alias.Table
}

type ReconciledDeck struct {
	Competitor string
	Deck       deck.Deck
}

type DeckReconciler struct {
	parser  *DecklistParser
	deckURL func(id int64) string
	logger  *logging.Logger
}

func NewDeckReconciler(parser *DecklistParser, deckURL func(id int64) string, logger *logging.Logger) *DeckReconciler {
	if parser == nil {
		parser = NewDecklistParser(nil)
	}
	if deckURL == nil {
		deckURL = func(int64) string { return "" }
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DeckReconciler{parser: parser, deckURL: deckURL, logger: logger}
}

// Reconcile persists one deck per reported deck, in feed order.
func (r *DeckReconciler) Reconcile(ctx context.Context, repo deck.Repository, in DeckReconcileInput) ([]ReconciledDeck, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DeckReconciler.Reconcile")
	defer span.End()

	finishes := newCompetitorIndex[int](in.Aliases, len(in.Finishes))
	for name, finish := range in.Finishes {
		finishes.put(name, finish)
	}

	out := make([]ReconciledDeck, 0, len(in.Decks))
	for _, reported := range in.Decks {
		persisted, err := r.reconcileOne(ctx, repo, in, finishes, reported)
		if err != nil {
			return nil, crerr.WithDetailf(err, "deck %d of %q", reported.ID, reported.PlayerName)
		}
		out = append(out, ReconciledDeck{Competitor: reported.PlayerName, Deck: persisted})
	}
	return out, nil
}

func (r *DeckReconciler) reconcileOne(
	ctx context.Context,
	repo deck.Repository,
	in DeckReconcileInput,
	finishes *competitorIndex[int],
	reported tournament.ReportedDeck,
) (deck.Deck, error) {
	finish, ok := finishes.get(reported.PlayerName)
	if !ok {
		return deck.Deck{}, missingDataf("no finish for %q", reported.PlayerName)
	}

	username := MTGOUsername(reported.PlayerName, in.Players, in.Aliases)
	if username == "" {
		return deck.Deck{}, missingDataf("no mtgo username for %q", reported.PlayerName)
	}

	cards, err := r.parser.Parse(ctx, reported.Maindeck, reported.Sideboard)
	if err != nil {
		return deck.Deck{}, err
	}

	identifier := strconv.FormatInt(reported.ID, 10)
	if _, exists, err := repo.GetIDBySourceIdentifier(ctx, deck.SourceGatherling, identifier); err != nil {
		return deck.Deck{}, fmt.Errorf("lookup deck %s: %w", identifier, err)
	} else if exists {
		return deck.Deck{}, crerr.Wrapf(ErrDuplicateDeck, "%s deck %s", deck.SourceGatherling, identifier)
	}

	persisted, err := repo.Insert(ctx, deck.NewDeck{
		Name:          reported.Name,
		Source:        deck.SourceGatherling,
		Identifier:    identifier,
		MTGOUsername:  username,
		CompetitionID: in.CompetitionID,
		Finish:        finish,
		CreatedAt:     in.Date,
		URL:           r.deckURL(reported.ID),
		ArchetypeName: string(reported.Archetype),
		Cards:         cards,
	}.Normalize())
	if errors.Is(err, deck.ErrDuplicateIdentifier) {
		return deck.Deck{}, crerr.Wrapf(ErrDuplicateDeck, "%s deck %s", deck.SourceGatherling, identifier)
	}
	if err != nil {
		return deck.Deck{}, fmt.Errorf("insert deck %s: %w", identifier, err)
	}

	r.logger.DebugContext(ctx, "deck inserted",
		"deck_id", persisted.ID,
		"identifier", identifier,
		"mtgo_username", username,
		"finish", finish,
	)
	return persisted, nil
}

// MTGOUsername is the roster's linked username, else the display name,
// mapped through the alias table.
func MTGOUsername(displayName string, players []tournament.Player, aliases *alias.Table) string {
	for _, p := range players {
		if p.Name != displayName {
			continue
		}
		if linked := strings.TrimSpace(p.MTGOUsername); linked != "" {
			return aliases.Resolve(linked)
		}
	}
	return aliases.Resolve(strings.TrimSpace(displayName))
}
