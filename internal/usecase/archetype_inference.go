package usecase

import (
	"context"

	"github.com/riskibarqy/decksite-ingest/internal/domain/archetype"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

const defaultSimilarCandidateLimit = 200

// ArchetypeInference copies the archetype of the most similar earlier deck,
// if it has one, as an unconfirmed guess.
type ArchetypeInference struct {
	candidateLimit int
	logger         *logging.Logger
}

func NewArchetypeInference(candidateLimit int, logger *logging.Logger) *ArchetypeInference {
	if candidateLimit <= 0 {
		candidateLimit = defaultSimilarCandidateLimit
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ArchetypeInference{candidateLimit: candidateLimit, logger: logger}
}

// Infer returns how many decks were tagged.
func (a *ArchetypeInference) Infer(ctx context.Context, decks deck.Repository, archetypes archetype.Repository, fresh []deck.Deck) int {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchetypeInference.Infer")
	defer span.End()

	tagged := 0
	for _, d := range fresh {
		best, ok := a.mostSimilar(ctx, decks, d)
		if !ok {
			continue
		}
		if best.ArchetypeID == nil {
			a.logger.DebugContext(ctx, "most similar deck has no archetype", "deck_id", d.ID, "similar_deck_id", best.DeckID)
			continue
		}
		if err := archetypes.Assign(ctx, d.ID, *best.ArchetypeID, false); err != nil {
			a.logger.WarnContext(ctx, "assign guessed archetype failed", "deck_id", d.ID, "archetype_id", *best.ArchetypeID, "error", err)
			continue
		}
		tagged++
	}
	return tagged
}

func (a *ArchetypeInference) mostSimilar(ctx context.Context, decks deck.Repository, d deck.Deck) (deck.SimilarDeck, bool) {
	names := make([]string, 0, len(d.Cards.Maindeck))
	for name := range d.Cards.Maindeck {
		names = append(names, name)
	}
	if len(names) == 0 {
		return deck.SimilarDeck{}, false
	}

	candidates, err := decks.ListSimilarCandidates(ctx, d.ID, names, a.candidateLimit)
	if err != nil {
		a.logger.WarnContext(ctx, "list similar decks failed", "deck_id", d.ID, "error", err)
		return deck.SimilarDeck{}, false
	}

	ranked := deck.RankSimilar(d.Cards, candidates)
	if len(ranked) == 0 {
		a.logger.DebugContext(ctx, "no similar deck", "deck_id", d.ID)
		return deck.SimilarDeck{}, false
	}
	return ranked[0], true
}
