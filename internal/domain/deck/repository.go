package deck

import "context"

type Repository interface {
	GetIDBySourceIdentifier(ctx context.Context, source, identifier string) (int64, bool, error)
	Insert(ctx context.Context, d NewDeck) (Deck, error)
	ListByCompetition(ctx context.Context, competitionID int64) ([]Deck, error)
	// ListSimilarCandidates returns decks, classified or not, other than excludeID,
	// that share at least one maindeck card with the given names.
	ListSimilarCandidates(ctx context.Context, excludeID int64, cardNames []string, limit int) ([]Deck, error)
}
