package archetype

import "context"

type Archetype struct {
	ID   int64
	Name string
}

// Guess is an archetype tag on a deck. Unconfirmed guesses are low-confidence
// and may later be confirmed or overridden by a human.
type Guess struct {
	DeckID      int64
	ArchetypeID int64
	Confirmed   bool
}

type Repository interface {
	Assign(ctx context.Context, deckID, archetypeID int64, confirmed bool) error
	GetGuess(ctx context.Context, deckID int64) (Guess, bool, error)
}
