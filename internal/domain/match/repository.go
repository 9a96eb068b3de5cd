package match

import "context"

type Repository interface {
	Insert(ctx context.Context, m Match) (int64, error)
	ListByDeck(ctx context.Context, deckID int64) ([]Match, error)
}
