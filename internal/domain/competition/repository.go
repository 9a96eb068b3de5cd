package competition

import "context"

type Repository interface {
	ListByName(ctx context.Context, name string) ([]Competition, error)
	// GetOrInsert returns the id of the competition named c.Name, inserting
	// it first when absent.
	GetOrInsert(ctx context.Context, c Competition) (int64, error)
}
