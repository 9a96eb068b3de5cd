package rawdata

import "context"

type Repository interface {
	// Put inserts or replaces documents. Keys within one call are unique.
	Put(ctx context.Context, docs []Document) error
}
