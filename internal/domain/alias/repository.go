package alias

import "context"

type Repository interface {
	ListAliases(ctx context.Context) ([]Alias, error)
	UpsertAlias(ctx context.Context, a Alias) error
}
