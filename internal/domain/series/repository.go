package series

import "context"

// Repository is the operator's allow-list of competition series names.
type Repository interface {
	IsRegistered(ctx context.Context, name string) (bool, error)
	ListSeries(ctx context.Context) ([]Series, error)
	AddSeries(ctx context.Context, name string) error
	RemoveSeries(ctx context.Context, name string) (bool, error)
}
