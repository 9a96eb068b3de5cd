package card

import "context"

// Catalog resolves card names against the known card list.
type Catalog interface {
	// CanonicalNames returns input name -> canonical spelling for every name
	// it recognizes. Unknown names are absent from the result.
	CanonicalNames(ctx context.Context, names []string) (map[string]string, error)
}
