package deck

import "errors"

// ErrDuplicateIdentifier is returned by Repository.Insert when the store
// already holds a deck with the same (source, identifier).
var ErrDuplicateIdentifier = errors.New("deck identifier already exists")
