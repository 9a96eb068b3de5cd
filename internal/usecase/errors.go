package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	ErrBatchRunning          = crerr.New("ingestion batch already running")
)

// Ingestion failures; each aborts the current tournament.
var (
	ErrSchema        = crerr.New("schema error")
	ErrMissingData   = crerr.New("missing data")
	ErrDuplicateDeck = crerr.New("duplicate deck")
	ErrEmptyDecklist = crerr.New("empty decklist")
	ErrInvalidFinish = crerr.New("invalid finish")
)

// SchemaError reports a feed payload that does not have the expected shape.
// Field is the JSON path of the offending value.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "schema error: " + e.Reason
	}
	return fmt.Sprintf("schema error: field %s: %s", e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func NewSchemaError(field, format string, args ...any) error {
	return crerr.WithStack(&SchemaError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func missingDataf(format string, args ...any) error {
	return crerr.Wrapf(ErrMissingData, format, args...)
}

// ErrorKind maps err to a short stable label for logs and batch reports.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case crerr.Is(err, ErrSchema):
		return "schema"
	case crerr.Is(err, ErrMissingData):
		return "missing_data"
	case crerr.Is(err, ErrDuplicateDeck):
		return "duplicate_deck"
	case crerr.Is(err, ErrEmptyDecklist):
		return "empty_decklist"
	case crerr.Is(err, ErrInvalidFinish):
		return "invalid_finish"
	case crerr.Is(err, ErrInvalidInput):
		return "invalid_input"
	case crerr.Is(err, ErrNotFound):
		return "not_found"
	case crerr.Is(err, ErrDependencyUnavailable):
		return "dependency_unavailable"
	case crerr.Is(err, ErrBatchRunning):
		return "batch_running"
	default:
		return "internal"
	}
}
