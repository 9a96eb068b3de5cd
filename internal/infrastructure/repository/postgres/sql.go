package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var savepointNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullInt64ToPtr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

// withSavepoint runs fn under a savepoint when ext is a transaction, so a
// failed statement inside fn leaves the enclosing transaction usable.
func withSavepoint(ctx context.Context, ext sqlx.ExtContext, name string, fn func() error) error {
	if _, ok := ext.(*sqlx.Tx); !ok {
		return fn()
	}
	if !savepointNameRegex.MatchString(name) {
		return fmt.Errorf("invalid savepoint name %q", name)
	}

	if _, err := ext.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("create savepoint %s: %w", name, err)
	}
	if err := fn(); err != nil {
		if _, rbErr := ext.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback to savepoint %s: %w", name, rbErr))
		}
		return err
	}
	if _, err := ext.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint %s: %w", name, err)
	}
	return nil
}
