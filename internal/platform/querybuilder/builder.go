// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue, numbering placeholders ($1, $2, ...) across clauses.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// binder collects bound arguments and hands out the matching placeholder.
type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// expand replaces each '?' in expr with the next placeholder. Surplus '?'
// characters are left untouched.
func (b *binder) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}
	var out strings.Builder
	next := 0
	for _, r := range expr {
		if r == '?' && next < len(values) {
			out.WriteString(b.bind(values[next]))
			next++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

func (b *binder) where(conditions []Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		parts[i] = c(b)
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

// Condition renders one predicate of a WHERE clause. Conditions are ANDed.
type Condition func(b *binder) string

func Eq(column string, value any) Condition {
	return func(b *binder) string { return column + " = " + b.bind(value) }
}

// Any matches column against a single array parameter, e.g. pq.Array(ids).
func Any(column string, array any) Condition {
	return func(b *binder) string { return column + " = ANY(" + b.bind(array) + ")" }
}

func IsNotNull(column string) Condition {
	return func(*binder) string { return column + " IS NOT NULL" }
}

// Expr is a raw predicate with '?' placeholders.
func Expr(expr string, args ...any) Condition {
	return func(b *binder) string { return b.expand(expr, args) }
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

// Join appends a raw join clause, e.g. "JOIN deck d ON d.id = dm.deck_id".
func (s *SelectBuilder) Join(clause string) *SelectBuilder {
	s.joins = append(s.joins, strings.TrimSpace(clause))
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, terms...)
	return s
}

func (s *SelectBuilder) Limit(n int) *SelectBuilder {
	s.limit = n
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(s.columns) == 0:
		return "", nil, fmt.Errorf("select: no columns")
	case strings.TrimSpace(s.table) == "":
		return "", nil, fmt.Errorf("select: no table")
	}

	var b binder
	sql := "SELECT " + strings.Join(s.columns, ", ") + " FROM " + s.table
	for _, j := range s.joins {
		sql += " " + j
	}
	sql += b.where(s.where)
	if len(s.orderBy) > 0 {
		sql += " ORDER BY " + strings.Join(s.orderBy, ", ")
	}
	if s.limit > 0 {
		sql += " LIMIT " + strconv.Itoa(s.limit)
	}
	return sql, b.args, nil
}

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	suffix    string
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = columns
	return i
}

// Values adds one row; call it repeatedly for a multi-row insert.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.rows = append(i.rows, values)
	return i
}

// Suffix is rendered verbatim after VALUES, e.g. an ON CONFLICT clause.
func (i *InsertBuilder) Suffix(sql string) *InsertBuilder {
	i.suffix = strings.TrimSpace(sql)
	return i
}

func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = columns
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(i.table) == "":
		return "", nil, fmt.Errorf("insert: no table")
	case len(i.columns) == 0:
		return "", nil, fmt.Errorf("insert into %s: no columns", i.table)
	case len(i.rows) == 0:
		return "", nil, fmt.Errorf("insert into %s: no rows", i.table)
	}

	var b binder
	tuples := make([]string, len(i.rows))
	for r, row := range i.rows {
		if len(row) != len(i.columns) {
			return "", nil, fmt.Errorf("insert into %s: row %d has %d values for %d columns", i.table, r, len(row), len(i.columns))
		}
		marks := make([]string, len(row))
		for c, v := range row {
			marks[c] = b.bind(v)
		}
		tuples[r] = "(" + strings.Join(marks, ", ") + ")"
	}

	sql := "INSERT INTO " + i.table + " (" + strings.Join(i.columns, ", ") + ") VALUES " + strings.Join(tuples, ", ")
	if i.suffix != "" {
		sql += " " + i.suffix
	}
	if len(i.returning) > 0 {
		sql += " RETURNING " + strings.Join(i.returning, ", ")
	}
	return sql, b.args, nil
}

type assignment struct {
	column string
	value  any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, value: value})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

// ToSQL refuses to build an unconditioned update.
func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(u.table) == "":
		return "", nil, fmt.Errorf("update: no table")
	case len(u.sets) == 0:
		return "", nil, fmt.Errorf("update %s: nothing to set", u.table)
	case len(u.where) == 0:
		return "", nil, fmt.Errorf("update %s: no condition", u.table)
	}

	var b binder
	sets := make([]string, len(u.sets))
	for i, a := range u.sets {
		sets[i] = a.column + " = " + b.bind(a.value)
	}
	sql := "UPDATE " + u.table + " SET " + strings.Join(sets, ", ") + b.where(u.where)
	return sql, b.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (d *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	d.where = append(d.where, conditions...)
	return d
}

// ToSQL refuses to build an unconditioned delete.
func (d *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(d.table) == "":
		return "", nil, fmt.Errorf("delete: no table")
	case len(d.where) == 0:
		return "", nil, fmt.Errorf("delete from %s: no condition", d.table)
	}

	var b binder
	sql := "DELETE FROM " + d.table + b.where(d.where)
	return sql, b.args, nil
}
