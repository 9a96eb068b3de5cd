package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds a single-row insert from the `db` tags of an exported
// struct. Untagged fields and `db:"-"` are skipped; suffix is appended as is,
// e.g. "RETURNING id".
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v := reflect.Indirect(reflect.ValueOf(model))
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert into %s: model must be a non-nil struct, got %T", table, model)
	}

	var columns []string
	var values []any
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		columns = append(columns, name)
		values = append(values, v.FieldByIndex(f.Index).Interface())
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert into %s: %T has no db columns", table, model)
	}

	return InsertInto(table).Columns(columns...).Values(values...).Suffix(suffix).ToSQL()
}
