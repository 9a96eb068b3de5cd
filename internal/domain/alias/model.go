package alias

import (
	"strings"
	"unicode"
)

// Alias maps an alternate spelling of a username to its canonical MTGO
// username.
type Alias struct {
	Alias        string
	MTGOUsername string
}

// Table is an immutable snapshot of all known aliases.
type Table struct {
	canonical map[string]string
	byFolded  map[string]string
	reverse   map[string][]string
}

func NewTable(items []Alias) *Table {
	t := &Table{
		canonical: make(map[string]string, len(items)),
		byFolded:  make(map[string]string, len(items)),
		reverse:   make(map[string][]string, len(items)),
	}
	for _, item := range items {
		from := strings.TrimSpace(item.Alias)
		to := strings.TrimSpace(item.MTGOUsername)
		if from == "" || to == "" {
			continue
		}
		t.canonical[from] = to
		t.byFolded[Fold(from)] = to
		key := Fold(to)
		t.reverse[key] = append(t.reverse[key], from)
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.canonical)
}

// Resolve returns the canonical username for name, or name itself.
func (t *Table) Resolve(name string) string {
	if t == nil {
		return name
	}
	if to, ok := t.canonical[name]; ok {
		return to
	}
	if to, ok := t.byFolded[Fold(name)]; ok {
		return to
	}
	return name
}

// Alternates lists the known aliases pointing at a canonical username.
func (t *Table) Alternates(canonical string) []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.reverse[Fold(canonical)]...)
}

// Fold normalizes a username for fuzzy comparison: case folded with all
// whitespace removed.
func Fold(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
