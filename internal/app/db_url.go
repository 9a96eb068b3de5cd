package app

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/lib/pq"
)

// maxTracedQuery caps the statement text attached to db spans.
const maxTracedQuery = 512

// normalizeDBURL turns on lib/pq binary_parameters, which pgbouncer in
// transaction mode needs, unless the URL already sets it. Key/value
// connection strings are returned untouched.
func normalizeDBURL(raw string, binaryParameters bool) string {
	if !binaryParameters {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if q.Has("binary_parameters") {
		return raw
	}
	q.Set("binary_parameters", "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// dbNameFromURL accepts both postgres:// URLs and key/value connection
// strings. URLs are converted by lib/pq first so both forms share one parser.
func dbNameFromURL(raw string) string {
	conninfo := strings.TrimSpace(raw)
	if strings.HasPrefix(conninfo, "postgres://") || strings.HasPrefix(conninfo, "postgresql://") {
		converted, err := pq.ParseURL(conninfo)
		if err != nil {
			return ""
		}
		conninfo = converted
	}
	for _, field := range strings.Fields(conninfo) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// formatDBQueryForTrace collapses whitespace and truncates long statements.
func formatDBQueryForTrace(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) <= maxTracedQuery {
		return compact
	}
	cut := maxTracedQuery
	for cut > 0 && !utf8.RuneStart(compact[cut]) {
		cut--
	}
	return compact[:cut] + "..."
}
