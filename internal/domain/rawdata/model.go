// Package rawdata is the archive of feed documents exactly as fetched, kept
// so a tournament can be re-examined after the upstream changes or drops it.
package rawdata

import "time"

const KindEvent = "event"

// Document is one archived feed body. (Source, Kind, Key) identifies it; a
// newer body with a different Hash replaces the stored one.
type Document struct {
	Source      string
	Kind        string
	Key         string
	Competition string
	Body        []byte
	Hash        string
	FetchedAt   time.Time
}
