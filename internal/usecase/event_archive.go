package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/rawdata"
	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

// EventArchive keeps the last fetched body of every processed tournament.
type EventArchive struct {
	repo   rawdata.Repository
	source string
	now    func() time.Time
}

func NewEventArchive(repo rawdata.Repository, source string) *EventArchive {
	return &EventArchive{repo: repo, source: source, now: time.Now}
}

// Archive skips events without a body; a repeated name keeps the later one.
func (a *EventArchive) Archive(ctx context.Context, events ...tournament.RawEvent) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventArchive.Archive")
	defer span.End()

	if a == nil || a.repo == nil {
		return nil
	}
	if a.source == "" {
		return fmt.Errorf("%w: archive source is required", ErrInvalidInput)
	}

	fetched := a.now().UTC()
	index := make(map[string]int, len(events))
	docs := make([]rawdata.Document, 0, len(events))
	for _, ev := range events {
		if ev.Name == "" || len(ev.Payload) == 0 {
			continue
		}
		sum := sha256.Sum256(ev.Payload)
		doc := rawdata.Document{
			Source:      a.source,
			Kind:        rawdata.KindEvent,
			Key:         ev.Name,
			Competition: ev.Name,
			Body:        ev.Payload,
			Hash:        hex.EncodeToString(sum[:]),
			FetchedAt:   fetched,
		}
		if i, seen := index[ev.Name]; seen {
			docs[i] = doc
			continue
		}
		index[ev.Name] = len(docs)
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil
	}

	if err := a.repo.Put(ctx, docs); err != nil {
		return fmt.Errorf("archive %d events: %w", len(docs), err)
	}
	return nil
}
