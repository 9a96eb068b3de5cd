package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/decksite-ingest/internal/domain/rawdata"
)

type RawDataRepository struct {
	h holder
}

func documentKey(source, kind, key string) string {
	return source + "\x00" + kind + "\x00" + key
}

func (r *RawDataRepository) Put(_ context.Context, docs []rawdata.Document) error {
	data, release := r.h.acquire(true)
	defer release()

	for _, doc := range docs {
		k := documentKey(doc.Source, doc.Kind, doc.Key)
		if prev, ok := data.raw[k]; ok && prev.Hash == doc.Hash {
			continue
		}
		doc.Body = slices.Clone(doc.Body)
		data.raw[k] = doc
	}
	return nil
}

func (r *RawDataRepository) Get(_ context.Context, source, kind, key string) (rawdata.Document, bool, error) {
	data, release := r.h.acquire(false)
	defer release()

	doc, ok := data.raw[documentKey(source, kind, key)]
	return doc, ok, nil
}
