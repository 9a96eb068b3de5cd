package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/domain/rawdata"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

type RawDataRepository struct {
	db sqlx.ExtContext
}

// upsertDocumentSuffix replaces a live document only when its body changed,
// so re-fetching an unchanged event leaves ingested_at alone.
const upsertDocumentSuffix = `ON CONFLICT (source, entity_type, entity_key) WHERE deleted_at IS NULL
DO UPDATE SET
    competition_name = EXCLUDED.competition_name,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    source_updated_at = EXCLUDED.source_updated_at,
    ingested_at = NOW()
WHERE raw_data_payloads.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash`

func (r *RawDataRepository) Put(ctx context.Context, docs []rawdata.Document) error {
	if len(docs) == 0 {
		return nil
	}

	insert := qb.InsertInto("raw_data_payloads").
		Columns("source", "entity_type", "entity_key", "competition_name", "payload", "payload_hash", "source_updated_at").
		Suffix(upsertDocumentSuffix)
	for _, doc := range docs {
		insert.Values(doc.Source, doc.Kind, doc.Key, nullableString(doc.Competition), string(doc.Body), doc.Hash, doc.FetchedAt)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert raw documents query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d raw documents: %w", len(docs), err)
	}
	return nil
}
