package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/platform/cache"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

const aliasTableCacheKey = "alias:table"

// AliasService caches the alias table; a zero ttl keeps it until Invalidate.
type AliasService struct {
	repo   alias.Repository
	tables *cache.Store[*alias.Table]
	logger *logging.Logger
}

func NewAliasService(repo alias.Repository, ttl time.Duration, logger *logging.Logger) *AliasService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AliasService{
		repo:   repo,
		tables: cache.NewStore[*alias.Table](ttl),
		logger: logger,
	}
}

func (s *AliasService) Snapshot(ctx context.Context) (*alias.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AliasService.Snapshot")
	defer span.End()

	table, err := s.tables.GetOrLoad(ctx, aliasTableCacheKey, s.load)
	if err != nil {
		return nil, fmt.Errorf("load aliases: %w", err)
	}
	return table, nil
}

// Load discards any cached table and reads a fresh one.
func (s *AliasService) Load(ctx context.Context) (*alias.Table, error) {
	s.Invalidate(ctx)
	return s.Snapshot(ctx)
}

func (s *AliasService) Invalidate(ctx context.Context) {
	s.tables.Delete(ctx, aliasTableCacheKey)
}

func (s *AliasService) List(ctx context.Context) ([]alias.Alias, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AliasService.List")
	defer span.End()

	items, err := s.repo.ListAliases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	return items, nil
}

func (s *AliasService) Add(ctx context.Context, item alias.Alias) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AliasService.Add")
	defer span.End()

	item.Alias = strings.TrimSpace(item.Alias)
	item.MTGOUsername = strings.TrimSpace(item.MTGOUsername)
	if item.Alias == "" || item.MTGOUsername == "" {
		return fmt.Errorf("%w: alias and mtgo username are required", ErrInvalidInput)
	}
	if item.Alias == item.MTGOUsername {
		return fmt.Errorf("%w: alias must differ from the mtgo username", ErrInvalidInput)
	}
	if err := s.repo.UpsertAlias(ctx, item); err != nil {
		return fmt.Errorf("upsert alias %q: %w", item.Alias, err)
	}
	s.Invalidate(ctx)
	return nil
}

func (s *AliasService) load(ctx context.Context) (*alias.Table, error) {
	items, err := s.repo.ListAliases(ctx)
	if err != nil {
		return nil, err
	}
	table := alias.NewTable(items)
	s.logger.DebugContext(ctx, "alias table loaded", "aliases", table.Len())
	return table, nil
}
