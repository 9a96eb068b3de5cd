package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

// BatchRunner runs one ingestion batch.
type BatchRunner interface {
	RunBatch(ctx context.Context) (usecase.BatchReport, error)
}

type CompetitionReader interface {
	GetByName(ctx context.Context, name string) (usecase.CompetitionDetails, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	batches      BatchRunner
	competitions CompetitionReader
	store        Pinger
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(batches BatchRunner, competitions CompetitionReader, store Pinger, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		batches:      batches,
		competitions: competitions,
		store:        store,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	_, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(w, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Readyz")
	defer span.End()

	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.store.Ping(pingCtx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "error", err)
			writeError(w, fmt.Errorf("%w: database ping failed", usecase.ErrDependencyUnavailable))
			return
		}
	}

	writeSuccess(w, map[string]string{"status": "ready"})
}

func (h *Handler) RunScrapeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunScrapeJob")
	defer span.End()

	if h.batches == nil {
		writeError(w, fmt.Errorf("%w: ingestion is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.batches.RunBatch(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run scrape job failed", "error_kind", usecase.ErrorKind(err), "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, batchReportToDTO(report))
}

type competitionPathParams struct {
	Name string `validate:"required,max=200"`
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetCompetition")
	defer span.End()

	params := competitionPathParams{Name: strings.TrimSpace(r.PathValue("name"))}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(w, err)
		return
	}

	details, err := h.competitions.GetByName(ctx, params.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition", params.Name, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, competitionToDTO(details))
}
