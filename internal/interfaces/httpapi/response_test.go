package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

func TestWriteSuccess_SetsDataOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, map[string]string{"status": "ok"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, googleAPIVersion, body.APIVersion)
	assert.Equal(t, "ok", body.Data["status"])
	assert.Nil(t, body.Error)
}

func TestWriteError_Classes(t *testing.T) {
	tests := []struct {
		err        error
		wantCode   int
		wantStatus string
	}{
		{fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: x", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: x", usecase.ErrUnauthorized), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{usecase.ErrBatchRunning, http.StatusConflict, "ABORTED"},
		{fmt.Errorf("%w: x", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{fmt.Errorf("fetch: %w", usecase.NewSchemaError("", "bad envelope")), http.StatusBadGateway, "UNAVAILABLE"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.wantStatus+"/"+http.StatusText(tt.wantCode), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			require.Equal(t, tt.wantCode, rec.Code)
			body := decodeEnvelope(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantStatus, body.Error.Status)
			assert.Nil(t, body.Data)
		})
	}
}

func TestWriteError_HidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "internal server error")
}
