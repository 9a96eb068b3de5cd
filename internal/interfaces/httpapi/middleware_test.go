package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func TestShouldTraceRequest(t *testing.T) {
	for path, want := range map[string]bool{
		"/healthz":                 false,
		" /READYZ ":                false,
		"/livez":                   false,
		"/v1/competitions/x":       true,
		"/v1/internal/jobs/scrape": true,
		"/":                        true,
	} {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestCORS(t *testing.T) {
	const site = "https://pennydreadfulmagic.com"

	tests := []struct {
		name      string
		allowed   []string
		method    string
		origin    string
		wantAllow string
		wantCode  int
	}{
		{name: "listed origin", allowed: []string{" " + site}, method: http.MethodGet, origin: site, wantAllow: site, wantCode: http.StatusOK},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: site, wantAllow: "*", wantCode: http.StatusNoContent},
		{name: "unlisted origin", allowed: []string{"https://other.example"}, method: http.MethodGet, origin: site, wantCode: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodOptions, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/competitions/x", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllow == site {
				assert.Equal(t, "Origin", rec.Header().Get("Vary"))
			}
		})
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		header   string
		wantCode int
	}{
		{name: "matching token", token: "s3cret", header: " s3cret ", wantCode: http.StatusOK},
		{name: "wrong token", token: "s3cret", header: "guess", wantCode: http.StatusUnauthorized},
		{name: "missing header", token: "s3cret", wantCode: http.StatusUnauthorized},
		{name: "not configured", token: " ", header: "anything", wantCode: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/scrape", nil)
			if tt.header != "" {
				req.Header.Set(internalJobTokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.token, okHandler()).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	h := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/competitions/x", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"INTERNAL"`)
	assert.NotContains(t, rec.Body.String(), "kaboom")
}

func TestRecoverPanic_RethrowsAbort(t *testing.T) {
	h := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestResponseMeter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	meter := &responseMeter{ResponseWriter: rec}
	_, err := meter.Write([]byte("hello"))
	require.NoError(t, err)
	meter.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, meter.status)
	assert.Equal(t, 5, meter.bytes)
}
