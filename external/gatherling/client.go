package gatherling

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
	"github.com/riskibarqy/decksite-ingest/internal/platform/resilience"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

const (
	DefaultBaseURL         = "https://gatherling.com"
	defaultTimeout         = 20 * time.Second
	defaultRetryBackoff    = time.Second
	defaultDecklistWorkers = 4
	maxResponseBytes       = 6 << 20
)

var errTransient = crerr.New("gatherling transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration
	DecklistWorkers int
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client talks to one registered gatherling instance.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	maxRetries      int
	retryBackoff    time.Duration
	decklistWorkers int
	logger          *logging.Logger
	breaker         *resilience.Breaker
	flight          singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	workers := cfg.DecklistWorkers
	if workers < 1 {
		workers = defaultDecklistWorkers
	}

	return &Client{
		httpClient:      httpClient,
		baseURL:         baseURL,
		maxRetries:      max(cfg.MaxRetries, 0),
		retryBackoff:    backoff,
		decklistWorkers: workers,
		logger:          logger,
		breaker:         resilience.NewBreaker("gatherling", cfg.CircuitBreaker, isCircuitFailure),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchRecentEvents returns the raw entries of the recent-events feed sorted
// by event name. Only the series is extracted here; everything else is left
// to DecodeEvent so one malformed event cannot fail the whole batch.
func (c *Client) FetchRecentEvents(ctx context.Context) ([]tournament.RawEvent, error) {
	raw, err := c.get(ctx, "/api.php", url.Values{"action": []string{"recent_events"}})
	if err != nil {
		return nil, fmt.Errorf("fetch recent events: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		return []tournament.RawEvent{}, nil
	}

	entries := map[string]json.RawMessage{}
	if err := sonic.Unmarshal(trimmed, &entries); err != nil {
		return nil, usecase.NewSchemaError("", "decode recent events envelope: %v", err)
	}

	out := make([]tournament.RawEvent, 0, len(entries))
	for name, payload := range entries {
		event := tournament.RawEvent{Name: name, Payload: []byte(payload)}
		var probe seriesProbe
		if err := sonic.Unmarshal(payload, &probe); err != nil {
			c.logger.WarnContext(ctx, "cannot read series of feed event", "event", name, "error", err)
		} else {
			event.Series = strings.TrimSpace(probe.Series)
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *Client) DecodeEvent(raw tournament.RawEvent) (tournament.Event, error) {
	return DecodeEvent(raw)
}

func (c *Client) EventReportURL(name string) string {
	if isAbsolute(name) {
		return name
	}
	return c.baseURL + "/eventreport.php?event=" + url.QueryEscape(name)
}

func (c *Client) DeckURL(id int64) string {
	return c.baseURL + "/deck.php?mode=view&id=" + strconv.FormatInt(id, 10)
}

// ResolveURL joins a site-relative href onto the base URL.
func (c *Client) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isAbsolute(href) {
		return href
	}
	return c.baseURL + "/" + strings.TrimLeft(href, "/")
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.guarded(ctx, request{method: http.MethodGet, url: fullURL})
	})
	if err != nil {
		return nil, err
	}
	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

type request struct {
	method      string
	url         string
	contentType string
	body        []byte
}

func (c *Client) guarded(ctx context.Context, req request) ([]byte, error) {
	var raw []byte
	err := c.breaker.Do(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, req)
		return reqErr
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "gatherling circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: gatherling is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, call request) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var body io.Reader
		if call.body != nil {
			body = bytes.NewReader(call.body)
		}
		req, err := http.NewRequestWithContext(ctx, call.method, call.url, body)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json, text/plain")
		if call.contentType != "" {
			req.Header.Set("content-type", call.contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: gatherling status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("gatherling status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("gatherling request failed")
	}
	c.logger.WarnContext(ctx, "gatherling request failed", "method", call.method, "url", call.url, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func isAbsolute(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
