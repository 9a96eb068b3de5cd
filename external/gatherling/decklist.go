package gatherling

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
)

// FetchDecklists downloads the plain-text export of each deck. Ids that fail
// to download are logged and left out of the result; only pool setup and
// context cancellation fail the call.
func (c *Client) FetchDecklists(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(min(c.decklistWorkers, len(ids)))
	if err != nil {
		return nil, fmt.Errorf("create decklist worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, id := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			text, err := c.fetchDecklist(ctx, id)
			if err != nil {
				c.logger.WarnContext(ctx, "decklist download failed", "deck_id", id, "error", err)
				return
			}
			mu.Lock()
			out[id] = text
			mu.Unlock()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit decklist download: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetchDecklist(ctx context.Context, id int64) (string, error) {
	raw, err := c.guarded(ctx, request{
		method:      http.MethodPost,
		url:         c.baseURL + "/deckdl.php",
		contentType: "application/x-www-form-urlencoded",
		body:        decklistForm(id),
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decklistForm(id int64) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("id=")
	_, _ = buf.WriteString(url.QueryEscape(strconv.FormatInt(id, 10)))
	return append([]byte(nil), buf.B...)
}
