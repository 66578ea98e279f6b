package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"lycans-tracker/internal/config"
	"lycans-tracker/internal/constants"
	"lycans-tracker/internal/domain"

	"github.com/valyala/fasthttp"
)

// ExportClient pulls the community game-log export: a JSON dump of
// completed games, optionally accompanied by a roster mapping display
// names to stable player ids.
type ExportClient struct {
	baseURL string
	client  *fasthttp.Client

	cacheMu sync.RWMutex
	cache   map[string]cacheEntry
}

type cacheEntry struct {
	body      []byte
	fetchedAt time.Time
}

type RosterEntry struct {
	StableID string `json:"stableId"`
	Name     string `json:"name"`
}

func NewExportClient(cfg *config.Config) *ExportClient {
	return &ExportClient{
		baseURL: strings.TrimRight(cfg.ExportBaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		cache: map[string]cacheEntry{},
	}
}

// Enabled reports whether an export endpoint is configured at all;
// without one the tracker still works on POSTed batches.
func (c *ExportClient) Enabled() bool {
	return c.baseURL != ""
}

func (c *ExportClient) GetGames(ctx context.Context) ([]domain.GameRecord, error) {
	body, err := c.fetch(ctx, c.baseURL+"/games.json")
	if err != nil {
		return nil, err
	}

	var games []domain.GameRecord
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games export: %w", err)
	}
	return games, nil
}

func (c *ExportClient) GetRoster(ctx context.Context) ([]RosterEntry, error) {
	body, err := c.fetch(ctx, c.baseURL+"/players.json")
	if err != nil {
		return nil, err
	}

	var roster []RosterEntry
	if err := json.Unmarshal(body, &roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster export: %w", err)
	}
	return roster, nil
}

func (c *ExportClient) fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.cached(url); ok {
		return body, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("export request failed: %w", err)
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("export request failed: %w", err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("export request returned status %d", resp.StatusCode())
	}

	body := append([]byte(nil), resp.Body()...)

	c.cacheMu.Lock()
	c.cache[url] = cacheEntry{body: body, fetchedAt: time.Now()}
	c.cacheMu.Unlock()

	return body, nil
}

func (c *ExportClient) cached(url string) ([]byte, bool) {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()

	entry, ok := c.cache[url]
	if !ok || time.Since(entry.fetchedAt) > constants.ExportCacheTTL {
		return nil, false
	}
	return entry.body, true
}
