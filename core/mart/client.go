// core/mart/client.go
package mart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultHost    = "http://www.ensembl.org"
	DefaultDataset = "hsapiens_gene_ensembl"

	martPath = "/biomart/martservice"
)

// Config identifies the mart dataset and how to reach it. Zero-value fields
// are completed with defaults by NewClient, so tests only need to set Host
// (an httptest server) to take over the whole surface.
type Config struct {
	Host    string
	Dataset string
	Timeout time.Duration // per-request bound; 0 means 2 minutes

	// Pacing between requests. The service throttles aggressive clients,
	// so default to a polite 2 req/s.
	RequestsPerSecond float64
	Burst             int

	HTTPClient *http.Client
}

// Client performs rate-limited queries against one mart dataset.
type Client struct {
	cfg     Config
	httpc   *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	cfg.Host = strings.TrimRight(cfg.Host, "/")
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:     cfg,
		httpc:   httpc,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

func (c *Client) Dataset() string { return c.cfg.Dataset }

// Query resolves one batch: the filter field bound to ids, projected onto
// the requested attributes. The returned Table may hold fewer rows than ids
// (unmatched identifiers) and fewer columns than requested (attributes the
// service omits); both are expected.
func (c *Client) Query(ctx context.Context, filter string, ids, attributes []string) (Table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Table{}, err
	}
	form := url.Values{"query": {buildQuery(c.cfg.Dataset, filter, ids, attributes)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+martPath, strings.NewReader(form.Encode()))
	if err != nil {
		return Table{}, fmt.Errorf("mart: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Table{}, fmt.Errorf("mart: query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Table{}, fmt.Errorf("mart: query: unexpected status %s", resp.Status)
	}
	return parseTSV(resp.Body)
}

// Attributes lists the dataset's attribute names.
func (c *Client) Attributes(ctx context.Context) ([]string, error) {
	return c.catalog(ctx, "attributes")
}

// Filters lists the dataset's filter names.
func (c *Client) Filters(ctx context.Context) ([]string, error) {
	return c.catalog(ctx, "filters")
}

// catalog fetches one of the dataset description listings. The response is
// headerless TSV whose first column is the term name.
func (c *Client) catalog(ctx context.Context, kind string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	q := url.Values{
		"type":          {kind},
		"dataset":       {c.cfg.Dataset},
		"virtualSchema": {"default"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Host+martPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("mart: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mart: list %s: %w", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mart: list %s: unexpected status %s", kind, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mart: list %s: %w", kind, err)
	}
	if strings.HasPrefix(string(body), errorMarker) {
		return nil, fmt.Errorf("mart: list %s: %s", kind, strings.TrimSpace(strings.SplitN(string(body), "\n", 2)[0]))
	}
	var names []string
	for _, line := range strings.Split(string(body), "\n") {
		if line == "" {
			continue
		}
		names = append(names, strings.SplitN(line, "\t", 2)[0])
	}
	return names, nil
}
