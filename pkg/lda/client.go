package lda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/vigil-mini/backend/internal/util"
	"github.com/vigil-mini/backend/pkg/logger"
)

// DefaultBaseURL is the filings endpoint of the Senate LDA REST API.
const DefaultBaseURL = "https://lda.senate.gov/api/v1/filings/"

const maxBodyBytes = 32 << 20

var (
	ErrMissingAPIKey = errors.New("missing LDA_API_KEY environment variable")
	ErrTimeout       = errors.New("senate LDA API timed out")
)

// StatusError is returned when the upstream answers with a non-2xx status.
// Body holds the upstream response text so it can be passed through.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("senate LDA API returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the same request may succeed later.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client fetches filing pages from the Senate LDA API.
//
// Outbound requests are throttled by a token bucket and bounded by a
// semaphore, so a burst of fanned-out searches cannot exceed the upstream
// rate limit. A Client is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string

	httpClient *http.Client
	limiter    *rate.Limiter
	reqLock    *semaphore.Weighted

	maxRetries   int
	retryBackoff time.Duration

	cache *cache.Cache
}

// NewClientParams contains configuration options for creating a new Client.
//
// MaxRetries is the total number of attempts for retryable failures (429 and
// 5xx); values below 1 mean a single attempt. A zero CacheTTL disables the
// in-memory response cache.
type NewClientParams struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	RequestsPerSecond     float64
	MaxConcurrentRequests int64
	MaxRetries            int
	RetryBackoff          time.Duration

	CacheTTL time.Duration
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewClient creates a new LDA client. A missing API key is not an error here;
// requests fail with ErrMissingAPIKey instead so the server can still start.
func NewClient(params NewClientParams) (*Client, error) {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid LDA base url %q: %w", baseURL, err)
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if params.RequestsPerSecond > 0 {
		limit = rate.Limit(params.RequestsPerSecond)
		burst = max(1, int(params.RequestsPerSecond))
	}

	parallel := params.MaxConcurrentRequests
	if parallel <= 0 {
		parallel = 3
	}

	headers := map[string]string{"Accept": "application/json"}
	if params.APIKey != "" {
		headers["Authorization"] = "Token " + params.APIKey
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  params.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &headerTransport{
				headers: headers,
				rt:      http.DefaultTransport,
			},
		},
		limiter:      rate.NewLimiter(limit, burst),
		reqLock:      semaphore.NewWeighted(parallel),
		maxRetries:   max(1, params.MaxRetries),
		retryBackoff: params.RetryBackoff,
	}
	if params.CacheTTL > 0 {
		c.cache = cache.New(params.CacheTTL, 2*params.CacheTTL)
	}

	return c, nil
}

// fetch returns the raw body of one filings page for the given query.
func (c *Client) fetch(ctx context.Context, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	key := query.Encode()
	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			logger.Debug("[LDA] Cache hit", "query", key)
			return body.([]byte), nil
		}
	}

	body, err := util.RetryWithContext(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) ([]byte, error) {
		body, err := c.do(ctx, key)
		if err == nil {
			return body, nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Retryable() {
			logger.Warn("[LDA] Retryable upstream status", "status", statusErr.StatusCode, "query", key)
			return nil, err
		}
		return nil, util.Permanent(err)
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetDefault(key, body)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, rawQuery string) ([]byte, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL
	if rawQuery != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug("[LDA] Response", "status", resp.StatusCode, "bytes", len(body), "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func pageQuery(pageSize int, params map[string]string) url.Values {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(pageSize))
	for k, v := range params {
		if k == "" || k == "page_size" {
			continue
		}
		query.Set(k, v)
	}
	return query
}
