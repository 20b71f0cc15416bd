package ukleg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is the default User-Agent header sent with
// legislation.gov.uk requests.
const DefaultUserAgent = "legihtml-fetcher/1.0"

// DefaultRequestInterval is the default minimum interval between HTTP
// requests to legislation.gov.uk.
const DefaultRequestInterval = 1 * time.Second

// DefaultCacheTTL is the default time-to-live for cached document bytes.
const DefaultCacheTTL = 1 * time.Hour

// maxDocumentSize caps a fetched document at 64 MiB; CLML documents are
// bounded by the size of a piece of legislation and never approach this.
const maxDocumentSize = 64 << 20

// Config holds configuration for a Client.
type Config struct {
	// RequestInterval is the minimum interval between HTTP requests.
	// Default: 1 second.
	RequestInterval time.Duration

	// CacheTTL is the time-to-live for cached document bytes.
	// Default: 1 hour.
	CacheTTL time.Duration

	// HTTPClient is the underlying HTTP client. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client

	// UserAgent is the User-Agent header sent with requests.
	// Default: "legihtml-fetcher/1.0".
	UserAgent string

	// Logger receives debug traces. Default: a nop logger.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RequestInterval: DefaultRequestInterval,
		CacheTTL:        DefaultCacheTTL,
	}
}

// Client fetches CLML documents from legislation.gov.uk with request pacing
// and response caching.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *documentCache
	userAgent  string
	log        *zap.Logger
}

// NewClient creates a Client from config, applying defaults for zero fields.
func NewClient(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	interval := config.RequestInterval
	if interval <= 0 {
		interval = DefaultRequestInterval
	}
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		cache:      newDocumentCache(ttl),
		userAgent:  userAgent,
		log:        log,
	}
}

// FetchDocument retrieves the CLML XML bytes for the given document,
// serving from cache when possible. The returned bytes are suitable for
// clml.Parse.
func (client *Client) FetchDocument(ctx context.Context, id DocumentID) ([]byte, error) {
	url := id.DataXMLURL()

	if data, found := client.cache.Get(url); found {
		client.log.Debug("document cache hit", zap.String("url", url))
		return data, nil
	}

	if err := client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait interrupted: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set("Accept", "application/xml")

	client.log.Debug("fetching document", zap.String("url", url))
	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("document not found at %s (HTTP %d)", url, response.StatusCode)
	}
	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("legislation.gov.uk returned HTTP %d for %s", response.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read document body from %s: %w", url, err)
	}

	client.cache.Set(url, data)
	return data, nil
}
