package cellar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Payload is one fetched Cellar resource.
type Payload struct {
	// ID is the Cellar id the payload was fetched for.
	ID string

	// ContentType is the Content-Type header of the response.
	ContentType string

	// Body is the raw response body. Zip payloads hold the archive bytes.
	Body []byte
}

// IsZip reports whether the payload is a zip archive bundling several
// renditions, as Cellar serves for Formex documents.
func (payload *Payload) IsZip() bool {
	return strings.Contains(payload.ContentType, "zip")
}

// Client fetches documents from the Cellar repository with rate limiting
// and content caching.
type Client struct {
	httpClient HTTPClient
	cache      *ContentCache
	baseURL    string
	userAgent  string
	accept     string
	logger     *slog.Logger
}

// NewClient creates a Client from the given configuration. If
// config.HTTPClient is nil, an *http.Client with the configured timeout is
// used; either way the client is wrapped with rate limiting.
func NewClient(config Config) *Client {
	underlying := config.HTTPClient
	if underlying == nil {
		underlying = &http.Client{Timeout: config.Timeout}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	accept := config.Accept
	if accept == "" {
		accept = DefaultAccept
	}

	return &Client{
		httpClient: NewRateLimitedHTTPClient(underlying, config.RateLimit),
		cache:      NewContentCache(config.CacheTTL),
		baseURL:    baseURL,
		userAgent:  userAgent,
		accept:     accept,
		logger:     slog.Default().With("component", "cellar"),
	}
}

// Fetch retrieves the resource for the given Cellar id. Results are
// cached for the configured TTL.
func (client *Client) Fetch(ctx context.Context, id string) (*Payload, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("empty cellar id")
	}

	if cached, found := client.cache.Get(id); found {
		return &cached, nil
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", id, err)
	}
	request.Header.Set("Accept", client.accept)
	request.Header.Set("Accept-Language", "eng")
	request.Header.Set("User-Agent", client.userAgent)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", id, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("cellar returned HTTP %d for %s", response.StatusCode, id)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", id, err)
	}

	payload := Payload{
		ID:          id,
		ContentType: response.Header.Get("Content-Type"),
		Body:        body,
	}
	client.cache.Set(id, payload)
	return &payload, nil
}
