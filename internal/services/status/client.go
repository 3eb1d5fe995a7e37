package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ClientConfig holds configuration for the HTTP status client
type ClientConfig struct {
	// URL is the server status endpoint
	URL string

	// APIKey authorizes requests; when empty every fetch fails and the
	// poller renders the counters as unknown
	APIKey string

	// HTTPClient overrides the default client, mainly for tests
	HTTPClient *http.Client
}

type httpClient struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPClient creates a client for the game server status API
func NewHTTPClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.URL == "" {
		return nil, ErrEmptyURL
	}

	c := cfg.HTTPClient
	if c == nil {
		c = &http.Client{Timeout: fetchTimeout}
	}

	return &httpClient{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: c,
	}, nil
}

// statusResponse mirrors the API payload. Only the server block is used.
type statusResponse struct {
	Server ServerStatus `json:"server"`
}

func (c *httpClient) GetServerStatus(ctx context.Context) (*ServerStatus, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status API returned %d", resp.StatusCode)
	}

	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	return &payload.Server, nil
}
