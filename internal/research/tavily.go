package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	tavilyEndpoint = "https://api.tavily.com/search"
	tavilyTimeout  = 30 * time.Second
)

// TavilyProvider implements Provider against the Tavily QnA search API.
type TavilyProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// TavilyOption configures a TavilyProvider.
type TavilyOption func(*TavilyProvider)

// WithTavilyEndpoint overrides the API endpoint, for tests.
func WithTavilyEndpoint(url string) TavilyOption {
	return func(p *TavilyProvider) { p.endpoint = url }
}

// NewTavilyProvider creates a provider for the given API key.
func NewTavilyProvider(apiKey string, opts ...TavilyOption) *TavilyProvider {
	p := &TavilyProvider{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client:   &http.Client{Timeout: tavilyTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

type tavilyResponse struct {
	Answer string `json:"answer"`
}

// Lookup answers one query via Tavily's answer mode. Failures wrap
// ErrUnavailable so callers can degrade instead of aborting.
func (p *TavilyProvider) Lookup(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:        p.apiKey,
		Query:         query,
		SearchDepth:   "advanced",
		IncludeAnswer: true,
		MaxResults:    5,
	})
	if err != nil {
		return "", fmt.Errorf("tavily request marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily search: %w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily search status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("tavily response read: %w", err)
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("tavily response parse: %w", err)
	}
	return parsed.Answer, nil
}
