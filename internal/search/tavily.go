package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	tavilyBaseURL    = "https://api.tavily.com"
	searchMaxResults = 3
)

// Tavily is the primary web search provider.  Queries are biased toward
// medical material and results carry a relevance indicator derived from
// the provider score.
type Tavily struct {
	client     *http.Client
	apiKey     string
	baseURL    string
	maxResults int
}

// NewTavily constructs the primary provider.  An empty apiKey is allowed;
// every search then fails over to the fallback provider.
func NewTavily(apiKey string) *Tavily {
	return &Tavily{
		client:     &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    tavilyBaseURL,
		maxResults: searchMaxResults,
	}
}

func (t *Tavily) Name() string { return "tavily" }

// tavilyRequest is the request format for the Tavily Search API.
type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

// tavilyResponse is the response from the Tavily Search API.
type tavilyResponse struct {
	Answer  string         `json:"answer"`
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Search queries Tavily with the medical-research query rewrite and
// formats the ranked results.  A missing credential, transport error, or
// empty result set all count as provider failure.
func (t *Tavily) Search(ctx context.Context, query string) (string, error) {
	if t.apiKey == "" {
		return "", errors.New("tavily: no API credential configured")
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:        t.apiKey,
		Query:         "medical research " + query,
		SearchDepth:   "advanced",
		IncludeAnswer: true,
		MaxResults:    t.maxResults,
	})
	if err != nil {
		return "", fmt.Errorf("tavily: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("tavily: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("tavily: decode response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", errors.New("tavily: no results")
	}

	return formatTavily(parsed), nil
}

func formatTavily(resp tavilyResponse) string {
	var b strings.Builder
	if resp.Answer != "" {
		b.WriteString("Summary: " + resp.Answer + "\n\n")
	}
	b.WriteString("Sources:\n")
	for i, result := range resp.Results {
		fmt.Fprintf(&b, "\n%d. %s\n   URL: %s\n   Relevance: %s (%.2f)\n   %s\n",
			i+1, result.Title, result.URL, relevanceStars(result.Score), result.Score, result.Content)
	}
	return b.String()
}

// relevanceStars converts a provider score into a coarse indicator.
func relevanceStars(score float64) string {
	switch {
	case score > 0.8:
		return "***"
	case score > 0.5:
		return "**"
	default:
		return "*"
	}
}
