package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const duckDuckGoBaseURL = "https://api.duckduckgo.com"

// DuckDuckGo is the keyless fallback provider, backed by the Instant
// Answer API.  Result quality is lower than the primary provider; the
// chain marks its output as degraded.
type DuckDuckGo struct {
	client     *http.Client
	baseURL    string
	maxResults int
}

// NewDuckDuckGo constructs the fallback provider.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:     &http.Client{Timeout: 30 * time.Second},
		baseURL:    duckDuckGoBaseURL,
		maxResults: searchMaxResults,
	}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

type duckDuckGoResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// Search queries the Instant Answer API with the same medical query bias
// as the primary provider.
func (d *DuckDuckGo) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", "medical "+query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("duckduckgo: build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("duckduckgo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("duckduckgo: status %d", resp.StatusCode)
	}

	var parsed duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("duckduckgo: decode response: %w", err)
	}

	out := formatDuckDuckGo(parsed, d.maxResults)
	if out == "" {
		return "", errors.New("duckduckgo: no results")
	}
	return out, nil
}

func formatDuckDuckGo(resp duckDuckGoResponse, maxResults int) string {
	var b strings.Builder
	if resp.AbstractText != "" {
		b.WriteString("Summary: " + resp.AbstractText + "\n")
		if resp.AbstractURL != "" {
			b.WriteString("   URL: " + resp.AbstractURL + "\n")
		}
		b.WriteString("\n")
	}

	count := 0
	for _, topic := range resp.RelatedTopics {
		if topic.Text == "" || count >= maxResults {
			continue
		}
		if count == 0 {
			b.WriteString("Sources:\n")
		}
		count++
		fmt.Fprintf(&b, "\n%d. %s\n   URL: %s\n", count, topic.Text, topic.FirstURL)
	}

	return strings.TrimRight(b.String(), "\n")
}
