package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"aftercare-assistant/internal/audit"
)

type stubProvider struct {
	name string
	text string
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func newChain(primary, fallback Provider) *Chain {
	return NewChain(primary, fallback, audit.NewLog(zerolog.Nop(), 100))
}

func TestChainPrimarySuccess(t *testing.T) {
	chain := newChain(
		&stubProvider{name: "primary", text: "primary results"},
		&stubProvider{name: "fallback", text: "fallback results"},
	)

	text, outcome := chain.Search(context.Background(), "ckd research")
	require.Equal(t, Primary, outcome)
	require.Equal(t, "primary results", text)
}

func TestChainFallbackIsMarkedDegraded(t *testing.T) {
	chain := newChain(
		&stubProvider{name: "primary", err: errors.New("no credential")},
		&stubProvider{name: "fallback", text: "fallback results"},
	)

	text, outcome := chain.Search(context.Background(), "ckd research")
	require.Equal(t, Fallback, outcome)
	require.Equal(t, "fallback results"+fallbackMarker, text)
}

func TestChainBothFail(t *testing.T) {
	chain := newChain(
		&stubProvider{name: "primary", err: errors.New("down")},
		&stubProvider{name: "fallback", err: errors.New("also down")},
	)

	text, outcome := chain.Search(context.Background(), "ckd research")
	require.Equal(t, Failed, outcome)
	require.Empty(t, text)
}

func TestTavilyRequiresCredential(t *testing.T) {
	client := NewTavily("")
	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "credential")
}

func TestTavilySearchFormatsResults(t *testing.T) {
	var gotBody tavilyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(tavilyResponse{
			Answer: "SGLT2 inhibitors slow CKD progression.",
			Results: []tavilyResult{
				{Title: "CKD trial", URL: "https://example.org/trial", Content: "Trial summary.", Score: 0.91},
				{Title: "Guideline", URL: "https://example.org/guide", Content: "Guideline text.", Score: 0.42},
			},
		})
	}))
	defer srv.Close()

	client := &Tavily{client: srv.Client(), apiKey: "key", baseURL: srv.URL, maxResults: 3}
	text, err := client.Search(context.Background(), "SGLT2 inhibitors CKD")
	require.NoError(t, err)

	require.Equal(t, "medical research SGLT2 inhibitors CKD", gotBody.Query)
	require.Equal(t, "advanced", gotBody.SearchDepth)
	require.True(t, gotBody.IncludeAnswer)

	require.Contains(t, text, "Summary: SGLT2 inhibitors slow CKD progression.")
	require.Contains(t, text, "1. CKD trial")
	require.Contains(t, text, "Relevance: *** (0.91)")
	require.Contains(t, text, "Relevance: * (0.42)")
}

func TestTavilyEmptyResultsIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(tavilyResponse{})
	}))
	defer srv.Close()

	client := &Tavily{client: srv.Client(), apiKey: "key", baseURL: srv.URL, maxResults: 3}
	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
}

func TestTavilyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := &Tavily{client: srv.Client(), apiKey: "bad", baseURL: srv.URL, maxResults: 3}
	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestDuckDuckGoSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "medical potassium diet", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{
			"Heading":      "Potassium",
			"AbstractText": "Potassium is restricted in renal diets.",
			"AbstractURL":  "https://example.org/potassium",
			"RelatedTopics": []map[string]string{
				{"Text": "Renal diet", "FirstURL": "https://example.org/renal-diet"},
				{"Text": "Hyperkalemia", "FirstURL": "https://example.org/hyperkalemia"},
			},
		})
	}))
	defer srv.Close()

	client := &DuckDuckGo{client: srv.Client(), baseURL: srv.URL, maxResults: 3}
	text, err := client.Search(context.Background(), "potassium diet")
	require.NoError(t, err)
	require.Contains(t, text, "Summary: Potassium is restricted in renal diets.")
	require.Contains(t, text, "1. Renal diet")
	require.Contains(t, text, "2. Hyperkalemia")
}

func TestDuckDuckGoNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	client := &DuckDuckGo{client: srv.Client(), baseURL: srv.URL, maxResults: 3}
	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
}

func TestDuckDuckGoCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"RelatedTopics": []map[string]string{
				{"Text": "one", "FirstURL": "u1"},
				{"Text": "two", "FirstURL": "u2"},
				{"Text": "three", "FirstURL": "u3"},
				{"Text": "four", "FirstURL": "u4"},
			},
		})
	}))
	defer srv.Close()

	client := &DuckDuckGo{client: &http.Client{Timeout: time.Second}, baseURL: srv.URL, maxResults: 2}
	text, err := client.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Contains(t, text, "2. two")
	require.NotContains(t, text, "three")
}
