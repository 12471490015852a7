// Package rag answers questions from a precomputed chunk index of the
// reference corpus.  The index is built offline; this package only loads
// it, searches it, and synthesizes cited answers.
package rag

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/philippgille/chromem-go"

	"aftercare-assistant/internal/audit"
	"aftercare-assistant/internal/llm"
)

const (
	topK         = 4
	excerptLimit = 150
)

// SourceChunk identifies one retrieved chunk that contributed to an answer.
type SourceChunk struct {
	Page     int
	Document string
	Excerpt  string
}

// Result is the outcome of one retrieval query.  Failures are reported
// in-band: OK false with Err set.  Results are never persisted.
type Result struct {
	OK      bool
	Answer  string
	Sources []SourceChunk
	Err     string
}

// Engine performs similarity search plus answer synthesis.  It is built
// once at startup and is read-only afterwards, safe for concurrent use.
type Engine struct {
	collection *chromem.Collection
	llm        llm.Client
	audit      *audit.Log
}

// EmbedderFrom adapts an llm.Client to the embedding function the vector
// store expects.
func EmbedderFrom(client llm.Client) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return client.Embed(ctx, text)
	}
}

// Open loads the persisted chunk index from disk.  The collection must
// already exist; building it is the ingestion pipeline's job.
func Open(path, collection string, embed chromem.EmbeddingFunc, client llm.Client, auditLog *audit.Log) (*Engine, error) {
	store, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store %q: %w", path, err)
	}
	col := store.GetCollection(collection, embed)
	if col == nil {
		return nil, fmt.Errorf("vector store %q has no collection %q", path, collection)
	}
	auditLog.Record("retrieval_engine", "initialize", collection,
		fmt.Sprintf("loaded %d chunks", col.Count()), true, nil)
	return New(col, client, auditLog), nil
}

// New constructs an Engine over an already-loaded collection.
func New(col *chromem.Collection, client llm.Client, auditLog *audit.Log) *Engine {
	return &Engine{collection: col, llm: client, audit: auditLog}
}

// Query runs a top-k similarity search and synthesizes a cited answer from
// the retrieved chunks.  Every failure mode (empty index, embedding
// failure, model failure) is reported in the Result, never as an error;
// the caller degrades to other context sources.
func (e *Engine) Query(ctx context.Context, question string) Result {
	k := topK
	if count := e.collection.Count(); count < k {
		k = count
	}
	if k == 0 {
		return e.fail(question, "chunk index is empty")
	}

	hits, err := e.collection.Query(ctx, question, k, nil, nil)
	if err != nil {
		return e.fail(question, fmt.Sprintf("similarity search failed: %v", err))
	}
	if len(hits) == 0 {
		return e.fail(question, "similarity search returned no chunks")
	}

	answer, err := e.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: synthesisPrompt},
		{Role: "user", Content: buildSynthesisInput(hits, question)},
	})
	if err != nil {
		return e.fail(question, fmt.Sprintf("answer synthesis failed: %v", err))
	}

	sources := make([]SourceChunk, 0, len(hits))
	for _, hit := range hits {
		sources = append(sources, SourceChunk{
			Page:     pageOf(hit.Metadata),
			Document: documentOf(hit.Metadata),
			Excerpt:  truncate(hit.Content, excerptLimit),
		})
	}

	e.audit.Record("retrieval_engine", "query", question,
		fmt.Sprintf("answered with %d sources", len(sources)), true, nil)
	return Result{OK: true, Answer: answer, Sources: sources}
}

// Search exposes the raw similarity hits without synthesis, for debugging
// and index inspection.
func (e *Engine) Search(ctx context.Context, query string, k int) ([]chromem.Result, error) {
	if count := e.collection.Count(); k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}
	return e.collection.Query(ctx, query, k, nil, nil)
}

func (e *Engine) fail(question, reason string) Result {
	e.audit.Record("retrieval_engine", "query", question, reason, false, nil)
	return Result{OK: false, Err: reason}
}

func buildSynthesisInput(hits []chromem.Result, question string) string {
	var b strings.Builder
	b.WriteString("Context from the reference corpus:\n\n")
	for i, hit := range hits {
		fmt.Fprintf(&b, "[%d] (%s, page %d)\n%s\n\n", i+1, documentOf(hit.Metadata), pageOf(hit.Metadata), hit.Content)
	}
	b.WriteString("Question: " + question)
	return b.String()
}

func pageOf(metadata map[string]string) int {
	page, err := strconv.Atoi(metadata["page"])
	if err != nil {
		return 0
	}
	return page
}

func documentOf(metadata map[string]string) string {
	if doc := metadata["document"]; doc != "" {
		return doc
	}
	return "unknown"
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
