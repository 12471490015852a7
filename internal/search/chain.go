// Package search provides live web evidence through a two-step provider
// chain: a scored primary API with a keyless fallback.  Callers receive a
// tagged outcome so degraded results stay distinguishable from failure.
package search

import (
	"context"

	"aftercare-assistant/internal/audit"
)

// Outcome tags which step of the chain produced the result.
type Outcome int

const (
	Failed Outcome = iota
	Primary
	Fallback
)

func (o Outcome) String() string {
	switch o {
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	default:
		return "failed"
	}
}

// fallbackMarker is appended to degraded-mode results so the text itself
// also records the provider downgrade.
const fallbackMarker = "\n\n(Using fallback search engine)"

// Provider is a single search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) (string, error)
}

// Chain tries the primary provider and falls back to the secondary.  Both
// failing yields Failed, which callers must treat as "no web evidence",
// never as a fatal turn error.
type Chain struct {
	primary  Provider
	fallback Provider
	audit    *audit.Log
}

// NewChain constructs the two-step chain.
func NewChain(primary, fallback Provider, auditLog *audit.Log) *Chain {
	return &Chain{primary: primary, fallback: fallback, audit: auditLog}
}

// Search runs the chain.  The returned text is empty exactly when the
// outcome is Failed.
func (c *Chain) Search(ctx context.Context, query string) (string, Outcome) {
	text, err := c.primary.Search(ctx, query)
	if err == nil {
		c.audit.Record("web_search", "search", query, "primary provider succeeded", true,
			map[string]any{"provider": c.primary.Name()})
		return text, Primary
	}
	c.audit.Record("web_search", "search", query, err.Error(), false,
		map[string]any{"provider": c.primary.Name()})

	text, err = c.fallback.Search(ctx, query)
	if err == nil {
		c.audit.Record("web_search", "search", query, "fallback provider succeeded", true,
			map[string]any{"provider": c.fallback.Name()})
		return text + fallbackMarker, Fallback
	}
	c.audit.Record("web_search", "search", query, err.Error(), false,
		map[string]any{"provider": c.fallback.Name()})

	return "", Failed
}
