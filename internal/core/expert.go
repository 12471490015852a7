package core

import (
	"context"

	"aftercare-assistant/internal/audit"
	"aftercare-assistant/internal/intent"
	"aftercare-assistant/internal/llm"
	"aftercare-assistant/internal/rag"
	"aftercare-assistant/internal/search"
)

// Retriever answers questions from the precomputed reference index.
type Retriever interface {
	Query(ctx context.Context, question string) rag.Result
}

// Searcher runs a live web search and reports which engine served it.
type Searcher interface {
	Search(ctx context.Context, query string) (string, search.Outcome)
}

// Expert answers medical questions from the reference index, the
// patient's own record, and, when needed, live web search.
type Expert struct {
	llm    llm.Client
	engine Retriever
	search Searcher
	audit  *audit.Log
}

func NewExpert(client llm.Client, engine Retriever, searcher Searcher, auditLog *audit.Log) *Expert {
	return &Expert{llm: client, engine: engine, search: searcher, audit: auditLog}
}

// Handle gathers context, asks the model, and attaches sources and the
// educational disclaimer.  The expert always terminates the turn.
func (e *Expert) Handle(ctx context.Context, state TurnState) TurnState {
	state.CurrentHandler = HandlerExpert
	state.RouteToExpert = false

	var ragResult rag.Result
	if e.engine != nil {
		ragResult = e.engine.Query(ctx, state.Message)
	}

	// Go to the web when the index had nothing usable, or when the
	// question asks about recent research the index cannot cover.
	var webText string
	webOutcome := search.Failed
	if e.search != nil && (!ragResult.OK || intent.NeedsWebSearch(state.Message)) {
		webText, webOutcome = e.search.Search(ctx, state.Message)
	}

	reply, sources, err := e.compose(ctx, state, ragResult, webText)
	if err != nil {
		e.audit.Record(HandlerExpert, "chat_error", state.Message, err.Error(), false, nil)
		reply = expertFallbackReply
		sources = nil
	}

	state.Response = withDisclaimer(reply)
	state.Sources = sources

	e.audit.Record(HandlerExpert, "handle_turn", state.Message, state.Response, err == nil, map[string]any{
		"session_id":   state.SessionID,
		"rag_hit":      ragResult.OK,
		"web_outcome":  webOutcome.String(),
		"source_count": len(sources),
	})
	return state
}
