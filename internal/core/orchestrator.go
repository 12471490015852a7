// Package core implements the two-handler turn pipeline: a front desk
// that identifies patients and answers administrative questions, and a
// domain expert that answers medical questions from sourced context.
package core

import (
	"context"
	"errors"

	"aftercare-assistant/internal/audit"
)

// Handler processes one turn and returns the updated state.  Handlers
// report their own failures inside the state; an error from Run means
// the turn could not be attempted at all.
type Handler interface {
	Handle(ctx context.Context, state TurnState) TurnState
}

// Orchestrator routes each turn through the front desk and, when the
// turn is flagged medical, forwards it to the domain expert.  The
// expert always ends the turn, so a conversation never loops.
type Orchestrator struct {
	frontDesk Handler
	expert    Handler
	audit     *audit.Log
}

func NewOrchestrator(frontDesk, expert Handler, auditLog *audit.Log) *Orchestrator {
	return &Orchestrator{frontDesk: frontDesk, expert: expert, audit: auditLog}
}

// Run executes one turn.  Prior turn outputs in the incoming state are
// discarded so a reused state cannot leak a stale response.
func (o *Orchestrator) Run(ctx context.Context, state TurnState) (TurnState, error) {
	if err := ctx.Err(); err != nil {
		return state, err
	}
	if o.frontDesk == nil || o.expert == nil {
		return state, errors.New("orchestrator: handlers not configured")
	}

	state.Response = ""
	state.Sources = nil
	state.RouteToExpert = false

	state = o.frontDesk.Handle(ctx, state)
	if !state.RouteToExpert {
		return state, nil
	}

	o.audit.Handoff(HandlerFrontDesk, HandlerExpert, "medical query detected", state.Message)
	state = o.expert.Handle(ctx, state)
	return state, nil
}
