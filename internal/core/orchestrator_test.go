package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aftercare-assistant/pkg"
)

type scriptedHandler struct {
	name  string
	route bool
	calls int
}

func (s *scriptedHandler) Handle(_ context.Context, state TurnState) TurnState {
	s.calls++
	state.CurrentHandler = s.name
	state.Response = s.name + " reply"
	state.RouteToExpert = s.route
	return state
}

func TestOrchestratorStopsAtFrontDesk(t *testing.T) {
	fd := &scriptedHandler{name: HandlerFrontDesk}
	ex := &scriptedHandler{name: HandlerExpert}
	o := NewOrchestrator(fd, ex, newAuditLog())

	state, err := o.Run(context.Background(), TurnState{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, HandlerFrontDesk, state.CurrentHandler)
	assert.Equal(t, 1, fd.calls)
	assert.Equal(t, 0, ex.calls)
}

func TestOrchestratorForwardsToExpert(t *testing.T) {
	fd := &scriptedHandler{name: HandlerFrontDesk, route: true}
	ex := &scriptedHandler{name: HandlerExpert}
	o := NewOrchestrator(fd, ex, newAuditLog())

	state, err := o.Run(context.Background(), TurnState{Message: "chest pain"})

	require.NoError(t, err)
	assert.Equal(t, HandlerExpert, state.CurrentHandler)
	assert.Equal(t, 1, fd.calls)
	assert.Equal(t, 1, ex.calls)
}

func TestOrchestratorRecordsHandoff(t *testing.T) {
	fd := &scriptedHandler{name: HandlerFrontDesk, route: true}
	ex := &scriptedHandler{name: HandlerExpert}
	auditLog := newAuditLog()
	o := NewOrchestrator(fd, ex, auditLog)

	_, err := o.Run(context.Background(), TurnState{Message: "chest pain"})
	require.NoError(t, err)

	events := auditLog.Recent(10)
	require.NotEmpty(t, events)
	var found bool
	for _, ev := range events {
		if ev.Action == "agent_handoff" {
			found = true
			assert.Contains(t, ev.Input, HandlerFrontDesk)
			assert.Contains(t, ev.Input, HandlerExpert)
		}
	}
	assert.True(t, found, "handoff must be audited")
}

func TestOrchestratorClearsStaleTurnOutputs(t *testing.T) {
	fd := &scriptedHandler{name: HandlerFrontDesk}
	o := NewOrchestrator(fd, &scriptedHandler{name: HandlerExpert}, newAuditLog())

	stale := TurnState{
		Message:  "hello",
		Response: "old response",
		Sources:  []pkg.Source{{Kind: pkg.SourceWeb}},
	}
	state, err := o.Run(context.Background(), stale)

	require.NoError(t, err)
	assert.Equal(t, HandlerFrontDesk+" reply", state.Response)
	assert.Empty(t, state.Sources)
}

func TestOrchestratorCancelledContext(t *testing.T) {
	o := NewOrchestrator(&scriptedHandler{}, &scriptedHandler{}, newAuditLog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Run(ctx, TurnState{Message: "hello"})
	assert.Error(t, err)
}

func TestOrchestratorMissingHandlers(t *testing.T) {
	o := NewOrchestrator(nil, nil, newAuditLog())

	_, err := o.Run(context.Background(), TurnState{Message: "hello"})
	assert.Error(t, err)
}
