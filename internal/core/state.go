package core

import "aftercare-assistant/pkg"

// Handler names as they appear in responses and audit entries.
const (
	HandlerFrontDesk = "front_desk"
	HandlerExpert    = "domain_expert"
)

// TurnState carries everything one conversational turn reads and
// produces.  Handlers receive it by value and return the mutated copy,
// so a handler can never corrupt state on a path that errors out.
type TurnState struct {
	SessionID   string
	PatientName string
	PatientData *pkg.PatientRecord

	Message string
	History []pkg.HistoryMessage

	// CurrentHandler names whichever handler produced Response.
	CurrentHandler string

	// RouteToExpert is set by the front desk and consumed (and
	// cleared) by the orchestrator when it forwards the turn.
	RouteToExpert bool

	Response string
	Sources  []pkg.Source
}
