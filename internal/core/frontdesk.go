package core

import (
	"context"
	"fmt"
	"strings"

	"aftercare-assistant/internal/audit"
	"aftercare-assistant/internal/intent"
	"aftercare-assistant/internal/llm"
	"aftercare-assistant/internal/patient"
)

// PatientLookup resolves a free-text name to a discharge record.
type PatientLookup interface {
	Lookup(ctx context.Context, name string) patient.Lookup
}

// historyWindow is how many prior turns the front desk includes when
// prompting the model.
const historyWindow = 3

// FrontDesk handles greetings, identification and administrative
// questions, and flags turns that need the domain expert.
type FrontDesk struct {
	llm        llm.Client
	patients   PatientLookup
	classifier intent.Classifier
	audit      *audit.Log
}

func NewFrontDesk(client llm.Client, patients PatientLookup, classifier intent.Classifier, auditLog *audit.Log) *FrontDesk {
	return &FrontDesk{llm: client, patients: patients, classifier: classifier, audit: auditLog}
}

// Handle resolves the patient record when a name is known but the
// record is not yet loaded, drafts a reply, and classifies the turn.
func (f *FrontDesk) Handle(ctx context.Context, state TurnState) TurnState {
	state.CurrentHandler = HandlerFrontDesk

	var lookupNote string
	if state.PatientData == nil && state.PatientName != "" {
		result := f.patients.Lookup(ctx, state.PatientName)
		switch result.Outcome {
		case patient.Found:
			state.PatientData = result.Record
		case patient.Ambiguous:
			lookupNote = fmt.Sprintf(
				"Multiple patients match the name %q: %s. Ask which one they are before sharing any record details.",
				state.PatientName, strings.Join(result.Candidates, ", "))
		case patient.NotFound:
			lookupNote = fmt.Sprintf(
				"No discharge record was found for %q. Let them know and suggest they check the spelling or call the clinic.",
				state.PatientName)
		case patient.Failed:
			lookupNote = "The patient record system is unavailable right now. Apologize and offer to help with general questions."
		}
	}

	messages := f.buildMessages(state, lookupNote)

	reply, err := f.llm.Chat(ctx, messages)
	if err != nil {
		f.audit.Record(HandlerFrontDesk, "chat_error", state.Message, err.Error(), false, nil)
		reply = frontDeskFallbackReply
	}

	state.Response = reply
	state.RouteToExpert = f.classifier.RequiresExpert(state.Message, reply)

	f.audit.Record(HandlerFrontDesk, "handle_turn", state.Message, reply, err == nil, map[string]any{
		"session_id":      state.SessionID,
		"route_to_expert": state.RouteToExpert,
	})
	return state
}

func (f *FrontDesk) buildMessages(state TurnState, lookupNote string) []llm.Message {
	system := frontDeskSystemPrompt
	if state.PatientData != nil {
		system += "\n\nPatient record:\n" + patient.Summary(*state.PatientData)
	}
	if lookupNote != "" {
		system += "\n\nNote: " + lookupNote
	}

	messages := []llm.Message{{Role: "system", Content: system}}
	history := state.History
	if len(history) > historyWindow*2 {
		history = history[len(history)-historyWindow*2:]
	}
	for _, h := range history {
		messages = append(messages, llm.Message{Role: h.Role, Content: h.Content})
	}
	return append(messages, llm.Message{Role: "user", Content: state.Message})
}
