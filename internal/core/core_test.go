package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"aftercare-assistant/internal/audit"
	"aftercare-assistant/internal/llm"
	"aftercare-assistant/internal/patient"
	"aftercare-assistant/internal/rag"
	"aftercare-assistant/internal/search"
	"aftercare-assistant/pkg"
)

// Shared fakes for the handler tests.

type fakeLLM struct {
	reply string
	err   error
	// last records the messages of the most recent call.
	last []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.last = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

type fakeLookup struct {
	result patient.Lookup
	called bool
}

func (f *fakeLookup) Lookup(context.Context, string) patient.Lookup {
	f.called = true
	return f.result
}

type fakeRetriever struct {
	result rag.Result
	called bool
}

func (f *fakeRetriever) Query(context.Context, string) rag.Result {
	f.called = true
	return f.result
}

type fakeSearcher struct {
	text    string
	outcome search.Outcome
	called  bool
}

func (f *fakeSearcher) Search(context.Context, string) (string, search.Outcome) {
	f.called = true
	return f.text, f.outcome
}

type fixedClassifier struct{ route bool }

func (f fixedClassifier) RequiresExpert(string, string) bool { return f.route }

func newAuditLog() *audit.Log {
	return audit.NewLog(zerolog.Nop(), 100)
}

func testRecord(name string) pkg.PatientRecord {
	return pkg.PatientRecord{
		Name:             name,
		DateOfBirth:      "1958-03-14",
		DischargeDate:    "2025-06-01",
		PrimaryDiagnosis: "Chronic kidney disease, stage 3",
		Medications:      []string{"Lisinopril 10mg daily"},
		WarningSigns:     "Swelling, shortness of breath",
		FollowUp:         "Nephrology clinic in 2 weeks",
	}
}
