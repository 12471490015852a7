// Package patient resolves discharge records by name and renders them for
// language-model context.  Every lookup outcome is a structured result;
// storage failures never escape this boundary as errors.
package patient

import (
	"context"
	"fmt"
	"strings"

	"aftercare-assistant/internal/audit"
	"aftercare-assistant/pkg"
)

// Store is the slice of the patient store the provider needs.
type Store interface {
	SearchByName(ctx context.Context, name string) ([]pkg.PatientRecord, error)
}

// Outcome tags the result of a lookup.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	Ambiguous
	Failed
)

// Lookup is the structured result of resolving a patient name.  Record is
// set only for Found; Candidates only for Ambiguous; Err only for Failed.
type Lookup struct {
	Outcome    Outcome
	Record     *pkg.PatientRecord
	Candidates []string
	Err        string
}

// Provider performs case-insensitive substring lookups against the store.
type Provider struct {
	store Store
	audit *audit.Log
}

// NewProvider constructs a Provider over the given store.
func NewProvider(store Store, auditLog *audit.Log) *Provider {
	return &Provider{store: store, audit: auditLog}
}

// Lookup resolves a patient name.  More than one match is reported as
// Ambiguous with every candidate name; the caller must ask the user to be
// more specific rather than guess.
func (p *Provider) Lookup(ctx context.Context, name string) Lookup {
	name = strings.TrimSpace(name)
	if name == "" {
		return Lookup{Outcome: NotFound}
	}

	records, err := p.store.SearchByName(ctx, name)
	if err != nil {
		p.audit.Record("patient_provider", "lookup", name, err.Error(), false, nil)
		return Lookup{Outcome: Failed, Err: fmt.Sprintf("failed to retrieve patient data: %v", err)}
	}

	switch len(records) {
	case 0:
		p.audit.Record("patient_provider", "lookup", name, "no patient found", false, nil)
		return Lookup{Outcome: NotFound}
	case 1:
		rec := records[0]
		p.audit.Record("patient_provider", "lookup", name, "found: "+rec.Name, true, nil)
		return Lookup{Outcome: Found, Record: &rec}
	default:
		names := make([]string, len(records))
		for i, rec := range records {
			names[i] = rec.Name
		}
		p.audit.Record("patient_provider", "lookup", name,
			fmt.Sprintf("%d patients matched", len(names)), false,
			map[string]any{"candidates": names})
		return Lookup{Outcome: Ambiguous, Candidates: names}
	}
}
