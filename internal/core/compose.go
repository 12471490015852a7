package core

import (
	"context"
	"fmt"
	"strings"

	"aftercare-assistant/internal/llm"
	"aftercare-assistant/internal/patient"
	"aftercare-assistant/internal/rag"
	"aftercare-assistant/pkg"
)

const (
	disclaimerMarker = "⚠️"
	disclaimer       = "\n\n⚠️ This information is for educational purposes only. Always consult with your healthcare provider for medical advice."

	// webExcerptLimit bounds the excerpt stored on the web source so
	// responses stay a reasonable size.
	webExcerptLimit = 200
)

// compose assembles the grounding context, asks the model, and builds
// the source list in presentation order: reference documents first,
// then at most one web source.
func (e *Expert) compose(ctx context.Context, state TurnState, ragResult rag.Result, webText string) (string, []pkg.Source, error) {
	var b strings.Builder

	if state.PatientData != nil {
		b.WriteString("PATIENT INFORMATION:\n")
		b.WriteString(patient.Summary(*state.PatientData))
		b.WriteString("\n\n")
	}
	if ragResult.OK {
		b.WriteString("FROM REFERENCE DOCUMENTS:\n")
		b.WriteString(ragResult.Answer)
		b.WriteString("\n\n")
	}
	if webText != "" {
		b.WriteString("FROM WEB SEARCH:\n")
		b.WriteString(webText)
		b.WriteString("\n\n")
	}
	contextBlock := strings.TrimSpace(b.String())
	if contextBlock == "" {
		contextBlock = "No additional context available."
	}

	messages := []llm.Message{
		{Role: "system", Content: expertSystemPrompt + "\n\nContext:\n" + contextBlock},
		{Role: "user", Content: state.Message},
	}
	reply, err := e.llm.Chat(ctx, messages)
	if err != nil {
		return "", nil, err
	}

	var sources []pkg.Source
	if ragResult.OK {
		for _, chunk := range ragResult.Sources {
			sources = append(sources, pkg.Source{
				Kind:      pkg.SourceReference,
				Reference: fmt.Sprintf("%s, Page %d", chunk.Document, chunk.Page),
				Excerpt:   chunk.Excerpt,
			})
		}
	}
	if webText != "" {
		sources = append(sources, pkg.Source{
			Kind:      pkg.SourceWeb,
			Reference: "Web search results",
			Excerpt:   truncateExcerpt(webText, webExcerptLimit),
		})
	}
	return reply, sources, nil
}

// withDisclaimer appends the educational disclaimer unless the reply
// already carries one.
func withDisclaimer(reply string) string {
	if strings.Contains(reply, disclaimerMarker) {
		return reply
	}
	return reply + disclaimer
}

func truncateExcerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
