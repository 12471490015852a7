package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicalRoutesOnMedicalTerms(t *testing.T) {
	var c Lexical

	cases := map[string]bool{
		"I have swelling in my ankles":          true,
		"What are the side effects of my meds?": true,
		"My chest hurts when I breathe":         true,
		"Is my creatinine level normal?":        true,
		"Hello, my name is John Smith":          false,
		"What time does the clinic open?":       false,
		"Thanks, that was really useful":        false,
		"I'm WORRIED about my blood pressure":   true,
	}
	for msg, want := range cases {
		assert.Equal(t, want, c.RequiresExpert(msg, ""), "message: %q", msg)
	}
}

func TestLexicalRoutesOnDraftHandoff(t *testing.T) {
	var c Lexical

	assert.True(t, c.RequiresExpert("ok", "Let me connect you with our clinical AI agent."))
	assert.True(t, c.RequiresExpert("ok", "That sounds like a medical question."))
	assert.False(t, c.RequiresExpert("ok", "You're welcome! Anything else I can help with?"))
}

func TestLexicalEmptyInputsFailClosed(t *testing.T) {
	var c Lexical

	assert.False(t, c.RequiresExpert("", ""))
}

func TestNeedsWebSearch(t *testing.T) {
	cases := map[string]bool{
		"Are there any recent studies on kidney disease?": true,
		"What's the latest on SGLT2 inhibitors?":          true,
		"Any new FDA approved treatments?":                true,
		"What are the current KDIGO guidelines?":          true,
		"Why do my ankles swell at night?":                false,
		"Can I eat bananas on my diet?":                   false,
		"":                                                false,
	}
	for msg, want := range cases {
		assert.Equal(t, want, NeedsWebSearch(msg), "message: %q", msg)
	}
}
