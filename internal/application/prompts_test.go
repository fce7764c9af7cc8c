package application

import (
	"strings"
	"testing"
)

// TestPromptListCatalog tests the advertised templates
func TestPromptListCatalog(t *testing.T) {
	registry := NewPromptRegistry()

	defs := registry.List()
	if len(defs) != 2 {
		t.Fatalf("Expected 2 prompt templates, got %d", len(defs))
	}

	names := map[string]bool{}
	for _, def := range defs {
		names[def.Name] = true
		if len(def.Arguments) == 0 {
			t.Errorf("Expected template '%s' to declare arguments", def.Name)
		}
	}
	if !names[PromptAnalyzeText] || !names[PromptSummarizeAndReport] {
		t.Errorf("Expected both templates listed, got %v", names)
	}
}

// TestAnalyzeTextRendering tests interpolation with and without the optional
// focus
func TestAnalyzeTextRendering(t *testing.T) {
	registry := NewPromptRegistry()

	withFocus := registry.Get(PromptAnalyzeText, map[string]string{
		"text":  "The launch went well.",
		"focus": "schedule slips",
	})
	if len(withFocus.Messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(withFocus.Messages))
	}
	text := withFocus.Messages[0].Content.Text
	if !strings.Contains(text, "The launch went well.") {
		t.Error("Expected the input text embedded in the rendered prompt")
	}
	if !strings.Contains(text, "schedule slips") {
		t.Error("Expected the focus embedded in the rendered prompt")
	}

	withoutFocus := registry.Get(PromptAnalyzeText, map[string]string{
		"text": "The launch went well.",
	})
	if strings.Contains(withoutFocus.Messages[0].Content.Text, "particular attention") {
		t.Error("Expected no focus clause when focus is absent")
	}
}

// TestSummarizeAndReportAudienceDefault tests the audience fallback
func TestSummarizeAndReportAudienceDefault(t *testing.T) {
	registry := NewPromptRegistry()

	rendered := registry.Get(PromptSummarizeAndReport, map[string]string{
		"text": "Quarterly numbers.",
	})
	if !strings.Contains(rendered.Messages[0].Content.Text, "a general audience") {
		t.Error("Expected default audience in the rendered prompt")
	}

	targeted := registry.Get(PromptSummarizeAndReport, map[string]string{
		"text":     "Quarterly numbers.",
		"audience": "the executive team",
	})
	if !strings.Contains(targeted.Messages[0].Content.Text, "the executive team") {
		t.Error("Expected supplied audience in the rendered prompt")
	}
}

// TestUnknownPromptExplains tests that an unknown name renders an explanatory
// message instead of failing
func TestUnknownPromptExplains(t *testing.T) {
	registry := NewPromptRegistry()

	rendered := registry.Get("no-such-template", nil)
	if len(rendered.Messages) != 1 {
		t.Fatalf("Expected 1 explanatory message, got %d", len(rendered.Messages))
	}

	text := rendered.Messages[0].Content.Text
	if !strings.Contains(text, "no-such-template") {
		t.Error("Expected the unknown name echoed")
	}
	if !strings.Contains(text, PromptAnalyzeText) || !strings.Contains(text, PromptSummarizeAndReport) {
		t.Errorf("Expected available templates listed, got: %s", text)
	}
	if rendered.Messages[0].Role != "user" {
		t.Errorf("Expected a user message, got role '%s'", rendered.Messages[0].Role)
	}
}
