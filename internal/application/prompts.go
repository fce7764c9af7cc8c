package application

import (
	"fmt"
	"strings"

	"insight-mcp-server/internal/domain"
)

// PromptDefinition describes one reusable prompt template.
type PromptDefinition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

// PromptArgument describes one template parameter.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// PromptMessage is one rendered conversation message.
type PromptMessage struct {
	Role    string              `json:"role"`
	Content domain.ContentBlock `json:"content"`
}

// RenderedPrompt is the result of expanding a template with arguments.
type RenderedPrompt struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}

// Prompt template names.
const (
	PromptAnalyzeText        = "analyze-text"
	PromptSummarizeAndReport = "summarize-and-report"
)

// PromptRegistry serves the fixed set of prompt templates.
type PromptRegistry struct{}

// NewPromptRegistry creates an empty registry; templates are compiled in.
func NewPromptRegistry() *PromptRegistry {
	return &PromptRegistry{}
}

// List returns the prompt catalog.
func (p *PromptRegistry) List() []PromptDefinition {
	return []PromptDefinition{
		{
			Name:        PromptAnalyzeText,
			Description: "Run a full analysis pass (summary, sentiment, entities) over a piece of text",
			Arguments: []PromptArgument{
				{Name: "text", Description: "The text to analyze", Required: true},
				{Name: "focus", Description: "An aspect to pay particular attention to", Required: false},
			},
		},
		{
			Name:        PromptSummarizeAndReport,
			Description: "Summarize a document and format the result as a short report",
			Arguments: []PromptArgument{
				{Name: "text", Description: "The document to summarize", Required: true},
				{Name: "audience", Description: "Who the report is for", Required: false},
			},
		},
	}
}

// Get renders a template with the supplied arguments. An unknown name yields
// a single explanatory user message listing the available templates, as a
// successful render.
func (p *PromptRegistry) Get(name string, args map[string]string) RenderedPrompt {
	switch name {
	case PromptAnalyzeText:
		return p.renderAnalyzeText(args)
	case PromptSummarizeAndReport:
		return p.renderSummarizeAndReport(args)
	default:
		available := make([]string, 0, 2)
		for _, def := range p.List() {
			available = append(available, def.Name)
		}
		return RenderedPrompt{
			Messages: []PromptMessage{
				userMessage(fmt.Sprintf("Unknown prompt %q. Available prompts: %s.", name, strings.Join(available, ", "))),
			},
		}
	}
}

func (p *PromptRegistry) renderAnalyzeText(args map[string]string) RenderedPrompt {
	text := args["text"]

	var b strings.Builder
	b.WriteString("Analyze the following text. Provide a concise summary, classify its overall sentiment, and list the named entities it mentions.")
	if focus := args["focus"]; focus != "" {
		fmt.Fprintf(&b, " Pay particular attention to %s.", focus)
	}
	b.WriteString("\n\n")
	b.WriteString(text)

	return RenderedPrompt{
		Description: "Full analysis of the supplied text",
		Messages:    []PromptMessage{userMessage(b.String())},
	}
}

func (p *PromptRegistry) renderSummarizeAndReport(args map[string]string) RenderedPrompt {
	text := args["text"]
	audience := args["audience"]
	if audience == "" {
		audience = "a general audience"
	}

	return RenderedPrompt{
		Description: "Summary formatted as a short report",
		Messages: []PromptMessage{
			userMessage(fmt.Sprintf(
				"Summarize the following document and present the summary as a short report suitable for %s. Use a title, a one-paragraph overview, and a bulleted list of key points.\n\n%s",
				audience, text)),
		},
	}
}

func userMessage(text string) PromptMessage {
	return PromptMessage{
		Role:    "user",
		Content: domain.ContentBlock{Type: "text", Text: text},
	}
}
