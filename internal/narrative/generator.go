// Package narrative provides the optional text-generation collaborator that
// turns a structural RCA report into a free-form narrative analysis. The
// engine itself never depends on it; callers opt in.
package narrative

import (
	"context"
	"fmt"

	"github.com/pb003jbl/ticketrca/internal/rca"
)

// Generator produces free-form text from a prompt. Implementations wrap a
// hosted language model; the engine treats them as an opaque
// string-to-string function.
type Generator interface {
	// Generate returns the model's completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the backing provider.
	Name() string
}

// Config holds generator settings.
type Config struct {
	Model     string
	MaxTokens int
}

// DefaultConfig returns the default generator settings.
func DefaultConfig() Config {
	return Config{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 4000,
	}
}

// systemPrompt frames the model as an incident analysis assistant.
const systemPrompt = `You are an expert incident ticket analysis assistant. Your role is to analyze
ticket data and provide insightful observations, patterns, and recommendations.
You have expertise in IT service management, incident management and data analysis.

Your responses should be:
- Data-driven and based only on the provided information
- Clear and concise, using bullet points and sections for readability
- Actionable, providing specific insights and recommendations
- Professional in tone and terminology`

// rcaPromptTemplate asks for a narrative root cause analysis grounded in the
// structural report.
const rcaPromptTemplate = `Please perform a root cause analysis for the following incident based on the
historical ticket data below.

Incident Description:
%s

Structural RCA Report:
%s

Your analysis should include:
1. Incident summary and timeline
2. Initial symptoms and reported issues
3. Root cause identification
4. Contributing factors
5. Technical explanation of what happened
6. Preventive measures that could avoid similar incidents`

// BuildPrompt renders an RCA report into the narrative analysis prompt.
func BuildPrompt(report *rca.Report) string {
	return fmt.Sprintf(rcaPromptTemplate, report.IncidentDescription, rca.FormatReport(report))
}

// SystemPrompt returns the system prompt shared by all generators.
func SystemPrompt() string {
	return systemPrompt
}
