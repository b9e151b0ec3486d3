package generator

import (
	"fmt"
	"strings"

	"backend/database"
)

// SummaryBudget bounds the conversation part of the prompt, in characters.
const SummaryBudget = 4000

const systemPrompt = "You are an expert automation engineer. Generate production-ready code with proper error handling, logging, and documentation. Return code as valid JSON."

type Request struct {
	AgentType           database.AgentType
	Requirements        []string
	TechStack           []string
	Constraints         []string
	ConversationSummary string
	Language            database.Language
	// Guidance is appended to the base prompt, usually the agent template's
	// generation guidance.
	Guidance string
}

// SummarizeConversation renders "<role>: <content>" lines and keeps the
// first limit characters.
func SummarizeConversation(messages []database.SessionMessage, limit int) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	summary := strings.Join(lines, "\n")

	runes := []rune(summary)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return summary
}

func BuildGenerationPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("Generate production-ready automation code based on these requirements:\n\n")
	fmt.Fprintf(&sb, "Agent Type: %s\n", req.AgentType)
	sb.WriteString("Requirements:\n")
	for i, r := range req.Requirements {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r)
	}

	techStack := strings.Join(req.TechStack, ", ")
	if techStack == "" {
		techStack = "Choose best fit"
	}
	fmt.Fprintf(&sb, "\nTech Stack: %s\n", techStack)
	if req.Language != "" {
		fmt.Fprintf(&sb, "Preferred Language: %s\n", req.Language)
	}
	if len(req.Constraints) > 0 {
		sb.WriteString("Constraints:\n")
		for _, c := range req.Constraints {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}

	fmt.Fprintf(&sb, "\nContext: %s\n", req.ConversationSummary)
	sb.WriteString(`
Generate complete, working code with:
1. Proper error handling and logging
2. Clear comments and documentation
3. Environment variable configuration
4. Setup/installation instructions
5. Example usage

Return ONLY valid JSON in this exact format:
{
  "files": [
    {
      "name": "descriptive-name",
      "description": "what this code does",
      "language": "python|javascript|typescript|bash",
      "code": "complete code here",
      "dependencies": ["package1", "package2"],
      "setupInstructions": "step by step setup"
    }
  ]
}`)

	if req.Guidance != "" {
		sb.WriteString("\n\n")
		sb.WriteString(req.Guidance)
	}
	return sb.String()
}
