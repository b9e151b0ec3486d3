// Package extractor turns a session transcript into structured context with
// a single model call.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"backend/database"
	"backend/llm"

	"go.uber.org/zap"
)

const systemPrompt = "You are a data extraction specialist. Extract structured information from conversations and return ONLY valid JSON."

type Integration struct {
	Type   database.IntegrationType `json:"type"`
	Name   string                   `json:"name"`
	Config map[string]interface{}   `json:"config,omitempty"`
}

// ExtractedContext always has non nil slices so it serialises as arrays.
type ExtractedContext struct {
	Integrations []Integration           `json:"integrations"`
	Databases    []database.DatabaseSpec `json:"databases"`
	Requirements []string                `json:"requirements"`
	Constraints  []string                `json:"constraints"`
	TechStack    []string                `json:"techStack"`
}

func Empty() ExtractedContext {
	return ExtractedContext{
		Integrations: []Integration{},
		Databases:    []database.DatabaseSpec{},
		Requirements: []string{},
		Constraints:  []string{},
		TechStack:    []string{},
	}
}

type Extractor struct {
	LLM   llm.Completer
	Model string
	Log   *zap.Logger
}

func Transcript(messages []database.SessionMessage) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}

func BuildPrompt(transcript string) string {
	return `Analyze this conversation and extract structured information:

Conversation:
` + transcript + `

Extract and return ONLY valid JSON with this structure:
{
  "integrations": [{"type": "email|github|calendar|api|database", "name": "descriptive name", "config": {}}],
  "databases": [{"type": "postgresql|mysql|mongodb|sqlite|api", "name": "descriptive name", "config": {}}],
  "requirements": ["list of key requirements mentioned"],
  "constraints": ["list of constraints or limitations mentioned"],
  "techStack": ["list of technologies, languages, frameworks mentioned"]
}

Focus on explicitly mentioned services, tools, and technologies. Only include items that were clearly stated in the conversation. Do not infer or invent anything.`
}

// ExtractContextFromMessages never fails because of the model: upstream and
// parse problems come back as an empty result with ok=false. The only error
// is llm.ErrMissingAPIKey.
func (e *Extractor) ExtractContextFromMessages(
	ctx context.Context,
	messages []database.SessionMessage,
	agentType database.AgentType,
) (ExtractedContext, bool, error) {
	content, err := e.LLM.Complete(ctx, llm.CompletionRequest{
		Model: e.Model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(Transcript(messages))},
		},
		JSONResponse: true,
	})
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return Empty(), false, err
	}
	if err != nil {
		e.Log.Warn("context extraction failed",
			zap.String("agent_type", string(agentType)),
			zap.Error(err))
		return Empty(), false, nil
	}

	extracted, ok := ParseExtraction(content)
	if !ok {
		e.Log.Warn("context extraction returned unparsable output",
			zap.String("agent_type", string(agentType)),
			zap.Int("length", len(content)))
	}
	return extracted, ok, nil
}

// ParseExtraction coerces each of the five keys on its own. ok is false only
// when the text is not a JSON object at all.
func ParseExtraction(text string) (ExtractedContext, bool) {
	result := Empty()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil || raw == nil {
		return result, false
	}

	result.Integrations = integrationList(raw["integrations"])
	result.Databases = databaseList(raw["databases"])
	result.Requirements = database.StringList(raw["requirements"])
	result.Constraints = database.StringList(raw["constraints"])
	result.TechStack = database.StringList(raw["techStack"])
	return result, true
}

// integrationList drops entries without a name and files unknown types
// under api.
func integrationList(raw json.RawMessage) []Integration {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Integration{}
	}
	out := make([]Integration, 0, len(items))
	for _, item := range items {
		var entry struct {
			Type   string                 `json:"type"`
			Name   string                 `json:"name"`
			Config map[string]interface{} `json:"config"`
		}
		if json.Unmarshal(item, &entry) != nil {
			continue
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		t := database.IntegrationType(strings.ToLower(strings.TrimSpace(entry.Type)))
		if !t.Valid() {
			t = database.IntegrationAPI
		}
		out = append(out, Integration{Type: t, Name: name, Config: entry.Config})
	}
	return out
}

func databaseList(raw json.RawMessage) []database.DatabaseSpec {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []database.DatabaseSpec{}
	}
	out := make([]database.DatabaseSpec, 0, len(items))
	for _, item := range items {
		var spec database.DatabaseSpec
		if json.Unmarshal(item, &spec) != nil || strings.TrimSpace(spec.Name) == "" {
			continue
		}
		out = append(out, spec)
	}
	return out
}
