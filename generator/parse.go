package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"backend/database"
)

const defaultDescription = "Generated automation code"

var (
	filesObject = regexp.MustCompile(`(?s)\{.*"files".*\}`)
	fencedBlock = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)```")
)

type GeneratedCode struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Language          database.Language `json:"language"`
	Code              string            `json:"code"`
	Dependencies      []string          `json:"dependencies"`
	SetupInstructions string            `json:"setupInstructions"`
}

func (g GeneratedCode) Spec() database.AutomationSpec {
	return database.AutomationSpec{
		Name:              g.Name,
		Description:       g.Description,
		Language:          g.Language,
		Code:              g.Code,
		Dependencies:      g.Dependencies,
		SetupInstructions: g.SetupInstructions,
	}
}

// ParseGeneratedCode tries, in order: a JSON object with a "files" array,
// fenced code blocks, the raw text. It always returns at least one artifact.
func ParseGeneratedCode(content string, agentType database.AgentType, preferred database.Language) []GeneratedCode {
	if files := parseFilesJSON(content, preferred); len(files) > 0 {
		return files
	}
	if blocks := parseFencedBlocks(content, agentType); len(blocks) > 0 {
		return blocks
	}

	language := preferred
	if language == "" {
		language = database.LanguagePython
	}
	return []GeneratedCode{{
		Name:              fmt.Sprintf("%s-automation", agentType),
		Description:       defaultDescription,
		Language:          language,
		Code:              content,
		Dependencies:      []string{},
		SetupInstructions: "Review code for setup requirements",
	}}
}

func parseFilesJSON(content string, preferred database.Language) []GeneratedCode {
	match := filesObject.FindString(content)
	if match == "" {
		return nil
	}

	var parsed struct {
		Files []json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return nil
	}

	out := make([]GeneratedCode, 0, len(parsed.Files))
	for _, raw := range parsed.Files {
		var entry map[string]json.RawMessage
		if json.Unmarshal(raw, &entry) != nil {
			continue
		}
		file := GeneratedCode{
			Name:              stringField(entry, "name"),
			Description:       stringField(entry, "description"),
			Language:          database.Language(stringField(entry, "language")),
			Code:              stringField(entry, "code"),
			Dependencies:      database.StringList(entry["dependencies"]),
			SetupInstructions: stringField(entry, "setupInstructions"),
		}
		if file.Name == "" {
			file.Name = "automation"
		}
		if file.Description == "" {
			file.Description = defaultDescription
		}
		if file.Language == "" {
			file.Language = preferred
		}
		if file.Language == "" {
			file.Language = database.LanguagePython
		}
		if file.SetupInstructions == "" {
			file.SetupInstructions = "No setup instructions provided"
		}
		out = append(out, file)
	}
	return out
}

func parseFencedBlocks(content string, agentType database.AgentType) []GeneratedCode {
	matches := fencedBlock.FindAllStringSubmatch(content, -1)
	out := make([]GeneratedCode, 0, len(matches))
	for i, m := range matches {
		language := m[1]
		if language == "" {
			language = "text"
		}
		out = append(out, GeneratedCode{
			Name:              fmt.Sprintf("%s-automation-%d", agentType, i+1),
			Description:       defaultDescription,
			Language:          database.Language(language),
			Code:              strings.TrimSpace(m[2]),
			Dependencies:      []string{},
			SetupInstructions: "See code comments for setup",
		})
	}
	return out
}

// stringField returns "" for missing keys and for values that are not strings.
func stringField(entry map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := entry[key]; ok {
		json.Unmarshal(raw, &s)
	}
	return s
}
