package generator

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"backend/agents"
	"backend/database"
	"backend/llm"
	"backend/llm/llmtest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseGeneratedCodeJSONTier(t *testing.T) {
	content := "Here you go:\n" +
		`{"files":[{"name":"scraper","language":"python","code":"print(1)"},{"code":"echo hi","dependencies":["jq",7]}]}` +
		"\nEnjoy!"

	got := ParseGeneratedCode(content, database.AgentResearch, database.LanguageBash)
	want := []GeneratedCode{
		{
			Name:              "scraper",
			Description:       "Generated automation code",
			Language:          database.LanguagePython,
			Code:              "print(1)",
			Dependencies:      []string{},
			SetupInstructions: "No setup instructions provided",
		},
		{
			Name:              "automation",
			Description:       "Generated automation code",
			Language:          database.LanguageBash,
			Code:              "echo hi",
			Dependencies:      []string{"jq"},
			SetupInstructions: "No setup instructions provided",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseGeneratedCode mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGeneratedCodeFencedTier(t *testing.T) {
	content := "First:\n```python\nprint('a')\n```\nthen\n```\nplain\n```\n" +
		`and a broken {"files": [ object`

	got := ParseGeneratedCode(content, database.AgentWebCrawler, "")
	want := []GeneratedCode{
		{
			Name:              "web_crawler-automation-1",
			Description:       "Generated automation code",
			Language:          database.LanguagePython,
			Code:              "print('a')",
			Dependencies:      []string{},
			SetupInstructions: "See code comments for setup",
		},
		{
			Name:              "web_crawler-automation-2",
			Description:       "Generated automation code",
			Language:          database.Language("text"),
			Code:              "plain",
			Dependencies:      []string{},
			SetupInstructions: "See code comments for setup",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseGeneratedCode mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGeneratedCodeRawTier(t *testing.T) {
	for _, content := range []string{
		"I cannot write code for that, sorry.",
		"",
		`{"files": []}`,
	} {
		got := ParseGeneratedCode(content, database.AgentResearch, "")
		require.Len(t, got, 1)
		assert.Equal(t, content, got[0].Code)
		assert.Equal(t, "research-automation", got[0].Name)
		assert.Equal(t, database.LanguagePython, got[0].Language)
		assert.Equal(t, "Review code for setup requirements", got[0].SetupInstructions)
	}

	got := ParseGeneratedCode("just text", database.AgentGeneral, database.LanguageTypescript)
	assert.Equal(t, database.LanguageTypescript, got[0].Language)
}

func TestBuildGenerationPrompt(t *testing.T) {
	registry := agents.MustLoad()

	prompt := BuildGenerationPrompt(Request{
		AgentType:           database.AgentResearch,
		Requirements:        []string{"scrape example.com", "store prices"},
		Constraints:         []string{"no paid APIs"},
		ConversationSummary: "user: Scrape example.com daily",
		Language:            database.LanguagePython,
		Guidance:            registry.GenerationGuidance("research"),
	})
	assert.Contains(t, prompt, "1. scrape example.com\n2. store prices\n")
	assert.Contains(t, prompt, "Tech Stack: Choose best fit")
	assert.Contains(t, prompt, "Preferred Language: python")
	assert.Contains(t, prompt, "- no paid APIs")
	assert.Contains(t, prompt, "Context: user: Scrape example.com daily")
	assert.True(t, strings.HasSuffix(prompt, "- Error retry logic"))

	general := BuildGenerationPrompt(Request{AgentType: database.AgentGeneral, TechStack: []string{"go", "sqlite"}})
	assert.Contains(t, general, "Tech Stack: go, sqlite")
	assert.NotContains(t, general, "Preferred Language")
	assert.NotContains(t, general, "Constraints:")
	assert.True(t, strings.HasSuffix(general, "}"))
}

func TestSummarizeConversationTruncates(t *testing.T) {
	messages := []database.SessionMessage{
		{Role: database.RoleUser, Content: strings.Repeat("é", 3000)},
		{Role: database.RoleAssistant, Content: strings.Repeat("b", 3000)},
	}
	summary := SummarizeConversation(messages, SummaryBudget)
	assert.Equal(t, SummaryBudget, len([]rune(summary)))
	assert.True(t, strings.HasPrefix(summary, "user: é"))

	short := SummarizeConversation(messages[:1], 100000)
	assert.Equal(t, "user: "+strings.Repeat("é", 3000), short)
}

func newService(t *testing.T, response string) (*Service, *llmtest.Server) {
	t.Helper()
	upstream := llmtest.NewServer(response)
	t.Cleanup(upstream.Close)
	client := llm.NewOpenAIClient(llm.OpenAIConfig{APIKey: "key", BaseURL: upstream.URL}, zap.NewNop())
	return &Service{
		Generator: &Generator{LLM: client, Model: llm.DefaultGenerationModel, Log: zap.NewNop()},
		Agents:    agents.MustLoad(),
		Log:       zap.NewNop(),
	}, upstream
}

func TestGenerateForSession(t *testing.T) {
	db, err := database.SetupDatabase(database.Config{
		Backend:    "sqlite",
		SqlitePath: filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	owner, err := database.RegisterUser(db, "Owner", "owner@example.com", []byte("password"))
	require.NoError(t, err)
	session, err := database.CreateAutomationSession(db, owner, database.AgentWebappDeveloper, "Todo app", nil, "Build a todo app")
	require.NoError(t, err)

	service, upstream := newService(t, `{"files":[{"name":"scraper","language":"python","code":"print(1)"}]}`)

	result, automations, err := service.GenerateForSession(context.Background(), db, owner, session.UUID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	require.Len(t, result.AutomationIDs, 1)
	assert.Equal(t, automations[0].UUID, result.AutomationIDs[0])

	stored, err := database.GetAutomation(db, session, result.AutomationIDs[0])
	require.NoError(t, err)
	assert.Equal(t, database.AutomationReady, stored.Status)
	assert.Equal(t, database.LanguagePython, stored.Language)
	assert.Equal(t, "print(1)", stored.Code)

	req := upstream.Requests()[0]
	assert.Equal(t, llm.DefaultGenerationModel, req.Model)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.7, *req.Temperature, 1e-9)
	assert.Contains(t, req.Messages[1].Content, "For web application, include:")
	assert.Contains(t, req.Messages[1].Content, "user: Build a todo app")

	_, _, err = service.GenerateForSession(context.Background(), db, owner, session.UUID, database.Language("cobol"))
	assert.ErrorIs(t, err, database.ErrInvalidInput)

	upstream.SetStatus(http.StatusInternalServerError)
	_, _, err = service.GenerateForSession(context.Background(), db, owner, session.UUID, "")
	var upstreamErr *llm.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)

	all, err := database.ListAutomations(db, session)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
