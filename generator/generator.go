// Package generator asks the model for code artifacts and stores them as
// automations.
package generator

import (
	"context"
	"fmt"

	"backend/agents"
	"backend/database"
	"backend/llm"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const Temperature = 0.7

type Generator struct {
	LLM   llm.Completer
	Model string
	Log   *zap.Logger
}

// GenerateAutomationCode propagates every model error. Malformed output is
// not an error, it degrades through ParseGeneratedCode.
func (g *Generator) GenerateAutomationCode(ctx context.Context, req Request) ([]GeneratedCode, error) {
	content, err := g.LLM.Complete(ctx, llm.CompletionRequest{
		Model: g.Model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildGenerationPrompt(req)},
		},
		Temperature: llm.Float(Temperature),
	})
	if err != nil {
		g.Log.Error("code generation failed",
			zap.String("agent_type", string(req.AgentType)),
			zap.Error(err))
		return nil, fmt.Errorf("code generation failed: %w", err)
	}
	return ParseGeneratedCode(content, req.AgentType, req.Language), nil
}

type Result struct {
	Generated     int      `json:"generated"`
	AutomationIDs []string `json:"automationIds"`
}

type Service struct {
	Generator *Generator
	Agents    *agents.Registry
	Log       *zap.Logger
}

func (s *Service) GenerateForSession(
	ctx context.Context,
	DB *gorm.DB,
	owner *database.User,
	sessionUUID string,
	language database.Language,
) (Result, []database.Automation, error) {
	if language != "" && !language.Valid() {
		return Result{}, nil, fmt.Errorf("%w: unknown language %q", database.ErrInvalidInput, language)
	}

	session, err := database.GetOwnedSession(DB, owner, sessionUUID)
	if err != nil {
		return Result{}, nil, err
	}
	messages, err := database.ListMessages(DB, session)
	if err != nil {
		return Result{}, nil, err
	}
	metadata := database.DecodeSessionMetadata(session.Metadata)

	req := Request{
		AgentType:           session.AgentType,
		Requirements:        metadata.Requirements,
		TechStack:           metadata.TechStack,
		Constraints:         metadata.Constraints,
		ConversationSummary: SummarizeConversation(messages, SummaryBudget),
		Language:            language,
	}
	if s.Agents != nil {
		req.Guidance = s.Agents.GenerationGuidance(string(session.AgentType))
	}

	files, err := s.Generator.GenerateAutomationCode(ctx, req)
	if err != nil {
		return Result{}, nil, err
	}

	specs := make([]database.AutomationSpec, 0, len(files))
	for _, f := range files {
		specs = append(specs, f.Spec())
	}
	automations, err := database.CreateAutomations(DB, session, specs)
	if err != nil {
		return Result{}, nil, err
	}

	result := Result{Generated: len(automations), AutomationIDs: make([]string, 0, len(automations))}
	for _, a := range automations {
		result.AutomationIDs = append(result.AutomationIDs, a.UUID)
	}
	s.Log.Info("automations generated",
		zap.String("session", session.UUID),
		zap.Int("count", result.Generated))
	return result, automations, nil
}
