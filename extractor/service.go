package extractor

import (
	"context"

	"backend/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Result struct {
	Extracted           ExtractedContext `json:"extracted"`
	IntegrationsCreated int              `json:"integrationsCreated"`
}

type Service struct {
	Extractor *Extractor
	Log       *zap.Logger
}

// ExtractForSession runs extraction over the whole conversation of an owned
// session. When the model call or the parse fails nothing is written and the
// empty result is returned without an error.
func (s *Service) ExtractForSession(ctx context.Context, DB *gorm.DB, owner *database.User, sessionUUID string) (Result, error) {
	session, err := database.GetOwnedSession(DB, owner, sessionUUID)
	if err != nil {
		return Result{}, err
	}
	messages, err := database.ListMessages(DB, session)
	if err != nil {
		return Result{}, err
	}

	extracted, ok, err := s.Extractor.ExtractContextFromMessages(ctx, messages, session.AgentType)
	if err != nil {
		return Result{}, err
	}
	result := Result{Extracted: extracted}
	if !ok {
		return result, nil
	}

	specs := make([]database.IntegrationSpec, 0, len(extracted.Integrations))
	for _, integration := range extracted.Integrations {
		specs = append(specs, database.IntegrationSpec{
			Type:   integration.Type,
			Name:   integration.Name,
			Config: integration.Config,
		})
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		created, err := database.CreateIntegrationsIfAbsent(tx, session, specs)
		if err != nil {
			return err
		}
		result.IntegrationsCreated = len(created)

		_, err = database.ApplyExtractedMetadata(tx, session,
			extracted.Requirements,
			extracted.Constraints,
			extracted.TechStack,
			extracted.Databases)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	s.Log.Info("context extracted",
		zap.String("session", session.UUID),
		zap.Int("integrations_created", result.IntegrationsCreated),
		zap.Int("requirements", len(extracted.Requirements)))
	return result, nil
}
