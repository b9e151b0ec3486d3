package api

import (
	"time"

	"backend/database"
)

// Public JSON shapes. Only UUIDs ever leave the server.

type SessionView struct {
	ID          string                   `json:"id"`
	AgentType   database.AgentType       `json:"agentType"`
	Title       string                   `json:"title"`
	Description *string                  `json:"description"`
	Status      database.SessionStatus   `json:"status"`
	Metadata    database.SessionMetadata `json:"metadata"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

type MessageView struct {
	ID        string                 `json:"id"`
	SessionID string                 `json:"sessionId"`
	Role      database.Role          `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"createdAt"`
}

type IntegrationView struct {
	ID        string                     `json:"id"`
	SessionID string                     `json:"sessionId"`
	Type      database.IntegrationType   `json:"type"`
	Name      string                     `json:"name"`
	Status    database.IntegrationStatus `json:"status"`
	Config    map[string]interface{}     `json:"config"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

type AutomationView struct {
	ID                string                    `json:"id"`
	SessionID         string                    `json:"sessionId"`
	Name              string                    `json:"name"`
	Description       *string                   `json:"description"`
	Language          database.Language         `json:"language"`
	Code              string                    `json:"code"`
	Dependencies      []string                  `json:"dependencies"`
	SetupInstructions *string                   `json:"setupInstructions"`
	Status            database.AutomationStatus `json:"status"`
	CreatedAt         time.Time                 `json:"createdAt"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
}

func NewSessionView(s database.AutomationSession) SessionView {
	return SessionView{
		ID:          s.UUID,
		AgentType:   s.AgentType,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		Metadata:    database.DecodeSessionMetadata(s.Metadata),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewSessionViews(sessions []database.AutomationSession) []SessionView {
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, NewSessionView(s))
	}
	return views
}

func NewMessageViews(session *database.AutomationSession, messages []database.SessionMessage) []MessageView {
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		metadata := map[string]interface{}(m.Metadata)
		if metadata == nil {
			metadata = map[string]interface{}{}
		}
		views = append(views, MessageView{
			ID:        m.UUID,
			SessionID: session.UUID,
			Role:      m.Role,
			Content:   m.Content,
			Metadata:  metadata,
			CreatedAt: m.CreatedAt,
		})
	}
	return views
}

func NewIntegrationView(session *database.AutomationSession, i database.SessionIntegration) IntegrationView {
	config := map[string]interface{}(i.Config)
	if config == nil {
		config = map[string]interface{}{}
	}
	return IntegrationView{
		ID:        i.UUID,
		SessionID: session.UUID,
		Type:      i.IntegrationType,
		Name:      i.Name,
		Status:    i.Status,
		Config:    config,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func NewIntegrationViews(session *database.AutomationSession, integrations []database.SessionIntegration) []IntegrationView {
	views := make([]IntegrationView, 0, len(integrations))
	for _, i := range integrations {
		views = append(views, NewIntegrationView(session, i))
	}
	return views
}

func NewAutomationViews(session *database.AutomationSession, automations []database.Automation) []AutomationView {
	views := make([]AutomationView, 0, len(automations))
	for _, a := range automations {
		deps := []string(a.Dependencies)
		if deps == nil {
			deps = []string{}
		}
		views = append(views, AutomationView{
			ID:                a.UUID,
			SessionID:         session.UUID,
			Name:              a.Name,
			Description:       a.Description,
			Language:          a.Language,
			Code:              a.Code,
			Dependencies:      deps,
			SetupInstructions: a.SetupInstructions,
			Status:            a.Status,
			CreatedAt:         a.CreatedAt,
			UpdatedAt:         a.UpdatedAt,
		})
	}
	return views
}
