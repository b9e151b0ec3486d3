package database

import "slices"

type AgentType string

const (
	AgentResearch        AgentType = "research"
	AgentWebappDeveloper AgentType = "webapp_developer"
	AgentWebCrawler      AgentType = "web_crawler"
	AgentGeneral         AgentType = "general"
)

var AgentTypes = []AgentType{AgentResearch, AgentWebappDeveloper, AgentWebCrawler, AgentGeneral}

func (a AgentType) Valid() bool { return slices.Contains(AgentTypes, a) }

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionArchived  SessionStatus = "archived"
)

func (s SessionStatus) Valid() bool {
	return s == SessionActive || s == SessionCompleted || s == SessionArchived
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAssistant || r == RoleSystem }

type IntegrationType string

const (
	IntegrationEmail    IntegrationType = "email"
	IntegrationGithub   IntegrationType = "github"
	IntegrationCalendar IntegrationType = "calendar"
	IntegrationAPI      IntegrationType = "api"
	IntegrationDatabase IntegrationType = "database"
)

var IntegrationTypes = []IntegrationType{IntegrationEmail, IntegrationGithub, IntegrationCalendar, IntegrationAPI, IntegrationDatabase}

func (t IntegrationType) Valid() bool { return slices.Contains(IntegrationTypes, t) }

// IntegrationStatus has no enforced progression, any value may follow any other.
type IntegrationStatus string

const (
	IntegrationPending    IntegrationStatus = "pending"
	IntegrationConfigured IntegrationStatus = "configured"
	IntegrationConnected  IntegrationStatus = "connected"
	IntegrationError      IntegrationStatus = "error"
	IntegrationFailed     IntegrationStatus = "failed"
)

var IntegrationStatuses = []IntegrationStatus{IntegrationPending, IntegrationConfigured, IntegrationConnected, IntegrationError, IntegrationFailed}

func (s IntegrationStatus) Valid() bool { return slices.Contains(IntegrationStatuses, s) }

type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavascript Language = "javascript"
	LanguageTypescript Language = "typescript"
	LanguageBash       Language = "bash"
)

func (l Language) Valid() bool {
	return l == LanguagePython || l == LanguageJavascript || l == LanguageTypescript || l == LanguageBash
}

// Extension maps a stored language to the download file extension.
// Anything outside the known set downloads as plain text.
func (l Language) Extension() string {
	switch l {
	case LanguagePython:
		return "py"
	case LanguageJavascript:
		return "js"
	case LanguageTypescript:
		return "ts"
	case LanguageBash:
		return "sh"
	default:
		return "txt"
	}
}

type AutomationStatus string

const (
	AutomationDraft      AutomationStatus = "draft"
	AutomationReady      AutomationStatus = "ready"
	AutomationDownloaded AutomationStatus = "downloaded"
	AutomationExecuted   AutomationStatus = "executed"
)
