package database

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := SetupDatabase(Config{
		Backend:    "sqlite",
		SqlitePath: filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *User {
	t.Helper()
	user, err := RegisterUser(db, "Test User", email, []byte("password"))
	require.NoError(t, err)
	return user
}

func TestCreateSessionHasEmptyMetadata(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")

	session, err := CreateAutomationSession(db, owner, AgentResearch, "Track prices", nil, "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.UUID)
	assert.Equal(t, SessionActive, session.Status)

	detail, err := LoadSessionDetail(db, owner, session.UUID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, detail.Metadata.Requirements)
	assert.Equal(t, []string{}, detail.Metadata.Constraints)
	assert.Equal(t, []string{}, detail.Metadata.TechStack)
	assert.Equal(t, []DatabaseSpec{}, detail.Metadata.Databases)
	assert.Empty(t, detail.Messages)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(detail.Session.Metadata, &raw))
	assert.JSONEq(t, `[]`, string(raw["requirements"]))
	assert.JSONEq(t, `[]`, string(raw["techStack"]))
}

func TestCreateSessionDefaults(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")

	session, err := CreateAutomationSession(db, owner, AgentWebCrawler, "", nil, "Crawl the docs")
	require.NoError(t, err)
	assert.Equal(t, "New web_crawler session", session.Title)

	messages, err := ListMessages(db, session)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "Crawl the docs", messages[0].Content)

	_, err = CreateAutomationSession(db, owner, AgentType("astrologer"), "x", nil, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestForeignSessionIsNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	other := newTestUser(t, db, "other@example.com")

	session, err := CreateAutomationSession(db, owner, AgentGeneral, "Mine", nil, "")
	require.NoError(t, err)

	_, err = GetOwnedSession(db, other, session.UUID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetOwnedSession(db, other, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = DeleteAutomationSession(db, other, session.UUID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := ListAutomationSessions(db, other)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListSessionsMostRecentlyUpdatedFirst(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")

	first, err := CreateAutomationSession(db, owner, AgentGeneral, "first", nil, "")
	require.NoError(t, err)
	second, err := CreateAutomationSession(db, owner, AgentGeneral, "second", nil, "")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(first).UpdateColumn("updated_at", base).Error)
	require.NoError(t, db.Model(second).UpdateColumn("updated_at", base.Add(time.Minute)).Error)

	list, err := ListAutomationSessions(db, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)

	// appending bumps the first session back to the top
	_, err = AppendMessage(db, first, RoleUser, "hello", nil)
	require.NoError(t, err)

	list, err = ListAutomationSessions(db, owner)
	require.NoError(t, err)
	assert.Equal(t, "first", list[0].Title)
}

func TestMessagesAscending(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	session, err := CreateAutomationSession(db, owner, AgentGeneral, "chat", nil, "")
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := AppendMessage(db, session, RoleUser, content, nil)
		require.NoError(t, err)
	}
	_, err = AppendMessage(db, session, RoleAssistant, "four", map[string]interface{}{"model": "x"})
	require.NoError(t, err)

	_, err = AppendMessage(db, session, Role("robot"), "five", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	messages, err := ListMessages(db, session)
	require.NoError(t, err)
	var contents []string
	for _, m := range messages {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"one", "two", "three", "four"}, contents)
	assert.Equal(t, "x", messages[3].Metadata["model"])

	count, err := CountUserMessages(db, session)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDeleteSessionCascades(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	session, err := CreateAutomationSession(db, owner, AgentGeneral, "doomed", nil, "hi")
	require.NoError(t, err)

	_, err = CreateIntegration(db, session, IntegrationSpec{Type: IntegrationGithub, Name: "GitHub"})
	require.NoError(t, err)
	_, err = CreateAutomations(db, session, []AutomationSpec{{Name: "a", Language: LanguageBash, Code: "echo"}})
	require.NoError(t, err)

	_, err = DeleteAutomationSession(db, owner, session.UUID)
	require.NoError(t, err)

	_, err = LoadSessionDetail(db, owner, session.UUID)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, child := range []interface{}{&SessionMessage{}, &SessionIntegration{}, &Automation{}} {
		var count int64
		require.NoError(t, db.Unscoped().Model(child).Where("session_id = ?", session.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
	var sessions int64
	require.NoError(t, db.Unscoped().Model(&AutomationSession{}).Where("id = ?", session.ID).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestIntegrationsDedupeByName(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	session, err := CreateAutomationSession(db, owner, AgentGeneral, "integrations", nil, "")
	require.NoError(t, err)

	_, err = CreateIntegration(db, session, IntegrationSpec{Type: IntegrationEmail, Name: "Gmail", Status: IntegrationConnected})
	require.NoError(t, err)
	_, err = CreateIntegration(db, session, IntegrationSpec{Type: IntegrationEmail, Name: "Gmail"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	created, err := CreateIntegrationsIfAbsent(db, session, []IntegrationSpec{
		{Type: IntegrationEmail, Name: "Gmail"},
		{Type: IntegrationGithub, Name: "GitHub"},
		{Type: IntegrationGithub, Name: "GitHub"},
		{Type: IntegrationAPI, Name: "gmail"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "GitHub", created[0].Name)
	assert.Equal(t, IntegrationPending, created[0].Status)
	assert.Equal(t, "gmail", created[1].Name)

	all, err := ListIntegrations(db, session)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, IntegrationConnected, all[0].Status)
}

func TestIntegrationNamesAreTrimmed(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	session, err := CreateAutomationSession(db, owner, AgentGeneral, "integrations", nil, "")
	require.NoError(t, err)

	_, err = CreateIntegration(db, session, IntegrationSpec{Type: IntegrationGithub, Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo, err := CreateIntegration(db, session, IntegrationSpec{Type: IntegrationGithub, Name: "repo "})
	require.NoError(t, err)
	assert.Equal(t, "repo", repo.Name)

	created, err := CreateIntegrationsIfAbsent(db, session, []IntegrationSpec{{Type: IntegrationGithub, Name: "repo"}})
	require.NoError(t, err)
	assert.Empty(t, created)

	other, err := CreateIntegration(db, session, IntegrationSpec{Type: IntegrationAPI, Name: "webhook"})
	require.NoError(t, err)

	blank := "  \t"
	_, err = UpdateIntegration(db, session, other.UUID, IntegrationUpdate{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	padded := " repo"
	_, err = UpdateIntegration(db, session, other.UUID, IntegrationUpdate{Name: &padded})
	assert.ErrorIs(t, err, ErrDuplicateName)

	renamed := " hooks "
	updated, err := UpdateIntegration(db, session, other.UUID, IntegrationUpdate{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "hooks", updated.Name)
}

func TestUpdateIntegrationAllowsAnyStatusJump(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	session, err := CreateAutomationSession(db, owner, AgentGeneral, "integrations", nil, "")
	require.NoError(t, err)

	integration, err := CreateIntegration(db, session, IntegrationSpec{Type: IntegrationCalendar, Name: "Calendar"})
	require.NoError(t, err)

	failed := IntegrationFailed
	updated, err := UpdateIntegration(db, session, integration.UUID, IntegrationUpdate{Status: &failed})
	require.NoError(t, err)
	assert.Equal(t, IntegrationFailed, updated.Status)

	pending := IntegrationPending
	updated, err = UpdateIntegration(db, session, integration.UUID, IntegrationUpdate{
		Status: &pending,
		Config: map[string]interface{}{"calendarId": "primary"},
	})
	require.NoError(t, err)
	assert.Equal(t, IntegrationPending, updated.Status)
	assert.Equal(t, "primary", updated.Config["calendarId"])

	bogus := IntegrationStatus("exploded")
	_, err = UpdateIntegration(db, session, integration.UUID, IntegrationUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, DeleteIntegration(db, session, integration.UUID))
	assert.ErrorIs(t, DeleteIntegration(db, session, integration.UUID), ErrNotFound)
	var remaining int64
	require.NoError(t, db.Unscoped().Model(&SessionIntegration{}).Where("uuid = ?", integration.UUID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestMarkAutomationDownloadedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	session, err := CreateAutomationSession(db, owner, AgentResearch, "gen", nil, "")
	require.NoError(t, err)

	automations, err := CreateAutomations(db, session, []AutomationSpec{
		{Name: "scraper", Language: LanguagePython, Code: "print(1)"},
	})
	require.NoError(t, err)
	require.Len(t, automations, 1)
	assert.Equal(t, AutomationReady, automations[0].Status)
	assert.Equal(t, []string{}, []string(automations[0].Dependencies))

	for i := 0; i < 2; i++ {
		automation, err := GetAutomation(db, session, automations[0].UUID)
		require.NoError(t, err)
		assert.Equal(t, "print(1)", automation.Code)
		require.NoError(t, MarkAutomationDownloaded(db, session, automation))

		stored, err := GetAutomation(db, session, automations[0].UUID)
		require.NoError(t, err)
		assert.Equal(t, AutomationDownloaded, stored.Status)
	}
}

func TestApplyExtractedMetadataKeepsOtherKeys(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	session, err := CreateAutomationSession(db, owner, AgentResearch, "meta", nil, "")
	require.NoError(t, err)

	seeded := `{"requirements":["old"],"theme":"dark"}`
	require.NoError(t, db.Model(session).UpdateColumn("metadata", seeded).Error)
	session, err = GetOwnedSession(db, owner, session.UUID)
	require.NoError(t, err)

	_, err = ApplyExtractedMetadata(db, session, []string{"new"}, nil, []string{"go"}, []DatabaseSpec{{Type: "postgres", Name: "main"}})
	require.NoError(t, err)

	reloaded, err := GetOwnedSession(db, owner, session.UUID)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"requirements":["new"],"constraints":[],"techStack":["go"],"databases":[{"type":"postgres","name":"main"}],"theme":"dark"}`,
		string(reloaded.Metadata))
}

func TestLoginSessions(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "owner@example.com")

	live, err := CreateLoginSession(db, user, "live-token", time.Hour)
	require.NoError(t, err)
	_, err = CreateLoginSession(db, user, "stale-token", -time.Hour)
	require.NoError(t, err)

	got, err := GetLoginSession(db, live.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.User.Email)

	_, err = GetLoginSession(db, "stale-token")
	assert.ErrorIs(t, err, ErrNotFound)

	pruned, err := PruneExpiredLoginSessions(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)
}

func TestCreateUserIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	first, err := CreateUser(db, "admin", "admin@example.com", []byte("secret"), true)
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)
	assert.True(t, first.CheckPassword("secret"))

	second, err := CreateUser(db, "admin", "admin@example.com", []byte("other"), true)
	require.NoError(t, err)
	assert.Equal(t, first.UUID, second.UUID)

	_, err = RegisterUser(db, "nope", "not-an-email", []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
