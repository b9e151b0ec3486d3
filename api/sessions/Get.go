package sessions

import (
	"net/http"

	"backend/api"
	"backend/database"
	"backend/server/util"
)

type SessionDetailResponse struct {
	Session      api.SessionView       `json:"session"`
	Messages     []api.MessageView     `json:"messages"`
	Integrations []api.IntegrationView `json:"integrations"`
	Automations  []api.AutomationView  `json:"automations"`
}

// Get a session with its messages, integrations and automations
//
//	@Summary      Get a session
//	@Tags         sessions
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Success      200  {object}  SessionDetailResponse
//	@Failure      404  {string}  string  "Session not found"
//	@Router       /api/v1/sessions/{session_id} [get]
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	detail, err := database.LoadSessionDetail(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	session := &detail.Session
	view := api.NewSessionView(*session)
	view.Metadata = detail.Metadata
	util.WriteJSON(w, http.StatusOK, SessionDetailResponse{
		Session:      view,
		Messages:     api.NewMessageViews(session, detail.Messages),
		Integrations: api.NewIntegrationViews(session, detail.Integrations),
		Automations:  api.NewAutomationViews(session, detail.Automations),
	})
}
