package integrations

import (
	"net/http"

	"backend/api"
	"backend/database"
	"backend/server/util"
)

type ListIntegrationsResponse struct {
	Integrations []api.IntegrationView `json:"integrations"`
}

// List integrations of a session
//
//	@Summary      List integrations
//	@Tags         integrations
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Success      200 {object} ListIntegrationsResponse
//	@Failure      404 {string} string "Session not found"
//	@Router       /api/v1/sessions/{session_id}/integrations [get]
func (h *IntegrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}
	integrations, err := database.ListIntegrations(scope.DB, session)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	util.WriteJSON(w, http.StatusOK, ListIntegrationsResponse{Integrations: api.NewIntegrationViews(session, integrations)})
}
