package sessions

import (
	"net/http"

	"backend/api"
	"backend/database"
	"backend/server/util"
)

type ListSessionsResponse struct {
	Sessions []api.SessionView `json:"sessions"`
}

// List the caller's sessions
//
//	@Summary      List sessions
//	@Description  Sessions owned by the caller, most recently updated first
//	@Tags         sessions
//	@Produce      json
//	@Success      200  {object}  ListSessionsResponse
//	@Failure      401  {string}  string  "Unauthorized"
//	@Router       /api/v1/sessions [get]
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := database.ListAutomationSessions(scope.DB, scope.User)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	util.WriteJSON(w, http.StatusOK, ListSessionsResponse{Sessions: api.NewSessionViews(sessions)})
}
