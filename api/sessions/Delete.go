package sessions

import (
	"net/http"

	"backend/api"
	"backend/api/websocket"
	"backend/database"
	"backend/server/util"

	"go.uber.org/zap"
)

// Delete a session and everything that belongs to it
//
//	@Summary      Delete a session
//	@Tags         sessions
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Success      200  {object}  map[string]bool
//	@Failure      404  {string}  string  "Session not found"
//	@Router       /api/v1/sessions/{session_id} [delete]
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := database.DeleteAutomationSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	scope.Log.Info("session deleted", zap.String("session", session.UUID))
	h.publish(scope.User.UUID, websocket.SessionDeleted, session.UUID, nil)
	util.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
