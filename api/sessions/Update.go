package sessions

import (
	"net/http"

	"backend/api"
	"backend/api/websocket"
	"backend/database"
	"backend/server/util"
)

type UpdateSessionRequest struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Status      *database.SessionStatus `json:"status"`
}

// Update a session's title, description or status
//
//	@Summary      Update a session
//	@Tags         sessions
//	@Accept       json
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Param        request body UpdateSessionRequest true "Changes"
//	@Success      200  {object}  api.SessionView
//	@Failure      400  {string}  string  "Invalid input"
//	@Failure      404  {string}  string  "Session not found"
//	@Router       /api/v1/sessions/{session_id} [patch]
func (h *SessionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var data UpdateSessionRequest
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	session, err := database.UpdateAutomationSession(scope.DB, scope.User, r.PathValue("session_id"), database.SessionUpdate{
		Title:       data.Title,
		Description: data.Description,
		Status:      data.Status,
	})
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	view := api.NewSessionView(*session)
	h.publish(scope.User.UUID, websocket.SessionUpdated, session.UUID, view)
	util.WriteJSON(w, http.StatusOK, view)
}
