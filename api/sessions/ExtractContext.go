package sessions

import (
	"net/http"

	"backend/api"
	"backend/api/websocket"
	"backend/server/util"
)

// Extract structured context from a session's conversation
//
//	@Summary      Extract context
//	@Description  Runs the extraction model over the whole conversation, stores
//	@Description  requirements, constraints, tech stack and databases in the
//	@Description  session metadata and creates missing integrations. Model or
//	@Description  parse failures yield an empty result, not an error.
//	@Tags         sessions
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Success      200  {object}  extractor.Result
//	@Failure      404  {string}  string  "Session not found"
//	@Failure      500  {string}  string  "Model provider not configured"
//	@Router       /api/v1/sessions/{session_id}/extract-context [post]
func (h *SessionsHandler) ExtractContext(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionUUID := r.PathValue("session_id")
	result, err := h.Extraction.ExtractForSession(r.Context(), scope.DB, scope.User, sessionUUID)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	h.publish(scope.User.UUID, websocket.ContextExtracted, sessionUUID, result)
	util.WriteJSON(w, http.StatusOK, result)
}
