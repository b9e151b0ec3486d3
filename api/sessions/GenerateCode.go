package sessions

import (
	"net/http"

	"backend/api"
	"backend/api/websocket"
	"backend/database"
	"backend/server/util"
)

type GenerateCodeRequest struct {
	Language database.Language `json:"language"`
}

// Generate automation code for a session
//
//	@Summary      Generate automations
//	@Description  Builds a prompt from the session metadata and conversation
//	@Description  summary and stores every returned artifact as a ready automation.
//	@Tags         sessions
//	@Accept       json
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Param        request body GenerateCodeRequest false "Preferred language"
//	@Success      200  {object}  generator.Result
//	@Failure      400  {string}  string  "Invalid language"
//	@Failure      404  {string}  string  "Session not found"
//	@Failure      500  {string}  string  "Code generation failed"
//	@Router       /api/v1/sessions/{session_id}/generate-code [post]
func (h *SessionsHandler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var data GenerateCodeRequest
	if err := util.DecodeJSON(r, &data, true); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	sessionUUID := r.PathValue("session_id")
	result, automations, err := h.Generation.GenerateForSession(r.Context(), scope.DB, scope.User, sessionUUID, data.Language)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	h.publish(scope.User.UUID, websocket.AutomationsGenerated, sessionUUID, map[string]interface{}{
		"generated":     result.Generated,
		"automationIds": result.AutomationIDs,
		"names":         automationNames(automations),
	})
	util.WriteJSON(w, http.StatusOK, result)
}

func automationNames(automations []database.Automation) []string {
	names := make([]string, 0, len(automations))
	for _, a := range automations {
		names = append(names, a.Name)
	}
	return names
}
