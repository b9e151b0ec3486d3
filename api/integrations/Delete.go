package integrations

import (
	"net/http"

	"backend/api"
	"backend/database"
	"backend/server/util"
)

// Delete an integration
//
//	@Summary      Delete integration
//	@Tags         integrations
//	@Produce      json
//	@Param        session_id     path string true "Session UUID"
//	@Param        integration_id path string true "Integration UUID"
//	@Success      200 {object} map[string]bool
//	@Failure      404 {string} string "Integration not found"
//	@Router       /api/v1/sessions/{session_id}/integrations/{integration_id} [delete]
func (h *IntegrationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.IntegrationNotFound)
		return
	}
	integrationUUID := r.PathValue("integration_id")
	if err := database.DeleteIntegration(scope.DB, session, integrationUUID); err != nil {
		api.WriteError(w, scope.Log, err, api.IntegrationNotFound)
		return
	}

	h.publish(scope.User.UUID, session.UUID, map[string]string{"deleted": integrationUUID})
	util.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
