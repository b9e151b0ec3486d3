package integrations

import (
	"net/http"

	"backend/api"
	"backend/database"
	"backend/server/util"
)

type UpdateIntegrationRequest struct {
	Name   *string                     `json:"name"`
	Status *database.IntegrationStatus `json:"status"`
	Config map[string]interface{}      `json:"config"`
}

// Update an integration
//
//	@Summary      Update integration
//	@Description  Any status may follow any other
//	@Tags         integrations
//	@Accept       json
//	@Produce      json
//	@Param        session_id     path string true "Session UUID"
//	@Param        integration_id path string true "Integration UUID"
//	@Param        request body UpdateIntegrationRequest true "Changes"
//	@Success      200 {object} api.IntegrationView
//	@Failure      400 {string} string "Invalid input"
//	@Failure      404 {string} string "Integration not found"
//	@Router       /api/v1/sessions/{session_id}/integrations/{integration_id} [patch]
func (h *IntegrationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var data UpdateIntegrationRequest
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.IntegrationNotFound)
		return
	}
	integration, err := database.UpdateIntegration(scope.DB, session, r.PathValue("integration_id"), database.IntegrationUpdate{
		Name:   data.Name,
		Status: data.Status,
		Config: data.Config,
	})
	if err != nil {
		api.WriteError(w, scope.Log, err, api.IntegrationNotFound)
		return
	}

	view := api.NewIntegrationView(session, *integration)
	h.publish(scope.User.UUID, session.UUID, view)
	util.WriteJSON(w, http.StatusOK, view)
}
