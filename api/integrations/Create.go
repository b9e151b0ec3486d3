package integrations

import (
	"net/http"

	"backend/api"
	"backend/database"
	"backend/server/util"
)

type CreateIntegrationRequest struct {
	Type   database.IntegrationType   `json:"type"`
	Name   string                     `json:"name"`
	Status database.IntegrationStatus `json:"status"`
	Config map[string]interface{}     `json:"config"`
}

// Create an integration
//
//	@Summary      Create integration
//	@Description  Names are unique within a session
//	@Tags         integrations
//	@Accept       json
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Param        request body CreateIntegrationRequest true "Integration"
//	@Success      201 {object} api.IntegrationView
//	@Failure      400 {string} string "Invalid input"
//	@Failure      404 {string} string "Session not found"
//	@Failure      409 {string} string "Integration with this name already exists"
//	@Router       /api/v1/sessions/{session_id}/integrations [post]
func (h *IntegrationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var data CreateIntegrationRequest
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	integration, err := database.CreateIntegration(scope.DB, session, database.IntegrationSpec{
		Type:   data.Type,
		Name:   data.Name,
		Status: data.Status,
		Config: data.Config,
	})
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	view := api.NewIntegrationView(session, *integration)
	h.publish(scope.User.UUID, session.UUID, view)
	util.WriteJSON(w, http.StatusCreated, view)
}
