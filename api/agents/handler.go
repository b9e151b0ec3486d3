package agents

import (
	"net/http"

	"backend/agents"
	"backend/server/util"
)

type AgentsHandler struct {
	Registry *agents.Registry
}

// List agent templates
//
//	@Summary      List agents
//	@Tags         agents
//	@Produce      json
//	@Success      200  {object}  map[string][]agents.Template
//	@Router       /api/v1/agents [get]
func (h *AgentsHandler) List(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, map[string][]agents.Template{"agents": h.Registry.List()})
}

// Get one agent template
//
//	@Summary      Get an agent
//	@Tags         agents
//	@Produce      json
//	@Param        agent_type path string true "Agent type"
//	@Success      200  {object}  agents.Template
//	@Failure      404  {string}  string  "Agent not found"
//	@Router       /api/v1/agents/{agent_type} [get]
func (h *AgentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	template, ok := h.Registry.Get(r.PathValue("agent_type"))
	if !ok {
		http.Error(w, "Agent not found", http.StatusNotFound)
		return
	}
	util.WriteJSON(w, http.StatusOK, template)
}
