package ai

import (
	"net/http"

	"backend/llm"
	"backend/server/util"
)

// ListModels lists the chat models of the active provider
//
//	@Summary      List chat models
//	@Tags         ai
//	@Produce      json
//	@Success      200  {object}  map[string][]llm.ModelInfo
//	@Router       /api/v1/ai/models [get]
func (h *AIHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	models := h.Models
	if models == nil {
		models = []llm.ModelInfo{}
	}
	util.WriteJSON(w, http.StatusOK, map[string][]llm.ModelInfo{"models": models})
}
