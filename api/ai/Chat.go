package ai

import (
	"errors"
	"net/http"

	"backend/llm"
	"backend/server/util"

	"go.uber.org/zap"
)

type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
	Model    string        `json:"model"`
}

// Chat streams a completion as plain text
//
//	@Summary      Stream a chat completion
//	@Description  The response body is the assistant text, flushed as it arrives
//	@Tags         ai
//	@Accept       json
//	@Produce      plain
//	@Param        request body ChatRequest true "Conversation"
//	@Success      200  {string}  string  "completion text"
//	@Failure      400  {string}  string  "Messages array is required"
//	@Failure      500  {string}  string  "Model provider not configured"
//	@Failure      502  {string}  string  "Failed to generate response"
//	@Router       /api/v1/ai/chat [post]
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var data ChatRequest
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(data.Messages) == 0 {
		http.Error(w, "Messages array is required", http.StatusBadRequest)
		return
	}
	model := data.Model
	if model == "" {
		model = h.Model
	}

	chunks, errs := h.LLM.Stream(r.Context(), llm.CompletionRequest{Model: model, Messages: data.Messages})

	// The status line is only decided once the provider produced something.
	first, ok := <-chunks
	if !ok {
		if err := <-errs; err != nil {
			if errors.Is(err, llm.ErrMissingAPIKey) {
				http.Error(w, "Model provider not configured", http.StatusInternalServerError)
				return
			}
			scope.Log.Warn("chat completion failed", zap.String("model", model), zap.Error(err))
			http.Error(w, "Failed to generate response", http.StatusBadGateway)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	write := func(s string) bool {
		if _, err := w.Write([]byte(s)); err != nil {
			return false
		}
		if flusher != nil {
			flusher.Flush()
		}
		return true
	}

	if ok && !write(first) {
		return
	}
	for chunk := range chunks {
		if !write(chunk) {
			return
		}
	}
	if err := <-errs; err != nil {
		scope.Log.Warn("chat stream interrupted", zap.String("model", model), zap.Error(err))
	}
}
