package sessions

import (
	"net/http"

	"backend/api"
	"backend/api/websocket"
	"backend/database"
	"backend/server/util"

	"go.uber.org/zap"
)

type CreateSessionRequest struct {
	AgentType      database.AgentType `json:"agentType"`
	Title          string             `json:"title"`
	Description    *string            `json:"description"`
	InitialMessage string             `json:"initialMessage"`
}

type CreateSessionResponse struct {
	SessionID string             `json:"sessionId"`
	AgentType database.AgentType `json:"agentType"`
}

// Create a session
//
//	@Summary      Create a session
//	@Description  An initial message, when given, is stored as the first user message
//	@Tags         sessions
//	@Accept       json
//	@Produce      json
//	@Param        request body CreateSessionRequest true "Session"
//	@Success      201  {object}  CreateSessionResponse
//	@Failure      400  {string}  string  "Invalid agent type"
//	@Router       /api/v1/sessions [post]
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var data CreateSessionRequest
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if !data.AgentType.Valid() {
		http.Error(w, "Invalid agent type", http.StatusBadRequest)
		return
	}

	session, err := database.CreateAutomationSession(
		scope.DB, scope.User, data.AgentType, data.Title, data.Description, data.InitialMessage,
	)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	scope.Log.Info("session created", zap.String("session", session.UUID), zap.String("agent", string(session.AgentType)))
	h.publish(scope.User.UUID, websocket.SessionUpdated, session.UUID, api.NewSessionView(*session))

	util.WriteJSON(w, http.StatusCreated, CreateSessionResponse{
		SessionID: session.UUID,
		AgentType: session.AgentType,
	})
}
