package sessions

import (
	"net/http"

	"backend/api"
	"backend/api/websocket"
	"backend/database"
	"backend/server/util"
)

type ListMessagesResponse struct {
	Messages []api.MessageView `json:"messages"`
}

type AppendMessageRequest struct {
	Role     database.Role          `json:"role"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}

type AppendMessageResponse struct {
	MessageID string `json:"messageId"`
}

// List messages of a session
//
//	@Summary      List messages
//	@Description  Oldest first, no pagination
//	@Tags         sessions
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Success      200  {object}  ListMessagesResponse
//	@Failure      404  {string}  string  "Session not found"
//	@Router       /api/v1/sessions/{session_id}/messages [get]
func (h *SessionsHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}
	messages, err := database.ListMessages(scope.DB, session)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	util.WriteJSON(w, http.StatusOK, ListMessagesResponse{Messages: api.NewMessageViews(session, messages)})
}

// Append a message to a session
//
//	@Summary      Append a message
//	@Tags         sessions
//	@Accept       json
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Param        request body AppendMessageRequest true "Message"
//	@Success      201  {object}  AppendMessageResponse
//	@Failure      400  {string}  string  "Invalid role"
//	@Failure      404  {string}  string  "Session not found"
//	@Router       /api/v1/sessions/{session_id}/messages [post]
func (h *SessionsHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var data AppendMessageRequest
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if !data.Role.Valid() {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}
	message, err := database.AppendMessage(scope.DB, session, data.Role, data.Content, data.Metadata)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	h.publish(scope.User.UUID, websocket.MessageAppended, session.UUID, api.NewMessageViews(session, []database.SessionMessage{*message})[0])
	util.WriteJSON(w, http.StatusCreated, AppendMessageResponse{MessageID: message.UUID})
}
