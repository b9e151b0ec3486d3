package sessions

import (
	"backend/api/websocket"
	"backend/extractor"
	"backend/generator"
)

// SessionsHandler serves the automation session endpoints. Every operation
// resolves the session through the caller's ownership first.
type SessionsHandler struct {
	Extraction *extractor.Service
	Generation *generator.Service
	Events     *websocket.WebSocketHandler
}

func (h *SessionsHandler) publish(ownerUUID string, eventType websocket.EventType, sessionUUID string, payload interface{}) {
	if h.Events == nil {
		return
	}
	h.Events.MessageHandler.SendSessionEvent(h.Events, ownerUUID, eventType, sessionUUID, payload)
}
