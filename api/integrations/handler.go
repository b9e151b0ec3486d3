package integrations

import (
	"backend/api/websocket"
)

// IntegrationsHandler manages the integrations attached to a session by hand.
// Extraction creates them in bulk through the extractor instead.
type IntegrationsHandler struct {
	Events *websocket.WebSocketHandler
}

func (h *IntegrationsHandler) publish(ownerUUID string, sessionUUID string, payload interface{}) {
	if h.Events == nil {
		return
	}
	h.Events.MessageHandler.SendSessionEvent(h.Events, ownerUUID, websocket.IntegrationChanged, sessionUUID, payload)
}
