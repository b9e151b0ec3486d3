package websocket

import (
	"encoding/json"
)

type EventType string

const (
	MessageAppended      EventType = "message_appended"
	ContextExtracted     EventType = "context_extracted"
	AutomationsGenerated EventType = "automations_generated"
	IntegrationChanged   EventType = "integration_changed"
	SessionUpdated       EventType = "session_updated"
	SessionDeleted       EventType = "session_deleted"
)

// SessionEvent is what subscribers receive. Events are only ever sent to the
// owner of the session they describe.
type SessionEvent struct {
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

type Messages struct{}

func (m *Messages) Encode(eventType EventType, sessionUUID string, payload interface{}) []byte {
	encMsg, _ := json.Marshal(SessionEvent{
		Type:      eventType,
		SessionID: sessionUUID,
		Payload:   payload,
	})
	return encMsg
}

// SendSessionEvent is a no-op on a nil handler, so handlers built without a
// websocket hub keep working.
func (m *Messages) SendSessionEvent(ch *WebSocketHandler, ownerUUID string, eventType EventType, sessionUUID string, payload interface{}) {
	if ch == nil {
		return
	}
	ch.PublishInChannel(m.Encode(eventType, sessionUUID, payload), ownerUUID)
}
