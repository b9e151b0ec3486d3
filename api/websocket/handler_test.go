package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestPublishOnlyReachesReceiver(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewWebSocketHandler(zap.NewNop())
	alice := &Subscriber{UserUUID: "alice", msgs: make(chan []byte, 1), closeSlow: func() {}}
	bob := &Subscriber{UserUUID: "bob", msgs: make(chan []byte, 1), closeSlow: func() {}}
	hub.addSubscriber(alice)
	hub.addSubscriber(bob)
	assert.Equal(t, 1, hub.SubscriberCount("alice"))

	hub.MessageHandler.SendSessionEvent(hub, "alice", MessageAppended, "session-1", map[string]string{"role": "user"})

	require.Len(t, alice.msgs, 1)
	assert.Empty(t, bob.msgs)

	var event SessionEvent
	require.NoError(t, json.Unmarshal(<-alice.msgs, &event))
	assert.Equal(t, MessageAppended, event.Type)
	assert.Equal(t, "session-1", event.SessionID)

	hub.deleteSubscriber(alice)
	hub.deleteSubscriber(bob)
	assert.Zero(t, hub.SubscriberCount("alice"))
}

func TestSlowSubscriberIsClosed(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewWebSocketHandler(zap.NewNop())
	closed := make(chan struct{})
	slow := &Subscriber{
		UserUUID:  "alice",
		msgs:      make(chan []byte, 1),
		closeSlow: func() { close(closed) },
	}
	hub.addSubscriber(slow)
	defer hub.deleteSubscriber(slow)

	hub.PublishInChannel([]byte("one"), "alice")
	hub.PublishInChannel([]byte("two"), "alice")
	<-closed
}

func TestSendSessionEventOnNilHub(t *testing.T) {
	var hub *WebSocketHandler
	assert.NotPanics(t, func() {
		(&Messages{}).SendSessionEvent(hub, "alice", SessionDeleted, "s", nil)
	})
}
