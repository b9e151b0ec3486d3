package websocket

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

type Subscriber struct {
	msgs      chan []byte
	UserUUID  string
	closeSlow func()
}

// WebSocketHandler fans session events out to the connected clients of
// each user.
type WebSocketHandler struct {
	subscriberMessageBuffer int
	MessageHandler          *Messages
	log                     *zap.Logger
	subscribersMu           sync.Mutex
	subscribers             map[*Subscriber]struct{}
}

func NewWebSocketHandler(log *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		subscriberMessageBuffer: 16,
		MessageHandler:          &Messages{},
		log:                     log,
		subscribers:             make(map[*Subscriber]struct{}),
	}
}

func (cs *WebSocketHandler) SubscriberCount(userUUID string) int {
	cs.subscribersMu.Lock()
	defer cs.subscribersMu.Unlock()

	n := 0
	for s := range cs.subscribers {
		if s.UserUUID == userUUID {
			n++
		}
	}
	return n
}

// PublishInChannel never blocks. A subscriber whose buffer is full gets
// disconnected.
func (cs *WebSocketHandler) PublishInChannel(msg []byte, receiverUUID string) {
	cs.subscribersMu.Lock()
	defer cs.subscribersMu.Unlock()

	for s := range cs.subscribers {
		if s.UserUUID != receiverUUID {
			continue
		}
		select {
		case s.msgs <- msg:
		default:
			go s.closeSlow()
		}
	}
}

func (cs *WebSocketHandler) addSubscriber(s *Subscriber) {
	cs.subscribersMu.Lock()
	cs.subscribers[s] = struct{}{}
	cs.subscribersMu.Unlock()
}

func (cs *WebSocketHandler) deleteSubscriber(s *Subscriber) {
	cs.subscribersMu.Lock()
	delete(cs.subscribers, s)
	cs.subscribersMu.Unlock()
}

func writeTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.Write(ctx, websocket.MessageText, msg)
}

func (cs *WebSocketHandler) SubscribeChannel(w http.ResponseWriter, r *http.Request, userUUID string) error {
	var mu sync.Mutex
	var c *websocket.Conn
	var closed bool
	s := &Subscriber{
		UserUUID: userUUID,
		msgs:     make(chan []byte, cs.subscriberMessageBuffer),
		closeSlow: func() {
			mu.Lock()
			defer mu.Unlock()
			closed = true
			if c != nil {
				c.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with messages")
			}
		},
	}
	cs.addSubscriber(s)
	defer cs.deleteSubscriber(s)

	c2, err := websocket.Accept(w, r, nil)
	if err != nil {
		return err
	}
	mu.Lock()
	if closed {
		mu.Unlock()
		return net.ErrClosed
	}
	c = c2
	mu.Unlock()
	defer c.CloseNow()

	ctx := c.CloseRead(r.Context())
	cs.log.Debug("websocket connected", zap.String("user", userUUID))

	for {
		select {
		case msg := <-s.msgs:
			if err := writeTimeout(ctx, time.Second*5, c, msg); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
