package websocket

import (
	"context"
	"errors"
	"net/http"

	"backend/server/util"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Connect upgrades to a websocket that streams the caller's session events.
//
//	@Summary      Subscribe to session events
//	@Tags         websocket
//	@Success      101
//	@Failure      401  {string}  string  "Unauthorized"
//	@Router       /ws/connect [get]
func (ws *WebSocketHandler) Connect(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err = ws.SubscribeChannel(w, r, scope.User.UUID)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return
	}
	ws.log.Debug("websocket closed", zap.String("user", scope.User.UUID), zap.Error(err))
}
