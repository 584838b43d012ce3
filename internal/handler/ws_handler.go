/*
Package handler wires the HTTP surface: the WebSocket signaling endpoint, the room API,
health and metrics.
*/
package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/limiter"
	"voxroom/internal/pkg/logx"
	"voxroom/internal/pkg/resp"
)

// HandleWebSocket upgrades the request, registers the connection with the hub and runs its
// pumps. The handler returns when the connection closes.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rateLimiter.Allow(r) {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "ip", logx.AnonymizeIP(r.RemoteAddr))
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := deps.Hub.NewClient(conn)

		if regErr := deps.Hub.Register(client); regErr != nil {
			logx.Warn("WebSocket connection dropped: hub unavailable.", logx.FieldConnID, uint64(client.ID))
			rejectConnection(conn, uint64(client.ID), regErr.Message)
			return
		}

		go client.WritePump()

		client.ReadPump()
	}
}

// rejectConnection sends a try-again-later close frame and closes the socket.
func rejectConnection(conn *websocket.Conn, connID uint64, reason string) {
	logger := logx.ForConnection(logx.Component("ws"), connID, conn.RemoteAddr().String())

	closeFrame := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, reason)
	if err := conn.WriteControl(websocket.CloseMessage, closeFrame, time.Now().Add(time.Second)); err != nil {
		logger.Debug().Err(err).Msg("Error writing close message to rejected connection")
	}

	if err := conn.Close(); err != nil {
		logger.Debug().Err(err).Msg("Rejected connection close error")
	}
}
