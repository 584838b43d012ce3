package chat

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"voxroom/internal/pkg/metrics"
)

const (
	// timeout for writing one frame to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a pong before it considers the peer gone.
	pongWait = 60 * time.Second

	// frequency of server pings. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maximum size of an inbound frame. Large enough for SDP offers with many candidates.
	maxMessageSize = 64 * 1024

	// number of outbound frames queued per connection before frames are dropped.
	sendQueueSize = 256

	// sustained inbound frames per second allowed per connection, and the burst on top of it.
	// ICE gathering produces short bursts of candidates.
	inboundRate  = 40
	inboundBurst = 120
)

// connState is the lifecycle state of a connection.
type connState int

const (
	stateConnected connState = iota
	stateInRoom
	stateDisconnected
)

func (s connState) String() string {
	switch s {
	case stateConnected:
		return "connected"
	case stateInRoom:
		return "in_room"
	case stateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Client is one WebSocket connection.
//
// The transport fields are used by the pump goroutines. room, username and state belong
// to the Hub goroutine and must not be touched elsewhere.
type Client struct {
	// ID is assigned when the client is created and never changes.
	ID ConnID

	hub  *Hub
	conn *websocket.Conn

	// send queues encoded frames for WritePump. Only the Hub closes it.
	send chan []byte

	inbound *rate.Limiter

	logger zerolog.Logger

	state    connState
	room     string
	username string
}

// ReadPump reads frames and hands them to the Hub until the connection fails or closes.
// It then unregisters the client, which runs the implicit leave.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		if !c.inbound.Allow() {
			c.logger.Warn().Msg("Inbound rate limit exceeded, dropping frame")
			c.hub.metrics.Dropped(metrics.DropRateLimited)
			continue
		}

		if !c.hub.submit(c, frame) {
			return
		}
	}
}

func (c *Client) cleanupOnDisconnect() {
	c.logger.Debug().Msg("Client connection cleanup starting")

	c.hub.unregisterClient(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump writes queued frames and periodic pings until the send queue is closed
// or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame, or a close frame when the queue was closed.
// It reports whether WritePump should continue.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Info().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Info().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// enqueue queues an encoded frame without blocking. A full queue drops the frame;
// a connection that stopped reading is cleaned up by its own close handler.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping message")
		c.hub.metrics.Dropped(metrics.DropQueueFull)
		return false
	}
}

// sendMessage encodes v and queues it.
func (c *Client) sendMessage(v any) bool {
	frame, err := json.Marshal(v)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling message for client")
		return false
	}
	return c.enqueue(frame)
}

// sendError reports a failed request to the client as a human-readable message.
func (c *Client) sendError(message string) {
	c.sendMessage(errorMessage{Type: TypeError, Message: message})
}

func (c *Client) enterRoom(room, username string) {
	c.state = stateInRoom
	c.room = room
	c.username = username
}

func (c *Client) exitRoom() {
	c.state = stateConnected
	c.room = ""
}
