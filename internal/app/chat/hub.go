package chat

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/logx"
	"voxroom/internal/pkg/metrics"
)

// inboundFrame is a raw frame read from a client.
type inboundFrame struct {
	client *Client
	data   []byte
}

// Hub is the single coordinator of the signaling server. It owns the connection registry and
// the room directory. Run processes registrations, frames and queries one at a time, so each
// message is fully handled, all resulting sends included, before the next one starts.
type Hub struct {
	clients   map[ConnID]*Client
	directory *Directory

	lastID atomic.Uint64

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame
	calls      chan func()

	// quit asks Run to stop; done is closed once Run has returned.
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	metrics *metrics.Recorder
	logger  zerolog.Logger
}

// NewHub creates a Hub whose directory holds only the default room. Call Run to start it.
func NewHub(recorder *metrics.Recorder) *Hub {
	h := &Hub{
		clients:    make(map[ConnID]*Client),
		directory:  NewDirectory(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, 256),
		calls:      make(chan func()),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		metrics:    recorder,
		logger:     logx.Component("hub"),
	}

	h.refreshGauges()

	return h
}

// NewClient wraps a WebSocket connection and assigns it the next connection id.
func (h *Hub) NewClient(conn *websocket.Conn) *Client {
	id := ConnID(h.lastID.Add(1))

	remoteAddr := ""
	if conn != nil {
		remoteAddr = conn.RemoteAddr().String()
	}

	return &Client{
		ID:      id,
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendQueueSize),
		inbound: rate.NewLimiter(inboundRate, inboundBurst),
		logger:  logx.ForConnection(h.logger, uint64(id), remoteAddr),
		state:   stateConnected,
	}
}

// Run is the Hub event loop. It returns after Shutdown.
func (h *Hub) Run() {
	defer close(h.done)
	defer h.closeAll()

	h.logger.Info().Str("default_room", DefaultRoomName).Msg("Hub started.")

	for {
		select {
		case client := <-h.register:
			h.accept(client)

		case client := <-h.unregister:
			h.disconnect(client)

		case frame := <-h.inbound:
			h.dispatch(frame.client, frame.data)

		case call := <-h.calls:
			call()

		case <-h.quit:
			h.logger.Info().Msg("Hub stop requested.")
			return
		}
	}
}

// Shutdown stops Run and closes every client's send queue, which makes each WritePump send a
// close frame. It waits for Run to return or for ctx to expire.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.stopOnce.Do(func() { close(h.quit) })

	select {
	case <-h.done:
		h.logger.Info().Msg("Hub shutdown complete.")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) closeAll() {
	for id, client := range h.clients {
		delete(h.clients, id)
		client.state = stateDisconnected
		close(client.send)
	}
	h.refreshGauges()
}

// Register hands a new client to the Hub, which sends it its id and the room snapshot.
func (h *Hub) Register(client *Client) *errs.CustomError {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return errs.NewError(errs.ErrShuttingDown)
	}
}

// submit forwards a frame to the Hub. It returns false once the Hub has stopped.
func (h *Hub) submit(client *Client, data []byte) bool {
	select {
	case h.inbound <- inboundFrame{client: client, data: data}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// do runs fn on the Hub goroutine and waits for it to finish.
func (h *Hub) do(ctx context.Context, fn func()) *errs.CustomError {
	finished := make(chan struct{})

	select {
	case h.calls <- func() { fn(); close(finished) }:
	case <-h.done:
		return errs.NewError(errs.ErrShuttingDown)
	case <-ctx.Done():
		return errs.NewError(errs.ErrUnknown, ctx.Err())
	}

	<-finished
	return nil
}

// Rooms returns the current room snapshot, as sent in room-update.
func (h *Hub) Rooms(ctx context.Context) ([]RoomSummary, *errs.CustomError) {
	var rooms []RoomSummary
	if err := h.do(ctx, func() { rooms = h.snapshot() }); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom creates a room on behalf of a caller outside any connection, for example the HTTP API.
func (h *Hub) CreateRoom(ctx context.Context, name string) (RoomSummary, *errs.CustomError) {
	var (
		summary   RoomSummary
		createErr *errs.CustomError
	)

	err := h.do(ctx, func() {
		var room *Room
		if room, createErr = h.createRoom(name); createErr == nil {
			summary = room.summary()
		}
	})
	if err != nil {
		return RoomSummary{}, err
	}

	return summary, createErr
}

// accept adds a client to the registry and sends it its identity and the room snapshot.
func (h *Hub) accept(client *Client) {
	h.clients[client.ID] = client
	client.state = stateConnected

	client.sendMessage(yourIDMessage{Type: TypeYourID, ID: client.ID})
	client.sendMessage(roomUpdateMessage{Type: TypeRoomUpdate, Rooms: h.snapshot()})

	h.refreshGauges()

	client.logger.Info().Int("connections", len(h.clients)).Msg("Client connected.")
}

// disconnect is the close handler: it removes the client from the registry, runs the same
// leave used by an explicit leave message, and closes the send queue.
func (h *Hub) disconnect(client *Client) {
	if current, ok := h.clients[client.ID]; !ok || current != client {
		return
	}

	delete(h.clients, client.ID)
	h.leave(client)

	client.state = stateDisconnected
	close(client.send)

	h.refreshGauges()

	client.logger.Info().
		Str("username", client.username).
		Int("connections", len(h.clients)).
		Msg("Client disconnected.")
}

func (h *Hub) refreshGauges() {
	h.metrics.SetConnections(len(h.clients))
	h.metrics.SetRooms(h.directory.Len())
	h.metrics.SetMembers(h.directory.Seated())
}
