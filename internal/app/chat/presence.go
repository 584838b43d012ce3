package chat

import (
	"encoding/json"

	"voxroom/internal/pkg/logx"
)

// everyone is never a seated id; fanOut with it as the exclusion reaches all members.
const everyone ConnID = 0

// snapshot summarizes every room in creation order.
func (h *Hub) snapshot() []RoomSummary {
	rooms := h.directory.Rooms()
	out := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, room.summary())
	}
	return out
}

// broadcastPresence sends the complete room snapshot to every connection, seated or not.
// Clients replace their room list wholesale, so repeated calls are harmless.
func (h *Hub) broadcastPresence() {
	frame, err := json.Marshal(roomUpdateMessage{Type: TypeRoomUpdate, Rooms: h.snapshot()})
	if err != nil {
		h.logger.Error().Err(err).Msg("Error marshaling room-update.")
		return
	}

	for _, client := range h.clients {
		client.enqueue(frame)
	}

	h.metrics.Broadcast()
	h.refreshGauges()
}

// fanOut encodes v once and queues it for every member of room except the member seated
// under except.
func (h *Hub) fanOut(room *Room, except ConnID, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Str(logx.FieldRoom, room.Name).Msg("Error marshaling room message.")
		return
	}

	for _, m := range room.Members() {
		if m.ID == except {
			continue
		}
		if client, ok := h.clients[m.ID]; ok {
			client.enqueue(frame)
		}
	}
}
