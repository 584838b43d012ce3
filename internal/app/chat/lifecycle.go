package chat

import (
	"encoding/json"
	"strings"

	"voxroom/internal/app/user"
	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/logx"
)

// createRoom adds an empty room and refreshes presence. It does not seat anybody.
func (h *Hub) createRoom(name string) (*Room, *errs.CustomError) {
	room, err := h.directory.Create(name)
	if err != nil {
		return nil, err
	}

	h.logger.Info().Str(logx.FieldRoom, room.Name).Int("rooms", h.directory.Len()).Msg("Room created.")
	h.broadcastPresence()

	return room, nil
}

// join seats c in the named room. A connection already seated elsewhere leaves that room
// first, inside the same handling turn, so no observer sees it in two rooms.
func (h *Hub) join(c *Client, roomName, username string, avatar json.RawMessage) *errs.CustomError {
	target := h.directory.Get(strings.TrimSpace(roomName))
	if target == nil {
		return errs.NewError(errs.ErrRoomNotFound)
	}

	// Re-joining the current room reuses the caller's own seat and never collects the room.
	rejoin := c.state == stateInRoom && c.room == target.Name

	if !rejoin && target.IsFull() {
		return errs.NewError(errs.ErrRoomFull, target.Len(), RoomCapacity)
	}

	if c.state == stateInRoom {
		h.leaveRoom(c, !rejoin)
	}

	peers := make([]PeerInfo, 0, target.Len())
	for _, m := range target.Members() {
		peers = append(peers, m.peerInfo())
	}

	member := &Member{ID: c.ID, Profile: user.NewProfile(username, avatar)}
	target.add(member)
	c.enterRoom(target.Name, member.Profile.Username)

	c.sendMessage(joinedMessage{Type: TypeJoined, Room: target.Name, Peers: peers})

	if history := target.History().Replay(); len(history) > 0 {
		c.sendMessage(chatHistoryMessage{Type: TypeChatHistory, Messages: history})
	}

	h.fanOut(target, c.ID, peerJoinedMessage{Type: TypePeerJoined, ID: c.ID, Profile: member.Profile})

	roomLogger := logx.InRoom(c.logger, target.Name)
	roomLogger.Info().
		Str("username", member.Profile.Username).
		Int("members", target.Len()).
		Msg("Client joined room.")

	h.broadcastPresence()

	return nil
}

// leave is the single exit path used by the leave message and by the close handler.
// It is a no-op for a connection that occupies no room.
func (h *Hub) leave(c *Client) {
	if h.leaveRoom(c, true) {
		h.broadcastPresence()
	}
}

// leaveRoom removes c from its room, tells the remaining members, and, when collect is set,
// deletes the room if it became empty. It does not refresh presence and reports whether c
// was seated.
func (h *Hub) leaveRoom(c *Client, collect bool) bool {
	if c.state != stateInRoom {
		return false
	}

	roomName := c.room
	c.exitRoom()

	room := h.directory.Get(roomName)
	if room == nil || !room.remove(c.ID) {
		c.logger.Warn().Str(logx.FieldRoom, roomName).Msg("Client referenced a room it was not seated in.")
		return true
	}

	h.fanOut(room, c.ID, peerLeftMessage{Type: TypePeerLeft, ID: c.ID})

	c.logger.Info().Str(logx.FieldRoom, roomName).Int("members", room.Len()).Msg("Client left room.")

	if collect && h.directory.collect(roomName) {
		h.logger.Info().Str(logx.FieldRoom, roomName).Msg("Empty room removed.")
	}

	return true
}
