package chat

import (
	"encoding/json"

	"voxroom/internal/pkg/errs"
)

// relay forwards an offer, answer or ice-candidate frame to the member named by its "to"
// field. Only the routing fields are read; everything else is passed through as raw JSON,
// with "from" set to the sender.
func (h *Hub) relay(c *Client, raw []byte) *errs.CustomError {
	room := h.currentRoom(c)
	if room == nil {
		return errs.NewError(errs.ErrNotInRoom)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return errs.NewError(errs.ErrMalformedMessage)
	}

	var to ConnID
	if err := json.Unmarshal(fields["to"], &to); err != nil {
		return errs.NewError(errs.ErrMalformedMessage)
	}

	if _, seated := room.Member(to); !seated {
		return errs.NewError(errs.ErrUnknownRelayTarget)
	}

	target, ok := h.clients[to]
	if !ok {
		return errs.NewError(errs.ErrUnknownRelayTarget)
	}

	from, err := json.Marshal(c.ID)
	if err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}
	fields["from"] = from

	frame, err := json.Marshal(fields)
	if err != nil {
		return errs.NewError(errs.ErrMalformedMessage)
	}

	target.enqueue(frame)

	return nil
}

// currentRoom returns the room c is seated in, or nil.
func (h *Hub) currentRoom(c *Client) *Room {
	if c.state != stateInRoom {
		return nil
	}
	return h.directory.Get(c.room)
}

// currentMember returns c's room and seat, or nil values when c is not seated.
func (h *Hub) currentMember(c *Client) (*Room, *Member) {
	room := h.currentRoom(c)
	if room == nil {
		return nil, nil
	}

	member, ok := room.Member(c.ID)
	if !ok {
		return nil, nil
	}

	return room, member
}
