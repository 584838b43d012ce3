package chat

import (
	"encoding/json"

	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/logx"
	"voxroom/internal/pkg/metrics"
)

// handlerFunc handles one decoded message kind. raw is the complete frame.
type handlerFunc func(h *Hub, c *Client, raw []byte) *errs.CustomError

var handlers = map[MessageType]handlerFunc{
	TypeCreateRoom:       handleCreateRoom,
	TypeJoin:             handleJoin,
	TypeLeave:            handleLeave,
	TypeOffer:            handleRelay,
	TypeAnswer:           handleRelay,
	TypeICECandidate:     handleRelay,
	TypeUserState:        handleUserState,
	TypeChatMessage:      handleChatMessage,
	TypeUpdateProfile:    handleUpdateProfile,
	TypeScreenShareStart: handleScreenShare,
	TypeScreenShareStop:  handleScreenShare,
}

// requestKinds are the kinds whose failures are reported back to the sender.
// Every other failure is dropped silently.
var requestKinds = map[MessageType]bool{
	TypeCreateRoom: true,
	TypeJoin:       true,
}

// dispatch routes one inbound frame. Malformed frames and unknown kinds are logged and ignored;
// the connection stays usable.
func (h *Hub) dispatch(c *Client, raw []byte) {
	if current, ok := h.clients[c.ID]; !ok || current != c {
		return
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn().Err(err).Int("frame_bytes", len(raw)).Msg("Client sent invalid JSON")
		h.metrics.Dropped(metrics.DropMalformed)
		return
	}

	handler, ok := handlers[env.Type]
	if !ok {
		c.logger.Warn().Str(logx.FieldMsgType, string(env.Type)).Msg("Client sent unsupported message type")
		h.metrics.Dropped(metrics.DropUnknownType)
		return
	}

	h.metrics.Inbound(string(env.Type))

	if err := handler(h, c, raw); err != nil {
		h.reject(c, env.Type, err)
	}
}

// reject applies the error policy: request failures go back to the sender as an error
// message, everything else is dropped.
func (h *Hub) reject(c *Client, kind MessageType, err *errs.CustomError) {
	if requestKinds[kind] && err.Code != errs.ErrMalformedMessage {
		c.logger.Info().Str(logx.FieldMsgType, string(kind)).Int("code", err.Code).Msg("Request rejected")
		c.sendError(err.Message)
		return
	}

	c.logger.Debug().Str(logx.FieldMsgType, string(kind)).Int("code", err.Code).Msg("Message dropped")
	h.metrics.Dropped(dropReason(err.Code))
}

func dropReason(code int) string {
	switch code {
	case errs.ErrMalformedMessage:
		return metrics.DropMalformed
	case errs.ErrNotInRoom:
		return metrics.DropNotInRoom
	case errs.ErrUnknownRelayTarget:
		return metrics.DropRelayTarget
	case errs.ErrInvalidChatText:
		return metrics.DropChatText
	}
	return metrics.DropMalformed
}

// decode unmarshals the frame into dst, mapping failures to ErrMalformedMessage.
func decode(raw []byte, dst any) *errs.CustomError {
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewError(errs.ErrMalformedMessage)
	}
	return nil
}

func handleCreateRoom(h *Hub, c *Client, raw []byte) *errs.CustomError {
	var req createRoomRequest
	if err := decode(raw, &req); err != nil {
		return err
	}

	room, err := h.createRoom(req.Name)
	if err != nil {
		return err
	}

	c.logger.Info().Str(logx.FieldRoom, room.Name).Msg("Room created by client.")
	return nil
}

func handleJoin(h *Hub, c *Client, raw []byte) *errs.CustomError {
	var req joinRequest
	if err := decode(raw, &req); err != nil {
		return err
	}
	return h.join(c, req.Room, req.Username, req.Avatar)
}

func handleLeave(h *Hub, c *Client, _ []byte) *errs.CustomError {
	h.leave(c)
	return nil
}

func handleRelay(h *Hub, c *Client, raw []byte) *errs.CustomError {
	return h.relay(c, raw)
}

func handleUserState(h *Hub, c *Client, raw []byte) *errs.CustomError {
	var req userStateRequest
	if err := decode(raw, &req); err != nil {
		return err
	}
	return h.setUserState(c, req.Muted, req.Deafened)
}

func handleChatMessage(h *Hub, c *Client, raw []byte) *errs.CustomError {
	var req chatRequest
	if err := decode(raw, &req); err != nil {
		return err
	}
	return h.postChat(c, req.Text)
}

func handleUpdateProfile(h *Hub, c *Client, raw []byte) *errs.CustomError {
	var req updateProfileRequest
	if err := decode(raw, &req); err != nil {
		return err
	}
	return h.updateProfile(c, req.Username, req.Avatar)
}

func handleScreenShare(h *Hub, c *Client, raw []byte) *errs.CustomError {
	var env envelope
	if err := decode(raw, &env); err != nil {
		return err
	}
	return h.setScreenShare(c, env.Type == TypeScreenShareStart)
}
