package chat

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"voxroom/internal/app/user"
	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/logx"
	"voxroom/internal/pkg/randx"
)

// MaxChatRunes bounds the length of a chat message, in characters.
const MaxChatRunes = 500

// setUserState stores the caller's mute flags and tells the other members.
func (h *Hub) setUserState(c *Client, muted, deafened bool) *errs.CustomError {
	room, member := h.currentMember(c)
	if member == nil {
		return errs.NewError(errs.ErrNotInRoom)
	}

	member.Muted = muted
	member.Deafened = deafened

	h.fanOut(room, c.ID, userStateMessage{Type: TypeUserState, ID: c.ID, Muted: muted, Deafened: deafened})

	return nil
}

// updateProfile changes the caller's display name and/or avatar. Absent fields keep their
// current value. Chat history keeps the names recorded at send time.
func (h *Hub) updateProfile(c *Client, username *string, avatar json.RawMessage) *errs.CustomError {
	room, member := h.currentMember(c)
	if member == nil {
		return errs.NewError(errs.ErrNotInRoom)
	}

	if username != nil {
		member.Profile.Username = user.NormalizeUsername(*username)
		c.username = member.Profile.Username
	}

	if trimmed := bytes.TrimSpace(avatar); len(trimmed) > 0 {
		member.Profile.Avatar = user.NormalizeAvatar(trimmed)
	}

	h.fanOut(room, c.ID, profileUpdatedMessage{Type: TypeProfileUpdated, ID: c.ID, Profile: member.Profile})
	h.broadcastPresence()

	return nil
}

// setScreenShare records whether the caller is sharing its screen and tells the other members.
func (h *Hub) setScreenShare(c *Client, sharing bool) *errs.CustomError {
	room, member := h.currentMember(c)
	if member == nil {
		return errs.NewError(errs.ErrNotInRoom)
	}

	member.ScreenSharing = sharing

	kind := TypeScreenShareStop
	if sharing {
		kind = TypeScreenShareStart
	}

	h.fanOut(room, c.ID, screenShareMessage{Type: kind, ID: c.ID, Username: member.Profile.Username})

	return nil
}

// postChat appends a message to the caller's room log and sends it to every member,
// the sender included.
func (h *Hub) postChat(c *Client, text string) *errs.CustomError {
	room, member := h.currentMember(c)
	if member == nil {
		return errs.NewError(errs.ErrNotInRoom)
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n == 0 || n > MaxChatRunes {
		return errs.NewError(errs.ErrInvalidChatText, MaxChatRunes)
	}

	msg := ChatMessage{
		ID:        randx.MessageID(),
		From:      c.ID,
		Username:  member.Profile.Username,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}

	if room.History().Append(msg) {
		c.logger.Debug().Str(logx.FieldRoom, room.Name).Msg("Chat history full, oldest message evicted.")
	}

	h.fanOut(room, everyone, chatMessageEvent{Type: TypeChatMessage, ChatMessage: msg})

	return nil
}
