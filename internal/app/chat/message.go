/*
Package chat implements the signaling and room-coordination core.

This file defines the wire protocol: every WebSocket frame is a flat JSON object whose "type"
field selects the message kind. Relay kinds (offer, answer, ice-candidate) carry additional
fields that are forwarded untouched.
*/
package chat

import (
	"encoding/json"

	"voxroom/internal/app/user"
)

// ConnID identifies a connection for the lifetime of the process. Ids start at 1 and never repeat.
type ConnID uint64

// MessageType is the value of the "type" field of a frame.
type MessageType string

// Client -> server kinds.
const (
	TypeCreateRoom    MessageType = "create-room"
	TypeJoin          MessageType = "join"
	TypeLeave         MessageType = "leave"
	TypeUpdateProfile MessageType = "update-profile"
)

// Kinds used in both directions.
const (
	TypeOffer            MessageType = "offer"
	TypeAnswer           MessageType = "answer"
	TypeICECandidate     MessageType = "ice-candidate"
	TypeUserState        MessageType = "user-state"
	TypeChatMessage      MessageType = "chat-message"
	TypeScreenShareStart MessageType = "screen-share-start"
	TypeScreenShareStop  MessageType = "screen-share-stop"
)

// Server -> client kinds.
const (
	TypeYourID         MessageType = "your-id"
	TypeRoomUpdate     MessageType = "room-update"
	TypeJoined         MessageType = "joined"
	TypePeerJoined     MessageType = "peer-joined"
	TypePeerLeft       MessageType = "peer-left"
	TypeChatHistory    MessageType = "chat-history"
	TypeProfileUpdated MessageType = "profile-updated"
	TypeError          MessageType = "error"
)

// envelope reads only the routing field of an inbound frame.
type envelope struct {
	Type MessageType `json:"type"`
}

type createRoomRequest struct {
	Name string `json:"name"`
}

type joinRequest struct {
	Room     string          `json:"room"`
	Username string          `json:"username"`
	Avatar   json.RawMessage `json:"avatar"`
}

type userStateRequest struct {
	Muted    bool `json:"muted"`
	Deafened bool `json:"deafened"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type updateProfileRequest struct {
	Username *string         `json:"username"`
	Avatar   json.RawMessage `json:"avatar"`
}

// UserSummary is a member as listed in a room-update snapshot.
type UserSummary struct {
	ID       ConnID          `json:"id"`
	Username string          `json:"username"`
	Avatar   json.RawMessage `json:"avatar"`
}

// RoomSummary is one room of a room-update snapshot.
type RoomSummary struct {
	Name  string        `json:"name"`
	Users []UserSummary `json:"users"`
	Count int           `json:"count"`
}

// PeerInfo describes an existing member to a connection that just joined.
type PeerInfo struct {
	ID            ConnID          `json:"id"`
	Username      string          `json:"username"`
	Avatar        json.RawMessage `json:"avatar"`
	Muted         bool            `json:"muted"`
	Deafened      bool            `json:"deafened"`
	ScreenSharing bool            `json:"screenSharing"`
}

// ChatMessage is one entry of a room's chat log.
type ChatMessage struct {
	ID        string `json:"id"`
	From      ConnID `json:"from"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type yourIDMessage struct {
	Type MessageType `json:"type"`
	ID   ConnID      `json:"id"`
}

type roomUpdateMessage struct {
	Type  MessageType   `json:"type"`
	Rooms []RoomSummary `json:"rooms"`
}

type joinedMessage struct {
	Type  MessageType `json:"type"`
	Room  string      `json:"room"`
	Peers []PeerInfo  `json:"peers"`
}

type peerJoinedMessage struct {
	Type MessageType `json:"type"`
	ID   ConnID      `json:"id"`
	user.Profile
}

type peerLeftMessage struct {
	Type MessageType `json:"type"`
	ID   ConnID      `json:"id"`
}

type userStateMessage struct {
	Type     MessageType `json:"type"`
	ID       ConnID      `json:"id"`
	Muted    bool        `json:"muted"`
	Deafened bool        `json:"deafened"`
}

type chatMessageEvent struct {
	Type MessageType `json:"type"`
	ChatMessage
}

type chatHistoryMessage struct {
	Type     MessageType   `json:"type"`
	Messages []ChatMessage `json:"messages"`
}

type profileUpdatedMessage struct {
	Type MessageType `json:"type"`
	ID   ConnID      `json:"id"`
	user.Profile
}

type screenShareMessage struct {
	Type     MessageType `json:"type"`
	ID       ConnID      `json:"id"`
	Username string      `json:"username"`
}

type errorMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
