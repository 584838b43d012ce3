/*
Package user describes how a participant presents itself to other clients.

Profiles are unauthenticated labels chosen by the client. The avatar is an opaque JSON value
(the browser client sends a color and an icon) that the server stores and echoes untouched.
*/
package user

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const (
	// MaxUsernameRunes bounds the length of a display name.
	MaxUsernameRunes = 32

	// DefaultUsername replaces a blank display name.
	DefaultUsername = "Guest"
)

// DefaultAvatar is used when a client joins without an avatar.
var DefaultAvatar = json.RawMessage(`{"color":"#5865f2","icon":"🐱"}`)

// Profile is the public identity of a participant.
type Profile struct {
	// Username is the display name shown to other participants.
	Username string `json:"username"`

	// Avatar is the client-supplied avatar descriptor, never interpreted by the server.
	Avatar json.RawMessage `json:"avatar"`
}

// NewProfile normalizes a client-supplied username and avatar.
func NewProfile(username string, avatar json.RawMessage) Profile {
	return Profile{
		Username: NormalizeUsername(username),
		Avatar:   NormalizeAvatar(avatar),
	}
}

// NormalizeUsername trims the name, bounds it to MaxUsernameRunes and falls back to DefaultUsername.
func NormalizeUsername(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultUsername
	}

	if utf8.RuneCountInString(name) > MaxUsernameRunes {
		name = strings.TrimSpace(string([]rune(name)[:MaxUsernameRunes]))
	}

	return name
}

// NormalizeAvatar returns DefaultAvatar for a missing or null avatar and the input otherwise.
func NormalizeAvatar(avatar json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(avatar)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return DefaultAvatar
	}
	return trimmed
}
