package user

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "alice", want: "alice"},
		{name: "trimmed", input: "  bob \n", want: "bob"},
		{name: "blank", input: "   ", want: DefaultUsername},
		{name: "empty", input: "", want: DefaultUsername},
		{name: "truncated by runes", input: strings.Repeat("ü", MaxUsernameRunes+5), want: strings.Repeat("ü", MaxUsernameRunes)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeUsername(tt.input))
		})
	}
}

func TestNormalizeAvatar(t *testing.T) {
	assert.Equal(t, DefaultAvatar, NormalizeAvatar(nil))
	assert.Equal(t, DefaultAvatar, NormalizeAvatar(json.RawMessage(" null ")))

	custom := json.RawMessage(`{"color":"#ff0000","icon":"🐸"}`)
	assert.Equal(t, custom, NormalizeAvatar(custom))
}

func TestProfileJSON(t *testing.T) {
	raw, err := json.Marshal(NewProfile(" carol ", nil))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"username":"carol","avatar":{"color":"#5865f2","icon":"🐱"}}`, string(raw))
}
