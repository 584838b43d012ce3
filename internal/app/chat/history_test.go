package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatN(n int) ChatMessage {
	return ChatMessage{ID: fmt.Sprintf("m%d", n), Text: fmt.Sprintf("message %d", n)}
}

func TestChatBufferReplaysInSendOrder(t *testing.T) {
	b := NewChatBuffer(ChatHistorySize)

	assert.Empty(t, b.Replay())

	for i := 1; i <= 3; i++ {
		assert.False(t, b.Append(chatN(i)))
	}

	replay := b.Replay()
	require.Len(t, replay, 3)
	assert.Equal(t, "m1", replay[0].ID)
	assert.Equal(t, "m3", replay[2].ID)
}

func TestChatBufferEvictsOldest(t *testing.T) {
	b := NewChatBuffer(ChatHistorySize)

	for i := 1; i <= ChatHistorySize; i++ {
		require.False(t, b.Append(chatN(i)))
	}

	assert.True(t, b.Append(chatN(ChatHistorySize+1)), "the 101st message evicts one")
	assert.Equal(t, ChatHistorySize, b.Len())

	replay := b.Replay()
	require.Len(t, replay, ChatHistorySize)
	assert.Equal(t, "m2", replay[0].ID)
	assert.Equal(t, fmt.Sprintf("m%d", ChatHistorySize+1), replay[ChatHistorySize-1].ID)

	for i := 1; i < len(replay); i++ {
		assert.Equal(t, fmt.Sprintf("m%d", i+2), replay[i].ID)
	}
}

func TestChatBufferWrapsRepeatedly(t *testing.T) {
	b := NewChatBuffer(3)

	for i := 1; i <= 10; i++ {
		b.Append(chatN(i))
	}

	var ids []string
	for _, m := range b.Replay() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"m8", "m9", "m10"}, ids)
}

func TestChatBufferReplayIsACopy(t *testing.T) {
	b := NewChatBuffer(2)
	b.Append(chatN(1))

	replay := b.Replay()
	replay[0].Text = "changed"

	assert.Equal(t, "message 1", b.Replay()[0].Text)
}

func TestChatBufferMinimumCapacity(t *testing.T) {
	b := NewChatBuffer(0)

	b.Append(chatN(1))
	assert.True(t, b.Append(chatN(2)))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, "m2", b.Replay()[0].ID)
}
