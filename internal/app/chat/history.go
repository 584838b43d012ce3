package chat

// ChatHistorySize is the number of chat messages a room keeps.
const ChatHistorySize = 100

// ChatBuffer is a fixed-capacity FIFO ring of chat messages.
// Appending to a full buffer evicts the oldest entry.
type ChatBuffer struct {
	entries []ChatMessage

	// start is the index of the oldest entry.
	start int

	// size is the number of stored entries.
	size int
}

// NewChatBuffer creates an empty buffer holding at most capacity messages.
func NewChatBuffer(capacity int) *ChatBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &ChatBuffer{entries: make([]ChatMessage, capacity)}
}

// Append stores msg and reports whether an older message was evicted to make room.
func (b *ChatBuffer) Append(msg ChatMessage) bool {
	capacity := len(b.entries)

	if b.size < capacity {
		b.entries[(b.start+b.size)%capacity] = msg
		b.size++
		return false
	}

	b.entries[b.start] = msg
	b.start = (b.start + 1) % capacity
	return true
}

// Replay returns a copy of the stored messages, oldest first.
func (b *ChatBuffer) Replay() []ChatMessage {
	out := make([]ChatMessage, b.size)
	for i := range b.size {
		out[i] = b.entries[(b.start+i)%len(b.entries)]
	}
	return out
}

// Len returns the number of stored messages.
func (b *ChatBuffer) Len() int { return b.size }
