/*
Package randx generates identifiers that must be unique across the process.
*/
package randx

import (
	"github.com/google/uuid"
)

// MessageID returns a UUID v4 string used to identify a chat message.
func MessageID() string {
	return uuid.New().String()
}
