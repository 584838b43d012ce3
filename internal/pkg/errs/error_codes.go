/*
Package errs provides the application error type and its code catalogue.

Codes identify failures inside the server and on the HTTP surface. WebSocket clients only ever
see the human-readable message of an error, never its code.
*/
package errs

// 1xxx: General request handling errors.
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that an HTTP request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the caller exceeded its request budget.
	ErrRateLimitExceeded = 1007

	// ErrMalformedMessage indicates a WebSocket frame that could not be decoded.
	ErrMalformedMessage = 1101
)

// 2xxx: Room, signaling and chat errors.
const (
	// ErrRoomNotFound indicates a join to a room that does not exist.
	ErrRoomNotFound = 2103

	// ErrRoomFull indicates a join to a room already at capacity.
	ErrRoomFull = 2104

	// ErrDuplicateName indicates a room creation with a name already in use.
	ErrDuplicateName = 2105

	// ErrInvalidName indicates a room name that is empty after trimming.
	ErrInvalidName = 2106

	// ErrInvalidChatText indicates chat text that is empty or over the length bound.
	ErrInvalidChatText = 2201

	// ErrUnknownRelayTarget indicates a relay addressed to a connection outside the sender's room.
	ErrUnknownRelayTarget = 2301

	// ErrNotInRoom indicates a room-scoped message from a connection that occupies no room.
	ErrNotInRoom = 2302
)

// 5xxx: Internal system errors.
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000

	// ErrShuttingDown indicates that the hub no longer accepts work.
	ErrShuttingDown = 5003
)
