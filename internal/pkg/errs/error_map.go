package errs

import "net/http"

// errorMap holds the user-facing message and HTTP status for every code.
var errorMap = map[int]CustomError{
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrMalformedMessage:     {Code: ErrMalformedMessage, Message: "Malformed message."},

	ErrRoomNotFound:       {Code: ErrRoomNotFound, Message: "Room not found.", Status: http.StatusNotFound},
	ErrRoomFull:           {Code: ErrRoomFull, Message: "Room is full (%d/%d).", Status: http.StatusConflict},
	ErrDuplicateName:      {Code: ErrDuplicateName, Message: "A room with this name already exists.", Status: http.StatusConflict},
	ErrInvalidName:        {Code: ErrInvalidName, Message: "Room name must be between 1 and %d characters."},
	ErrInvalidChatText:    {Code: ErrInvalidChatText, Message: "Message must be between 1 and %d characters."},
	ErrUnknownRelayTarget: {Code: ErrUnknownRelayTarget, Message: "Peer is not in your room."},
	ErrNotInRoom:          {Code: ErrNotInRoom, Message: "Join a room first."},

	ErrUnknown:      {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrShuttingDown: {Code: ErrShuttingDown, Message: "Server is shutting down.", Status: http.StatusServiceUnavailable},
}
