package logx

import "github.com/rs/zerolog"

// Field keys shared by the hub, its clients and the HTTP layer.
const (
	FieldConnID   = "conn_id"
	FieldRoom     = "room"
	FieldRemoteIP = "remote_ip"
	FieldMsgType  = "msg_type"
)

// ForConnection returns a child of parent tagged with the connection id and, when remoteAddr
// is not empty, the anonymized client address.
func ForConnection(parent zerolog.Logger, connID uint64, remoteAddr string) zerolog.Logger {
	ctx := parent.With().Uint64(FieldConnID, connID)
	if remoteAddr != "" {
		ctx = ctx.Str(FieldRemoteIP, AnonymizeIP(remoteAddr))
	}
	return ctx.Logger()
}

// InRoom returns a child of parent tagged with a room name.
func InRoom(parent zerolog.Logger, room string) zerolog.Logger {
	return parent.With().Str(FieldRoom, room).Logger()
}
