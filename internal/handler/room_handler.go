package handler

import (
	"net/http"

	"voxroom/internal/pkg/req"
	"voxroom/internal/pkg/resp"
)

// CreateRoomInput is the body of POST /api/rooms.
type CreateRoomInput struct {
	Name string `json:"name"`
}

// HandleListRooms returns the same snapshot WebSocket clients receive in room-update.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := deps.Hub.Rooms(r.Context())
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"rooms": rooms})
	}
}

// HandleCreateRoom creates an empty room. Connected clients learn about it from the
// room-update broadcast that follows.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CreateRoomInput
		if bindErr := req.BindJSON(w, r, &input); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		room, err := deps.Hub.CreateRoom(r.Context(), input.Name)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"room": room})
	}
}
