package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxroom/internal/app/chat"
	"voxroom/internal/configs"
	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/metrics"
	"voxroom/internal/pkg/resp"
)

func newTestServer(t *testing.T, cfg *configs.AppConfig) *httptest.Server {
	t.Helper()
	server, _ := newTestServerWithHub(t, cfg)
	return server
}

func newTestServerWithHub(t *testing.T, cfg *configs.AppConfig) (*httptest.Server, *chat.Hub) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	recorder := metrics.New()
	hub := chat.NewHub(recorder)
	go hub.Run()

	server := httptest.NewServer(Router(&AppDeps{Ctx: ctx, Hub: hub, Config: cfg, Metrics: recorder}))

	t.Cleanup(func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()

		assert.NoError(t, hub.Shutdown(shutdownCtx))
		server.Close()
		cancel()
	})

	return server, hub
}

func devConfig() *configs.AppConfig {
	return &configs.AppConfig{Environment: "development", Port: configs.DefaultPort, AllowedOrigins: []string{}}
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func postRoom(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()
	res, err := http.Post(server.URL+"/api/rooms", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return res
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, devConfig())

	res, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	assert.Equal(t, map[string]any{"status": "ok", "service": ServiceName}, body["data"])
}

func TestRoomsAPI(t *testing.T) {
	server := newTestServer(t, devConfig())

	res := postRoom(t, server, `{"name":" Jazz "}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	room := decodeBody(t, res)["data"].(map[string]any)["room"].(map[string]any)
	assert.Equal(t, "Jazz", room["name"])
	assert.EqualValues(t, 0, room["count"])

	res = postRoom(t, server, `{"name":"Jazz"}`)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.EqualValues(t, errs.ErrDuplicateName, decodeBody(t, res)["code"])

	res = postRoom(t, server, `{"name":"   "}`)
	assert.EqualValues(t, errs.ErrInvalidName, decodeBody(t, res)["code"])

	res, err := http.Get(server.URL + "/api/rooms")
	require.NoError(t, err)
	rooms := decodeBody(t, res)["data"].(map[string]any)["rooms"].([]any)
	require.Len(t, rooms, 2)
	assert.Equal(t, chat.DefaultRoomName, rooms[0].(map[string]any)["name"])
	assert.Equal(t, "Jazz", rooms[1].(map[string]any)["name"])
}

func TestCreateRoomIsRateLimited(t *testing.T) {
	server := newTestServer(t, devConfig())

	for i := range CreateBurst {
		res := postRoom(t, server, `{"name":"room `+string(rune('a'+i))+`"}`)
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}

	res := postRoom(t, server, `{"name":"one too many"}`)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.EqualValues(t, errs.ErrRateLimitExceeded, decodeBody(t, res)["code"])
}

func TestCreateRoomRejectsBadBody(t *testing.T) {
	server := newTestServer(t, devConfig())

	res, err := http.Post(server.URL+"/api/rooms", "text/plain", strings.NewReader("Jazz"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	var body resp.JSONResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, errs.ErrUnsupportedMediaType, body.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, devConfig())

	res, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// wsClient is a test peer speaking the signaling protocol.
type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
	id   float64
}

func dial(t *testing.T, server *httptest.Server, header http.Header) *wsClient {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	res.Body.Close()
	t.Cleanup(func() { conn.Close() })

	c := &wsClient{t: t, conn: conn}

	hello := c.expect("your-id")
	c.id = hello["id"].(float64)
	c.expect("room-update")

	return c
}

func (c *wsClient) send(v any) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteJSON(v))
}

// expect reads frames until one of the given kind arrives.
func (c *wsClient) expect(kind string) map[string]any {
	c.t.Helper()

	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg map[string]any
		require.NoError(c.t, c.conn.ReadJSON(&msg), "waiting for %s", kind)
		if msg["type"] == kind {
			return msg
		}
	}
}

func TestWebSocketSignalingFlow(t *testing.T) {
	server := newTestServer(t, devConfig())

	alice := dial(t, server, nil)
	bob := dial(t, server, nil)
	assert.NotEqual(t, alice.id, bob.id)

	alice.send(map[string]any{"type": "join", "room": "General", "username": "alice"})
	joined := alice.expect("joined")
	assert.Empty(t, joined["peers"])

	bob.send(map[string]any{"type": "join", "room": "General", "username": "bob"})
	joined = bob.expect("joined")
	require.Len(t, joined["peers"], 1)

	peer := alice.expect("peer-joined")
	assert.Equal(t, bob.id, peer["id"])
	assert.Equal(t, "bob", peer["username"])

	bob.send(map[string]any{"type": "offer", "to": alice.id, "sdp": "v=0"})
	offer := alice.expect("offer")
	assert.Equal(t, bob.id, offer["from"])
	assert.Equal(t, "v=0", offer["sdp"])

	alice.send(map[string]any{"type": "chat-message", "text": "hello"})
	assert.Equal(t, "hello", bob.expect("chat-message")["text"])
	assert.Equal(t, "hello", alice.expect("chat-message")["text"])

	require.NoError(t, bob.conn.Close())

	left := alice.expect("peer-left")
	assert.Equal(t, bob.id, left["id"])
}

func TestWebSocketRequestErrors(t *testing.T) {
	server := newTestServer(t, devConfig())

	c := dial(t, server, nil)

	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte("{garbage")))
	c.send(map[string]any{"type": "join", "room": "Nowhere", "username": "x"})

	assert.Equal(t, "Room not found.", c.expect("error")["message"])

	c.send(map[string]any{"type": "create-room", "name": "Jazz"})
	c.expect("room-update")
	c.send(map[string]any{"type": "create-room", "name": "Jazz"})
	assert.Equal(t, "A room with this name already exists.", c.expect("error")["message"])
}

func TestWebSocketOriginCheckOutsideDevelopment(t *testing.T) {
	cfg := &configs.AppConfig{
		Environment:    "production",
		Port:           configs.DefaultPort,
		AllowedOrigins: []string{"https://voice.example.com"},
	}
	server := newTestServer(t, cfg)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	_, res, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	dial(t, server, http.Header{"Origin": {"https://voice.example.com"}})
}

func TestWebSocketRejectedAfterHubShutdown(t *testing.T) {
	server, hub := newTestServerWithHub(t, devConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, hub.Shutdown(ctx))

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	res.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()

	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseTryAgainLater, closeErr.Code)
	assert.Equal(t, "Server is shutting down.", closeErr.Text)
}
