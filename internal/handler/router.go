package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"voxroom/internal/pkg/limiter"
	"voxroom/internal/pkg/logx"
	"voxroom/internal/pkg/resp"
)

const (
	// CreateRate and CreateBurst limit room creation over HTTP per IP.
	CreateRate  = 0.1
	CreateBurst = 3

	// ConnectRate and ConnectBurst limit WebSocket upgrades per IP.
	ConnectRate  = 0.5
	ConnectBurst = 10

	// ServiceName is reported by the health endpoint.
	ServiceName = "Voxroom Signaling Server"
)

// Router builds the HTTP routing table: CORS, request ids, logging and panic recovery for
// every route, rate limits on room creation and WebSocket upgrades.
func Router(deps *AppDeps) http.Handler {
	createLimiter := limiter.NewIPRateLimiter(deps.Ctx, rate.Limit(CreateRate), CreateBurst)
	connectLimiter := limiter.NewIPRateLimiter(deps.Ctx, rate.Limit(ConnectRate), ConnectBurst)

	allowedOrigins := make(map[string]struct{}, len(deps.Config.AllowedOrigins))
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: origin not allowed.", "origin", origin)
			return false
		},
	}

	corsOrigins := deps.Config.AllowedOrigins
	if deps.Config.IsDevelopment() {
		corsOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	r := chi.NewRouter()

	r.Use(c.Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": ServiceName,
		})
	})

	r.Handle("/metrics", deps.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/rooms", HandleListRooms(deps))
		api.With(createLimiter.Middleware).Post("/rooms", HandleCreateRoom(deps))
	})

	r.Get("/ws", HandleWebSocket(deps, upgrader, connectLimiter))

	return r
}
