/*
Package main is the entry point for the Voxroom signaling server.

It loads configuration, initializes logging, starts the signaling hub and the HTTP server,
and on SIGINT/SIGTERM stops accepting requests before closing every WebSocket connection.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"voxroom/internal/app/chat"
	"voxroom/internal/configs"
	"voxroom/internal/handler"
	"voxroom/internal/pkg/logx"
	"voxroom/internal/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Int("room_capacity", chat.RoomCapacity).
		Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := metrics.New()

	hub := chat.NewHub(recorder)
	go hub.Run()

	router := handler.Router(&handler.AppDeps{
		Ctx:     ctx,
		Hub:     hub,
		Config:  cfg,
		Metrics: recorder,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Voxroom signaling server listening on http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		shutdownOperations(hub, server, cancel),
	)

	exitCode := <-wait
	logx.Info("Server stopped.", "exit_code", exitCode)
	os.Exit(exitCode)
}

// shutdownOperations stops the hub and the HTTP server. They are independent: the server does not
// track hijacked WebSocket connections, and the hub closes those itself.
func shutdownOperations(hub *chat.Hub, server *http.Server, cancel context.CancelFunc) map[string]gfshutdown.Operation {
	return map[string]gfshutdown.Operation{
		"signaling-hub": func(ctx context.Context) error {
			logx.Info("Received shutdown signal. Closing WebSocket connections...")
			return hub.Shutdown(ctx)
		},
		"http-server": func(ctx context.Context) error {
			logx.Info("Received shutdown signal. Stopping HTTP server...")
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
}
