package handler

import (
	"context"

	"voxroom/internal/app/chat"
	"voxroom/internal/configs"
	"voxroom/internal/pkg/metrics"
)

// AppDeps carries the long-lived services the HTTP handlers need.
type AppDeps struct {
	// Ctx bounds background goroutines started by the router, such as limiter cleanup.
	Ctx context.Context

	Hub     *chat.Hub
	Config  *configs.AppConfig
	Metrics *metrics.Recorder
}
