package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Stats is the part of the stopwatch collection the health check reads.
type Stats interface {
	Len() int
	RunningCount() int
}

type Handler struct {
	stats      Stats
	storage    string
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(stats Stats, storage string, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		stats:      stats,
		storage:    storage,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	return &Output{
		Body: Response{
			Status:      "OK",
			Stopwatches: h.stats.Len(),
			Running:     h.stats.RunningCount(),
			Storage:     h.storage,
		},
	}, nil
}
