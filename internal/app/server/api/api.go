// HTTP-поверхность попапа (только localhost, один потребитель):
//
//GET    /api/v1/health
//GET    /api/v1/shell
//PUT    /api/v1/shell/theme
//POST   /api/v1/shell/theme/toggle
//GET    /api/v1/stopwatches
//POST   /api/v1/stopwatches
//GET    /api/v1/stopwatches/{hash}
//PATCH  /api/v1/stopwatches/{hash}          # name и/или time (hh:mm:ss)
//DELETE /api/v1/stopwatches/{hash}
//POST   /api/v1/stopwatches/{hash}/start|pause|toggle|reset
//GET    /metrics

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/app/popup"
	healthAPI "multistopwatch/internal/app/server/api/http/health"
	"multistopwatch/internal/app/server/api/http/middleware"
	"multistopwatch/internal/app/server/api/http/middleware/logger"
	"multistopwatch/internal/app/server/api/http/middleware/metrics"
	shellAPI "multistopwatch/internal/app/server/api/http/shell"
	stopwatchAPI "multistopwatch/internal/app/server/api/http/stopwatch"
)

type Handlers struct {
	Health    *healthAPI.Handler
	Shell     *shellAPI.Handler
	Stopwatch *stopwatchAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register и /metrics
func New(app *popup.App, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "msw_stopwatches",
			Help: "Stopwatches loaded in the popup",
		}, func() float64 { return float64(app.Stopwatches().Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "msw_stopwatches_running",
			Help: "Stopwatches currently ticking",
		}, func() float64 { return float64(app.Stopwatches().RunningCount()) }),
	)

	config := huma.DefaultConfig(app.Shell().Title+" API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(app, log, metrics.New(reg))
	h.Health.SetupRoutes(API)
	h.Shell.SetupRoutes(API)
	h.Stopwatch.SetupRoutes(API)

	// счетчики хранилища и метрики рантайма живут в глобальном реестре
	mux.Handle("/metrics", promhttp.HandlerFor(
		prometheus.Gatherers{reg, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	))

	return mux
}

func handlers(app *popup.App, log *slog.Logger, m *metrics.Metrics) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(m.Middleware())
	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(app.Stopwatches(), app.Config().StorageDriver, log, middlewares.GetAllAndClear())

	middlewares.Add(m.Middleware())
	middlewares.Add(loggerMW.Middleware())
	shellHandler := shellAPI.NewHandler(app, log, middlewares.GetAllAndClear())

	middlewares.Add(m.Middleware())
	middlewares.Add(loggerMW.Middleware())
	stopwatchHandler := stopwatchAPI.NewHandler(app.Stopwatches(), log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:    healthHandler,
		Shell:     shellHandler,
		Stopwatch: stopwatchHandler,
	}
}
