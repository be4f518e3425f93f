package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"room-booking-api/core/cache"
	"room-booking-api/core/config"
	"room-booking-api/core/database"
	"room-booking-api/core/logger"
	"room-booking-api/core/middleware"
	"room-booking-api/core/queue"
	"room-booking-api/core/utils"
	"room-booking-api/modules/recommendation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// App holds process-wide connections.
type App struct {
	Config      *config.Config
	DB          *database.Database
	Cache       cache.Cache
	RedisClient *redis.Client
	Queue       *queue.Client
}

// Bootstrap loads config, sets up logging and opens connections.
// Redis is optional: without it the snapshot store and the refresh queue
// are disabled.
func Bootstrap(ctx context.Context, configDir string) (*App, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: db}

	c, client, err := cache.InitRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("Server:Bootstrap:RedisDisabled", "error", err)
		return app, nil
	}
	app.Cache = c
	app.RedisClient = client
	app.Queue = queue.NewClient(cfg.Redis)
	return app, nil
}

// Enqueuer returns the queue client, or nil when redis is disabled.
func (a *App) Enqueuer() queue.Enqueuer {
	if a.Queue == nil {
		return nil
	}
	return a.Queue
}

func (a *App) Close() {
	if a.Queue != nil {
		_ = a.Queue.Close()
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

// NewEcho builds the HTTP server with shared middleware, the liveness
// probe and the prometheus endpoint.
func NewEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger.Info("HTTP:Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"requestID", v.RequestID,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}
	return e
}

// Run starts the HTTP API and blocks until SIGINT/SIGTERM.
func Run(configDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Bootstrap(ctx, configDir)
	if err != nil {
		return err
	}
	defer app.Close()

	e := NewEcho(app.Config)
	if _, err := recommendation.Init(e, middleware.NewMiddleware(), app.Config, app.DB, app.Cache, app.Enqueuer()); err != nil {
		return fmt.Errorf("init recommendation module: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server:Run:ShuttingDown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(app.Config))
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return 10 * time.Second
}
