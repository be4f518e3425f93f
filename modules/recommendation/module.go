package recommendation

import (
	"room-booking-api/core/cache"
	"room-booking-api/core/config"
	"room-booking-api/core/database"
	"room-booking-api/core/metrics"
	"room-booking-api/core/middleware"
	"room-booking-api/core/queue"
	"room-booking-api/core/storage"
	"room-booking-api/modules/recommendation/controller"
	"room-booking-api/modules/recommendation/repository"
	"room-booking-api/modules/recommendation/router"
	"room-booking-api/modules/recommendation/service"
	"room-booking-api/modules/recommendation/task"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Module holds the wired recommendation components shared by the HTTP
// server, the worker and the one-shot CLI.
type Module struct {
	Directory *service.DirectoryCache
	Snapshots *repository.SnapshotStore
	Service   *service.RecommendationService
}

// New wires repository, cache and service. c and enqueuer may be nil; the
// enqueuer is only used when the worker is enabled.
func New(cfg *config.Config, db database.IDatabase, c cache.Cache, enqueuer queue.Enqueuer) (*Module, error) {
	repo := repository.NewDirectoryRepository(db)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.Default()
	}

	reporters := service.MultiReporter{service.LogReporter{}}
	if cfg.Report.S3Bucket != "" {
		store := storage.NewObjectStore(storage.NewS3Client(cfg.Report), cfg.Report.S3Bucket)
		reporters = append(reporters, service.NewObjectReporter(store, cfg.Report.Prefix))
	}

	cacheOpts := []service.CacheOption{
		service.WithReporter(reporters),
		service.WithMetrics(m),
	}

	mod := &Module{}
	if c != nil {
		mod.Snapshots = repository.NewSnapshotStore(c, cfg.Directory.SnapshotTTL)
		cacheOpts = append(cacheOpts, service.WithSnapshotStore(mod.Snapshots))
	}

	directory, err := service.NewDirectoryCache(repo, repo, service.CacheOptionsFromConfig(cfg.Directory), cacheOpts...)
	if err != nil {
		return nil, err
	}
	mod.Directory = directory

	finder, err := service.NewSlotFinderFromConfig(cfg.Recommendation)
	if err != nil {
		return nil, err
	}

	svcOpts := []service.ServiceOption{service.WithServiceMetrics(m)}
	if enqueuer != nil && cfg.Worker.Enabled {
		svcOpts = append(svcOpts, service.WithRefreshEnqueuer(task.NewEnqueuer(enqueuer)))
	}
	mod.Service = service.NewRecommendationService(
		directory,
		service.NewAvailabilityAnalyzer(finder),
		service.SettingsFromConfig(cfg.Recommendation),
		svcOpts...,
	)
	return mod, nil
}

func (m *Module) RegisterRoutes(e *echo.Echo, mw *middleware.Middleware) {
	ctrl := controller.NewRecommendationController(m.Service)
	router.NewRecommendationRouter(ctrl).Setup(e, mw)
}

func (m *Module) RegisterTasks(mux *asynq.ServeMux) {
	var dates task.DateLister
	if m.Snapshots != nil {
		dates = m.Snapshots
	}
	task.Register(mux, task.NewRefreshHandler(m.Directory, dates, nil))
}

func Init(e *echo.Echo, mw *middleware.Middleware, cfg *config.Config, db database.IDatabase, c cache.Cache, enqueuer queue.Enqueuer) (*Module, error) {
	mod, err := New(cfg, db, c, enqueuer)
	if err != nil {
		return nil, err
	}
	mod.RegisterRoutes(e, mw)
	return mod, nil
}
