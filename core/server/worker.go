package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"room-booking-api/core/logger"
	"room-booking-api/core/queue"
	"room-booking-api/modules/recommendation"
	"room-booking-api/modules/recommendation/task"
)

// RunWorker processes directory refresh tasks and schedules a periodic
// refresh of today and every persisted date.
func RunWorker(configDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Bootstrap(ctx, configDir)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.Cache == nil {
		return errors.New("worker requires redis")
	}

	mod, err := recommendation.New(app.Config, app.DB, app.Cache, app.Enqueuer())
	if err != nil {
		return fmt.Errorf("init recommendation module: %w", err)
	}

	srv, mux := queue.NewServer(app.Config.Redis, app.Config.Worker)
	mod.RegisterTasks(mux)

	scheduler := queue.NewScheduler(app.Config.Redis)
	refresh, err := task.NewDirectoryRefreshTask("")
	if err != nil {
		return err
	}
	cronspec := fmt.Sprintf("@every %s", app.Config.Worker.RefreshEvery)
	if _, err := scheduler.Register(cronspec, refresh); err != nil {
		return fmt.Errorf("schedule directory refresh: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer scheduler.Shutdown()

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Info("Server:RunWorker:Started", "refreshEvery", app.Config.Worker.RefreshEvery.String())

	<-ctx.Done()
	logger.Info("Server:RunWorker:ShuttingDown")
	srv.Shutdown()
	return nil
}
