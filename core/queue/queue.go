package queue

import (
	"context"
	"errors"
	"fmt"

	"room-booking-api/core/config"
	"room-booking-api/core/logger"

	"github.com/hibiken/asynq"
)

const DefaultQueue = "default"

// Enqueuer is the producer side used by services.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(RedisOpt(cfg))}
}

// Enqueue treats a duplicate unique task as success.
func (c *Client) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	info, err := c.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Debug("Queue:Enqueue:Duplicate", "type", task.Type())
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	logger.Info("Queue:Enqueue:Success", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// NewServer builds the worker side. Handlers are registered on the returned mux.
func NewServer(redisCfg config.RedisConfig, workerCfg config.WorkerConfig) (*asynq.Server, *asynq.ServeMux) {
	concurrency := workerCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	srv := asynq.NewServer(RedisOpt(redisCfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{DefaultQueue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})
	return srv, asynq.NewServeMux()
}

func NewScheduler(cfg config.RedisConfig) *asynq.Scheduler {
	return asynq.NewScheduler(RedisOpt(cfg), &asynq.SchedulerOpts{})
}
