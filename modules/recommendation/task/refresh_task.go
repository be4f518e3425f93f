package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"room-booking-api/core/constants"
	"room-booking-api/core/logger"
	"room-booking-api/core/queue"
	"room-booking-api/modules/recommendation/entity"

	"github.com/hibiken/asynq"
)

const (
	TypeDirectoryRefresh = "directory:refresh"

	refreshMaxRetry = 3
	refreshUnique   = time.Minute
)

type DirectoryRefreshPayload struct {
	Date string `json:"date,omitempty"`
}

// NewDirectoryRefreshTask builds a refresh task. An empty date means today
// plus every date with a stored snapshot.
func NewDirectoryRefreshTask(date string) (*asynq.Task, error) {
	payload, err := json.Marshal(DirectoryRefreshPayload{Date: date})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDirectoryRefresh, payload), nil
}

// Enqueuer schedules directory refreshes on the task queue.
type Enqueuer struct {
	queue queue.Enqueuer
}

func NewEnqueuer(q queue.Enqueuer) *Enqueuer {
	return &Enqueuer{queue: q}
}

func (e *Enqueuer) EnqueueRefresh(ctx context.Context, date string) error {
	t, err := NewDirectoryRefreshTask(date)
	if err != nil {
		return err
	}
	return e.queue.Enqueue(ctx, t,
		asynq.Queue(queue.DefaultQueue),
		asynq.MaxRetry(refreshMaxRetry),
		asynq.Unique(refreshUnique),
	)
}

type Refresher interface {
	Refresh(ctx context.Context, date string) (*entity.Snapshot, error)
}

// DateLister reports dates that have a persisted snapshot.
type DateLister interface {
	Dates(ctx context.Context) ([]string, error)
}

type RefreshHandler struct {
	directory Refresher
	dates     DateLister
	now       func() time.Time
}

func NewRefreshHandler(directory Refresher, dates DateLister, now func() time.Time) *RefreshHandler {
	if now == nil {
		now = time.Now
	}
	return &RefreshHandler{directory: directory, dates: dates, now: now}
}

func (h *RefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p DirectoryRefreshPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TypeDirectoryRefresh, err, asynq.SkipRetry)
	}

	dates, err := h.targets(ctx, p.Date)
	if err != nil {
		return err
	}

	var errs []error
	for _, date := range dates {
		if _, err := h.directory.Refresh(ctx, date); err != nil {
			logger.Error("RefreshHandler:ProcessTask:RefreshFailed", "date", date, "error", err)
			errs = append(errs, fmt.Errorf("refresh %s: %w", date, err))
			continue
		}
		logger.Info("RefreshHandler:ProcessTask:Refreshed", "date", date)
	}
	return errors.Join(errs...)
}

func (h *RefreshHandler) targets(ctx context.Context, date string) ([]string, error) {
	if date != "" {
		if _, err := time.Parse(constants.DateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", date, asynq.SkipRetry)
		}
		return []string{date}, nil
	}

	today := h.now().Format(constants.DateLayout)
	seen := map[string]struct{}{today: {}}
	out := []string{today}
	if h.dates == nil {
		return out, nil
	}

	stored, err := h.dates.Dates(ctx)
	if err != nil {
		logger.Warn("RefreshHandler:ProcessTask:ListDatesFailed", "error", err)
		return out, nil
	}
	for _, d := range stored {
		// YYYY-MM-DD compares lexically
		if _, dup := seen[d]; dup || d < today {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out[1:])
	return out, nil
}

// Register mounts the refresh handler on a worker mux.
func Register(mux *asynq.ServeMux, h *RefreshHandler) {
	mux.Handle(TypeDirectoryRefresh, h)
}
