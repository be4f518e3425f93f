package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"room-booking-api/core/config"
	"room-booking-api/core/logger"
	"room-booking-api/core/metrics"
	"room-booking-api/modules/recommendation/dto"
	"room-booking-api/modules/recommendation/entity"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// SpaceDirectory is the read-only source of spaces and their location hierarchy.
type SpaceDirectory interface {
	ListSpaces(ctx context.Context) ([]entity.Space, error)
	ListLocationHierarchy(ctx context.Context) ([]entity.Building, error)
}

// BookingStore returns the blocking bookings of one date.
type BookingStore interface {
	ListBookings(ctx context.Context, date string) ([]entity.Booking, error)
}

// SnapshotStore keeps the last successfully fetched snapshot per date.
type SnapshotStore interface {
	Save(ctx context.Context, snap *entity.Snapshot) error
	Load(ctx context.Context, date string) (*entity.Snapshot, error)
}

type CacheOptions struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	AllowStale   bool
	MaxDates     int
}

func DefaultCacheOptions() CacheOptions {
	return CacheOptions{
		TTL:          5 * time.Minute,
		FetchTimeout: 5 * time.Second,
		MaxDates:     32,
	}
}

func CacheOptionsFromConfig(cfg config.DirectoryConfig) CacheOptions {
	opts := DefaultCacheOptions()
	if cfg.TTL > 0 {
		opts.TTL = cfg.TTL
	}
	if cfg.FetchTimeout > 0 {
		opts.FetchTimeout = cfg.FetchTimeout
	}
	if cfg.MaxDates > 0 {
		opts.MaxDates = cfg.MaxDates
	}
	opts.AllowStale = cfg.AllowStale
	return opts
}

type CacheOption func(*DirectoryCache)

func WithClock(now func() time.Time) CacheOption {
	return func(c *DirectoryCache) { c.now = now }
}

func WithSnapshotStore(store SnapshotStore) CacheOption {
	return func(c *DirectoryCache) { c.store = store }
}

func WithReporter(r MalformedReporter) CacheOption {
	return func(c *DirectoryCache) { c.reporter = r }
}

func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *DirectoryCache) { c.metrics = m }
}

// DirectoryCache holds per-date snapshots of spaces, bookings and the
// location hierarchy. Concurrent refreshes of the same date share one fetch.
type DirectoryCache struct {
	directory SpaceDirectory
	bookings  BookingStore
	store     SnapshotStore
	reporter  MalformedReporter
	metrics   *metrics.Metrics
	opts      CacheOptions
	now       func() time.Time

	entries *lru.Cache[string, *entity.Snapshot]
	group   singleflight.Group
}

func NewDirectoryCache(directory SpaceDirectory, bookings BookingStore, opts CacheOptions, options ...CacheOption) (*DirectoryCache, error) {
	if opts.TTL <= 0 {
		return nil, fmt.Errorf("directory cache ttl must be positive")
	}
	if opts.MaxDates <= 0 {
		opts.MaxDates = DefaultCacheOptions().MaxDates
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultCacheOptions().FetchTimeout
	}

	entries, err := lru.New[string, *entity.Snapshot](opts.MaxDates)
	if err != nil {
		return nil, err
	}

	c := &DirectoryCache{
		directory: directory,
		bookings:  bookings,
		reporter:  LogReporter{},
		opts:      opts,
		now:       time.Now,
		entries:   entries,
	}
	for _, o := range options {
		o(c)
	}
	return c, nil
}

// Load returns the snapshot for date, fetching it when absent or older than the TTL.
func (c *DirectoryCache) Load(ctx context.Context, date string) (*entity.Snapshot, error) {
	if snap, ok := c.fresh(date); ok {
		c.metrics.CacheHit()
		return snap, nil
	}
	c.metrics.CacheMiss()
	return c.refresh(ctx, date, false)
}

// Refresh fetches date now, regardless of the cached entry's age.
func (c *DirectoryCache) Refresh(ctx context.Context, date string) (*entity.Snapshot, error) {
	return c.refresh(ctx, date, true)
}

func (c *DirectoryCache) Invalidate(date string) {
	c.entries.Remove(date)
	logger.Info("DirectoryCache:Invalidate", "date", date)
}

func (c *DirectoryCache) InvalidateAll() {
	c.entries.Purge()
	logger.Info("DirectoryCache:InvalidateAll")
}

func (c *DirectoryCache) Stats() dto.DirectoryStats {
	now := c.now()
	stats := dto.DirectoryStats{
		TTL:        c.opts.TTL.String(),
		AllowStale: c.opts.AllowStale,
		MaxDates:   c.opts.MaxDates,
		Entries:    []dto.DirectoryEntryStats{},
	}
	for _, date := range c.entries.Keys() {
		snap, ok := c.entries.Peek(date)
		if !ok {
			continue
		}
		stats.Entries = append(stats.Entries, dto.DirectoryEntryStats{
			Date:        date,
			RefreshedAt: snap.RefreshedAt,
			Fresh:       now.Sub(snap.RefreshedAt) < c.opts.TTL,
			Spaces:      len(snap.Spaces),
			Bookings:    len(snap.Bookings),
			Malformed:   len(snap.Malformed),
		})
	}
	sort.Slice(stats.Entries, func(i, j int) bool {
		return stats.Entries[i].Date < stats.Entries[j].Date
	})
	return stats
}

func (c *DirectoryCache) fresh(date string) (*entity.Snapshot, bool) {
	snap, ok := c.entries.Get(date)
	if !ok || c.now().Sub(snap.RefreshedAt) >= c.opts.TTL {
		return nil, false
	}
	return snap, true
}

func (c *DirectoryCache) refresh(ctx context.Context, date string, force bool) (*entity.Snapshot, error) {
	// The fetch outlives any single caller so coalesced callers are not
	// cut short when the first one gives up.
	// Forced calls get their own flight so they never join a Load that
	// could return the cached entry.
	key := date
	if force {
		key = date + "|force"
	}
	ch := c.group.DoChan(key, func() (any, error) {
		if !force {
			if snap, ok := c.fresh(date); ok {
				return snap, nil
			}
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.FetchTimeout)
		defer cancel()

		snap, err := c.fetch(fetchCtx, date)
		if err != nil {
			return c.fallback(fetchCtx, date, err)
		}
		return snap, nil
	})

	select {
	case <-ctx.Done():
		logger.Warn("DirectoryCache:Refresh:CallerDone", "date", date, "error", ctx.Err())
		if snap, ok := c.staleFromMemory(date); ok {
			return snap, nil
		}
		return nil, &DataUnavailableError{Date: date, Cause: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.Snapshot), nil
	}
}

func (c *DirectoryCache) fetch(ctx context.Context, date string) (*entity.Snapshot, error) {
	started := c.now()
	var (
		spaces    []entity.Space
		bookings  []entity.Booking
		hierarchy []entity.Building
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spaces, err = c.directory.ListSpaces(gctx)
		if err != nil {
			return fmt.Errorf("list spaces: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookings, err = c.bookings.ListBookings(gctx, date)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		hierarchy, err = c.directory.ListLocationHierarchy(gctx)
		if err != nil {
			return fmt.Errorf("list location hierarchy: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		c.metrics.RefreshFailed()
		logger.Error("DirectoryCache:Refresh:Error", "date", date, "error", err)
		return nil, err
	}

	snap := BuildSnapshot(date, spaces, bookings, hierarchy, c.now())
	c.entries.Add(date, snap)
	c.metrics.ObserveRefresh(c.now().Sub(started))

	logger.Info("DirectoryCache:Refresh:Success",
		"date", date,
		"spaces", len(snap.Spaces),
		"bookings", len(snap.Bookings),
		"malformed", len(snap.Malformed),
	)

	if len(snap.Malformed) > 0 {
		c.metrics.MalformedBookings(len(snap.Malformed))
		if err := c.reporter.Report(ctx, date, snap.Malformed); err != nil {
			logger.Warn("DirectoryCache:Refresh:ReportFailed", "date", date, "error", err)
		}
	}

	if c.store != nil {
		if err := c.store.Save(ctx, snap); err != nil {
			logger.Warn("DirectoryCache:Refresh:SaveLastGoodFailed", "date", date, "error", err)
		}
	}
	return snap, nil
}

func (c *DirectoryCache) fallback(ctx context.Context, date string, cause error) (*entity.Snapshot, error) {
	if snap, ok := c.staleFromMemory(date); ok {
		return snap, nil
	}
	if c.opts.AllowStale && c.store != nil {
		last, err := c.store.Load(ctx, date)
		if err == nil && last != nil {
			c.metrics.StaleServed()
			logger.Warn("DirectoryCache:Refresh:ServeLastGood", "date", date, "refreshedAt", last.RefreshedAt)
			stale := *last
			stale.Stale = true
			return &stale, nil
		}
		if err != nil {
			logger.Debug("DirectoryCache:Refresh:NoLastGood", "date", date, "error", err)
		}
	}
	return nil, &DataUnavailableError{Date: date, Cause: cause}
}

func (c *DirectoryCache) staleFromMemory(date string) (*entity.Snapshot, bool) {
	if !c.opts.AllowStale {
		return nil, false
	}
	prev, ok := c.entries.Peek(date)
	if !ok {
		return nil, false
	}
	c.metrics.StaleServed()
	logger.Warn("DirectoryCache:Refresh:ServeStale", "date", date, "refreshedAt", prev.RefreshedAt)
	stale := *prev
	stale.Stale = true
	return &stale, true
}

// BuildSnapshot deduplicates spaces and bookings by ID, fills missing
// building and floor labels from the hierarchy and separates bookings
// that cannot take part in conflict checks.
func BuildSnapshot(date string, spaces []entity.Space, bookings []entity.Booking, hierarchy []entity.Building, now time.Time) *entity.Snapshot {
	type place struct{ building, floor string }
	floors := make(map[int64]place)
	for _, b := range hierarchy {
		for _, f := range b.Floors {
			floors[f.ID] = place{building: b.Name, floor: f.Label}
		}
	}

	snap := &entity.Snapshot{
		Date:        date,
		Spaces:      make([]entity.Space, 0, len(spaces)),
		Bookings:    make([]entity.Booking, 0, len(bookings)),
		Malformed:   []entity.MalformedBooking{},
		Hierarchy:   hierarchy,
		RefreshedAt: now,
	}
	if snap.Hierarchy == nil {
		snap.Hierarchy = []entity.Building{}
	}

	seenSpaces := make(map[int64]struct{}, len(spaces))
	for _, s := range spaces {
		if _, dup := seenSpaces[s.ID]; dup {
			continue
		}
		seenSpaces[s.ID] = struct{}{}
		if s.FloorID != nil {
			if p, ok := floors[*s.FloorID]; ok {
				if s.Building == "" {
					s.Building = p.building
				}
				if s.Floor == "" {
					s.Floor = p.floor
				}
			}
		}
		snap.Spaces = append(snap.Spaces, s)
	}

	seenBookings := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		if _, dup := seenBookings[b.ID]; dup {
			continue
		}
		seenBookings[b.ID] = struct{}{}
		if !b.Blocking() {
			continue
		}
		if _, err := b.Window(); err != nil {
			snap.Malformed = append(snap.Malformed, entity.MalformedBooking{Booking: b, Reason: err.Error()})
			continue
		}
		snap.Bookings = append(snap.Bookings, b)
	}
	return snap
}
