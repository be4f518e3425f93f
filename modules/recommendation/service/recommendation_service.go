package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"room-booking-api/core/config"
	"room-booking-api/core/constants"
	"room-booking-api/core/errors"
	"room-booking-api/core/logger"
	"room-booking-api/core/metrics"
	"room-booking-api/core/utils"
	"room-booking-api/modules/recommendation/dto"
	"room-booking-api/modules/recommendation/entity"

	"golang.org/x/sync/errgroup"
)

const (
	MaxCandidates   = 10
	MaxAlternatives = 5
)

// DirectoryLoader is the part of DirectoryCache the service depends on.
type DirectoryLoader interface {
	Load(ctx context.Context, date string) (*entity.Snapshot, error)
	Refresh(ctx context.Context, date string) (*entity.Snapshot, error)
	InvalidateAll()
	Stats() dto.DirectoryStats
}

// RefreshEnqueuer schedules a background directory refresh.
type RefreshEnqueuer interface {
	EnqueueRefresh(ctx context.Context, date string) error
}

type RecommendationServiceInterface interface {
	Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResult, *errors.AppError)
	RefreshDirectory(ctx context.Context, date string) (*dto.DirectoryRefreshResponse, *errors.AppError)
	InvalidateDirectory(ctx context.Context) *errors.AppError
	Health(ctx context.Context) *dto.HealthResponse
}

// Settings controls request defaults and scoring fan-out.
type Settings struct {
	FillDefaults bool
	DefaultStart string
	DefaultEnd   string
	Workers      int
}

func SettingsFromConfig(cfg config.RecommendationConfig) Settings {
	return Settings{
		FillDefaults: cfg.FillDefaults,
		DefaultStart: cfg.DefaultStart,
		DefaultEnd:   cfg.DefaultEnd,
		Workers:      cfg.Workers,
	}
}

type RecommendationService struct {
	directory DirectoryLoader
	analyzer  *AvailabilityAnalyzer
	settings  Settings
	metrics   *metrics.Metrics
	enqueuer  RefreshEnqueuer
	now       func() time.Time
}

type ServiceOption func(*RecommendationService)

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *RecommendationService) { s.now = now }
}

func WithServiceMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *RecommendationService) { s.metrics = m }
}

func WithRefreshEnqueuer(e RefreshEnqueuer) ServiceOption {
	return func(s *RecommendationService) { s.enqueuer = e }
}

func NewRecommendationService(directory DirectoryLoader, analyzer *AvailabilityAnalyzer, settings Settings, opts ...ServiceOption) *RecommendationService {
	if analyzer == nil {
		analyzer = NewAvailabilityAnalyzer(nil)
	}
	if settings.Workers <= 0 {
		settings.Workers = 1
	}
	if settings.DefaultStart == "" {
		settings.DefaultStart = "09:00"
	}
	if settings.DefaultEnd == "" {
		settings.DefaultEnd = "10:00"
	}
	s := &RecommendationService{
		directory: directory,
		analyzer:  analyzer,
		settings:  settings,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *RecommendationService) Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResult, *errors.AppError) {
	started := time.Now()

	r, appErr := s.ParseRequest(req)
	if appErr != nil {
		s.metrics.ObserveRecommendation("invalid", time.Since(started))
		logger.Warn("RecommendationService:Recommend:InvalidRequest", "error", appErr)
		return nil, appErr
	}

	snap, err := s.directory.Load(ctx, r.Window.Date)
	if err != nil {
		s.metrics.ObserveRecommendation("unavailable", time.Since(started))
		logger.Error("RecommendationService:Recommend:LoadDirectory", "date", r.Window.Date, "error", err)
		if IsDataUnavailable(err) {
			return nil, errors.NewAppError(errors.ErrDataUnavailable, "space directory is unavailable, try again later", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load space directory", err)
	}

	spaces := ApplyFilters(snap.Spaces, r)
	candidates := s.scoreAll(spaces, r, snap.BookingsBySpace())
	ranked := RankCandidates(candidates, MaxCandidates)

	result := s.buildResult(r, ranked, len(candidates), snap)

	outcome := "ok"
	if len(ranked) == 0 {
		outcome = "empty"
	}
	s.metrics.ObserveRecommendation(outcome, time.Since(started))
	logger.Info("RecommendationService:Recommend:Success",
		"id", result.ID,
		"date", r.Window.Date,
		"window", r.Window.String(),
		"spaces", len(snap.Spaces),
		"candidates", len(ranked),
		"stale", snap.Stale,
	)
	return result, nil
}

// ParseRequest validates req and fills defaults when enabled.
func (s *RecommendationService) ParseRequest(req *dto.RecommendationRequest) (entity.Request, *errors.AppError) {
	if req == nil {
		return entity.Request{}, errors.NewAppError(errors.ErrInvalidRequestData, "request body is required", nil)
	}
	if req.Headcount <= 0 {
		return entity.Request{}, errors.NewAppError(errors.ErrInvalidRequestData, "headcount must be at least 1", nil)
	}
	if req.MinCapacity < 0 || req.MaxCapacity < 0 {
		return entity.Request{}, errors.NewAppError(errors.ErrInvalidRequestData, "capacity limits must not be negative", nil)
	}
	if req.MaxCapacity > 0 && req.MaxCapacity < req.MinCapacity {
		return entity.Request{}, errors.NewAppError(errors.ErrInvalidRequestData, "max_capacity must not be below min_capacity", nil)
	}

	date := strings.TrimSpace(req.Date)
	start := strings.TrimSpace(req.StartTime)
	end := strings.TrimSpace(req.EndTime)

	if s.settings.FillDefaults {
		if date == "" {
			date = s.now().Format(constants.DateLayout)
		}
		if start == "" {
			start = s.settings.DefaultStart
		}
		if end == "" {
			end = s.settings.DefaultEnd
		}
	}
	if date == "" || start == "" || end == "" {
		return entity.Request{}, errors.NewAppError(errors.ErrInvalidRequestData, "date, start_time and end_time are required", nil)
	}

	window, err := entity.NewTimeWindow(date, start, end)
	if err != nil {
		return entity.Request{}, errors.NewAppError(errors.ErrInvalidRequestData, "invalid date or time window", err)
	}

	return entity.Request{
		Window:               window,
		Headcount:            req.Headcount,
		Activity:             strings.TrimSpace(req.Activity),
		PreferredBuilding:    strings.TrimSpace(req.PreferredBuilding),
		PreferredFloor:       strings.TrimSpace(req.PreferredFloor),
		PreferredCategory:    strings.TrimSpace(req.PreferredCategory),
		MinCapacity:          req.MinCapacity,
		MaxCapacity:          req.MaxCapacity,
		AcceptableBuildings:  req.AcceptableBuildings,
		AcceptableCategories: req.AcceptableCategories,
	}, nil
}

// scoreAll evaluates every space independently. The snapshot is read-only
// so workers share it without locking.
func (s *RecommendationService) scoreAll(spaces []entity.Space, r entity.Request, bookings map[int64][]entity.Booking) []entity.Candidate {
	candidates := make([]entity.Candidate, len(spaces))

	var g errgroup.Group
	g.SetLimit(s.settings.Workers)
	for i := range spaces {
		i := i
		g.Go(func() error {
			space := spaces[i]
			availability := s.analyzer.Analyze(space, r.Window, bookings[space.ID])
			candidates[i] = entity.Candidate{
				Space:        space,
				Availability: availability,
				Score:        Score(space, r, availability),
			}
			return nil
		})
	}
	_ = g.Wait()
	return candidates
}

// RankCandidates sorts by total score, then space ID, keeps the first
// limit and flags the head as optimal.
func RankCandidates(candidates []entity.Candidate, limit int) []entity.Candidate {
	ranked := make([]entity.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score.Total != ranked[j].Score.Total {
			return ranked[i].Score.Total > ranked[j].Score.Total
		}
		return ranked[i].Space.ID < ranked[j].Space.ID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if len(ranked) > 0 {
		ranked[0].IsOptimal = true
		ranked[0].WhyOptimal = WhyOptimal(ranked[0])
	}
	return ranked
}

func (s *RecommendationService) buildResult(r entity.Request, ranked []entity.Candidate, analyzed int, snap *entity.Snapshot) *dto.RecommendationResult {
	result := &dto.RecommendationResult{
		ID:                  utils.GenerateID(),
		Date:                r.Window.Date,
		RequestedWindow:     r.Window,
		Candidates:          ranked,
		Rationale:           RationaleNoSpace,
		Alternatives:        TopAlternatives(ranked, MaxAlternatives),
		Reasoning:           Reasoning(ranked),
		OptimalStrategy:     OptimalStrategy(ranked),
		ConflictResolution:  ConflictResolution(ranked),
		TotalSpacesAnalyzed: analyzed,
		CapacityAnalysis:    CapacityAnalysis(ranked, r.Headcount),
		LocationAnalysis:    LocationAnalysis(ranked, r),
		TimingAnalysis:      TimingAnalysis(ranked, r.Window),
		Stale:               snap.Stale,
		GeneratedAt:         s.now().UTC(),
	}
	if len(ranked) > 0 {
		optimal := ranked[0]
		result.Optimal = &optimal
		result.Rationale = optimal.WhyOptimal
		result.OptimalSlot = OptimalSlot(&optimal, r.Window)
	}
	result.HasConflicts = result.ConflictResolution != nil
	return result
}

func (s *RecommendationService) RefreshDirectory(ctx context.Context, date string) (*dto.DirectoryRefreshResponse, *errors.AppError) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.now().Format(constants.DateLayout)
	}
	if _, err := time.Parse(constants.DateLayout, date); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "date must be YYYY-MM-DD", err)
	}

	snap, err := s.directory.Refresh(ctx, date)
	if err != nil {
		logger.Error("RecommendationService:RefreshDirectory:Error", "date", date, "error", err)
		if IsDataUnavailable(err) {
			return nil, errors.NewAppError(errors.ErrDataUnavailable, "space directory is unavailable, try again later", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to refresh space directory", err)
	}

	return &dto.DirectoryRefreshResponse{
		Date:        snap.Date,
		RefreshedAt: snap.RefreshedAt,
		Spaces:      len(snap.Spaces),
		Bookings:    len(snap.Bookings),
		Malformed:   len(snap.Malformed),
		Stale:       snap.Stale,
	}, nil
}

func (s *RecommendationService) InvalidateDirectory(ctx context.Context) *errors.AppError {
	s.directory.InvalidateAll()
	if s.enqueuer == nil {
		return nil
	}
	date := s.now().Format(constants.DateLayout)
	if err := s.enqueuer.EnqueueRefresh(ctx, date); err != nil {
		logger.Error("RecommendationService:InvalidateDirectory:Enqueue", "date", date, "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "directory invalidated but refresh could not be scheduled", err)
	}
	return nil
}

func (s *RecommendationService) Health(_ context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:    "ok",
		Directory: s.directory.Stats(),
	}
}
