package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"fitcoach/internal/logging"
	"fitcoach/internal/store"
	"fitcoach/internal/strava"
)

// ActivitySource lists the athlete's activities. *strava.Client
// implements it.
type ActivitySource interface {
	GetActivities(ctx context.Context, after time.Time, page, perPage int) ([]strava.Activity, error)
	RateLimitStatus() (shortRemaining, dailyRemaining int)
}

// SyncService imports Strava activities as tagged training sessions
type SyncService struct {
	source ActivitySource
	store  *store.Store
	maxHR     float64
	restingHR float64
	logger    *zap.Logger
	now    func() time.Time
}

// NewSyncService creates a sync service. maxHR and restingHR drive
// heart-rate tagging; zero falls back to DefaultMaxHR and DefaultRestingHR.
func NewSyncService(source ActivitySource, st *store.Store, maxHR, restingHR float64, logger *zap.Logger) *SyncService {
	if maxHR == 0 {
		maxHR = DefaultMaxHR
	}
	if restingHR == 0 {
		restingHR = DefaultRestingHR
	}
	return &SyncService{
		source:    source,
		store:     st,
		maxHR:     maxHR,
		restingHR: restingHR,
		logger:    logging.OrNop(logger).Named("sync"),
		now:       time.Now,
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase           string // "activities"
	Fetched         int
	Imported        int
	CurrentActivity string
	Error           error
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	ActivitiesFetched int
	SessionsCreated   int
	SessionsUpdated   int
	Skipped           int
	Errors            []error
}

// SyncAll imports every activity since the last successful sync. The
// progress channel, when non-nil, is closed on return.
func (s *SyncService) SyncAll(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}
	started := s.now()

	after, err := s.store.LastSync(ctx, store.KeyLastActivitySync)
	if err != nil {
		return result, fmt.Errorf("reading sync state: %w", err)
	}
	s.logger.Info("sync started", zap.Time("after", after))

	if progress != nil {
		progress <- SyncProgress{Phase: "activities"}
	}

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		activities, err := s.source.GetActivities(ctx, after, page, ActivitiesPerPage)
		if err != nil {
			return result, fmt.Errorf("fetching page %d: %w", page, err)
		}
		if len(activities) == 0 {
			break
		}
		result.ActivitiesFetched += len(activities)

		for _, a := range activities {
			s.importActivity(ctx, a, result)
			if progress != nil {
				progress <- SyncProgress{
					Phase:           "activities",
					Fetched:         result.ActivitiesFetched,
					Imported:        result.SessionsCreated + result.SessionsUpdated,
					CurrentActivity: a.Name,
				}
			}
		}

		if len(activities) < ActivitiesPerPage {
			break // Last page
		}
	}

	if err := s.store.SetLastSync(ctx, store.KeyLastActivitySync, started); err != nil {
		return result, fmt.Errorf("saving sync state: %w", err)
	}

	short, daily := s.source.RateLimitStatus()
	s.logger.Info("sync finished",
		zap.Int("fetched", result.ActivitiesFetched),
		zap.Int("created", result.SessionsCreated),
		zap.Int("updated", result.SessionsUpdated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
		zap.Int("rate_short_remaining", short),
		zap.Int("rate_daily_remaining", daily),
	)
	return result, nil
}

func (s *SyncService) importActivity(ctx context.Context, a strava.Activity, result *SyncResult) {
	system, ok := ClassifyActivity(a, s.maxHR, s.restingHR)
	if !ok {
		result.Skipped++
		return
	}

	sess := convertActivity(a)
	sess.System = system

	created, err := s.store.UpsertImportedSession(ctx, sess)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("storing activity %d: %w", a.ID, err))
		s.logger.Warn("activity not stored", zap.Int64("activity_id", a.ID), zap.Error(err))
		return
	}
	if created {
		result.SessionsCreated++
	} else {
		result.SessionsUpdated++
	}
}

// RateLimitStatus returns the current rate limit status from the client
func (s *SyncService) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return s.source.RateLimitStatus()
}

// convertActivity converts a Strava API activity to an imported session
func convertActivity(a strava.Activity) *store.Session {
	sess := &store.Session{
		PerformedAt:     a.StartDate,
		Source:          store.SourceStrava,
		ExternalID:      "strava:" + strconv.FormatInt(a.ID, 10),
		Name:            a.Name,
		DurationSeconds: a.MovingTime,
	}
	if a.AverageHeartrate > 0 {
		hr := a.AverageHeartrate
		sess.AvgHeartrate = &hr
	}
	return sess
}
