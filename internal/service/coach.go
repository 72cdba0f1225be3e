package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"fitcoach/internal/logging"
	"fitcoach/internal/planning"
	"fitcoach/internal/store"
)

// CoachService owns the current plan bundle. Readers get the cached
// bundle; a recompute swaps it whole so no reader ever sees a mix of old
// and new plans.
type CoachService struct {
	store   *store.Store
	logger  *zap.Logger
	now     func() time.Time
	current atomic.Pointer[store.BundleRecord]
}

// NewCoachService creates a coach service. A nil logger discards logs.
func NewCoachService(st *store.Store, logger *zap.Logger) *CoachService {
	return &CoachService{
		store:  st,
		logger: logging.OrNop(logger).Named("coach"),
		now:    time.Now,
	}
}

// Recompute derives a new bundle from inputs, persists it and makes it
// current. Invalid inputs leave the current bundle untouched.
func (c *CoachService) Recompute(ctx context.Context, in planning.ProfileInputs) (*store.BundleRecord, error) {
	bundle, err := planning.Recompute(in, c.now())
	if err != nil {
		return nil, err
	}

	id, err := c.store.SaveBundle(ctx, bundle)
	if err != nil {
		return nil, fmt.Errorf("saving bundle: %w", err)
	}

	rec := &store.BundleRecord{ID: id, CreatedAt: bundle.ComputedAt, Bundle: bundle}
	c.current.Store(rec)

	c.logger.Info("plan recomputed",
		zap.String("bundle_id", id),
		zap.Stringer("level", bundle.Level),
		zap.Stringer("persona", bundle.Persona.Persona),
		zap.Stringer("dominant", bundle.Profile.Dominant),
		zap.Int("macro_months", bundle.Plan.Macrocycle.DurationMonths),
	)
	return rec, nil
}

// Current returns the cached bundle, loading the newest stored one on
// first use. store.ErrNoBundle means nothing was ever computed.
func (c *CoachService) Current(ctx context.Context) (*store.BundleRecord, error) {
	if rec := c.current.Load(); rec != nil {
		return rec, nil
	}

	rec, err := c.store.LatestBundle(ctx)
	if err != nil {
		return nil, err
	}
	c.current.CompareAndSwap(nil, rec)
	return c.current.Load(), nil
}

// Ensure returns the current bundle when it was computed from the same
// inputs, and recomputes otherwise.
func (c *CoachService) Ensure(ctx context.Context, in planning.ProfileInputs) (*store.BundleRecord, error) {
	rec, err := c.Current(ctx)
	switch {
	case errors.Is(err, store.ErrNoBundle):
	case err != nil:
		return nil, err
	case sameInputs(rec.Bundle.Inputs, in):
		return rec, nil
	default:
		c.logger.Debug("profile changed, recomputing", zap.String("previous_bundle", rec.ID))
	}
	return c.Recompute(ctx, in)
}

// Session generates workout parameters for the target system against the
// current profile.
func (c *CoachService) Session(ctx context.Context, target planning.EnergySystem, equipment []string, minutes int) (planning.WorkoutParameters, error) {
	rec, err := c.Current(ctx)
	if err != nil {
		return planning.WorkoutParameters{}, err
	}
	return planning.GenerateSession(planning.SessionRequest{
		Target:          target,
		Profile:         rec.Bundle.Profile,
		DurationMinutes: minutes,
		Equipment:       equipment,
	}), nil
}

// NextSession generates a session for the system the progress analyzer
// says is most under-trained.
func (c *CoachService) NextSession(ctx context.Context, equipment []string, minutes int) (planning.WorkoutParameters, error) {
	report, err := c.Progress(ctx, ProgressSessionLimit, "")
	if err != nil {
		return planning.WorkoutParameters{}, err
	}
	return c.Session(ctx, report.NextFocus, equipment, minutes)
}

// Progress runs the progress analyzer over the newest limit sessions.
func (c *CoachService) Progress(ctx context.Context, limit int, feedback string) (planning.ProgressReport, error) {
	rec, err := c.Current(ctx)
	if err != nil {
		return planning.ProgressReport{}, err
	}
	if limit <= 0 {
		limit = ProgressSessionLimit
	}

	sessions, err := c.store.RecentSessions(ctx, limit)
	if err != nil {
		return planning.ProgressReport{}, fmt.Errorf("loading sessions: %w", err)
	}

	// The analyzer wants history in chronological order.
	completed := make([]planning.CompletedSession, len(sessions))
	for i, s := range sessions {
		completed[len(sessions)-1-i] = planning.CompletedSession{System: s.System}
	}

	report := planning.AnalyzeProgress(rec.Bundle.Profile, completed, feedback)
	c.logger.Debug("progress analyzed",
		zap.Int("sessions", report.Summary.TotalSessions),
		zap.Stringer("next_focus", report.NextFocus),
	)
	return report, nil
}

// LogSession records a manually completed session. A zero PerformedAt
// means now.
func (c *CoachService) LogSession(ctx context.Context, sess *store.Session) error {
	if !sess.System.Valid() {
		return fmt.Errorf("%w: %d", planning.ErrUnknownEnergySystem, int(sess.System))
	}
	if sess.PerformedAt.IsZero() {
		sess.PerformedAt = c.now()
	}
	sess.Source = store.SourceManual
	sess.ExternalID = ""

	if err := c.store.AddSession(ctx, sess); err != nil {
		return err
	}
	c.logger.Info("session logged",
		zap.String("session_id", sess.ID),
		zap.Stringer("system", sess.System),
		zap.Time("performed_at", sess.PerformedAt),
	)
	return nil
}

// RecentSessions returns the newest limit sessions.
func (c *CoachService) RecentSessions(ctx context.Context, limit int) ([]store.Session, error) {
	return c.store.RecentSessions(ctx, limit)
}

// GetSession returns one logged or imported session.
func (c *CoachService) GetSession(ctx context.Context, id string) (*store.Session, error) {
	return c.store.GetSession(ctx, id)
}

// DeleteSession removes a session so it no longer counts toward progress.
func (c *CoachService) DeleteSession(ctx context.Context, id string) error {
	if err := c.store.DeleteSession(ctx, id); err != nil {
		return err
	}
	c.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// SessionCounts returns how many sessions came from each source.
func (c *CoachService) SessionCounts(ctx context.Context) (map[string]int, error) {
	return c.store.CountSessions(ctx)
}

// History returns up to limit past bundles, newest first.
func (c *CoachService) History(ctx context.Context, limit int) ([]store.BundleRecord, error) {
	return c.store.ListBundles(ctx, limit)
}

func sameInputs(a, b planning.ProfileInputs) bool {
	if a.ExperienceLevel != b.ExperienceLevel ||
		a.FitnessLevel != b.FitnessLevel ||
		a.StrengthExperience != b.StrengthExperience ||
		a.Activity != b.Activity ||
		a.Goal != b.Goal ||
		a.SportFocus != b.SportFocus ||
		a.Persona != b.Persona {
		return false
	}
	if (a.GoalDate == nil) != (b.GoalDate == nil) {
		return false
	}
	if a.GoalDate != nil && !a.GoalDate.Equal(*b.GoalDate) {
		return false
	}
	return slices.Equal(a.CurrentActivities, b.CurrentActivities)
}
