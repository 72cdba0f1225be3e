package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"fitcoach/internal/planning"
)

// setupTestStore creates an in-memory database for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s, err := NewTestStore(sqlDB)
	if err != nil {
		sqlDB.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return s
}

var base = time.Date(2026, time.May, 4, 7, 30, 0, 0, time.UTC)

func TestLatestBundle_Empty(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.LatestBundle(context.Background()); !errors.Is(err, ErrNoBundle) {
		t.Errorf("LatestBundle() error = %v, want ErrNoBundle", err)
	}
}

func TestSaveBundle_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	goal := base.AddDate(0, 6, 0)
	b, err := planning.Recompute(planning.ProfileInputs{
		FitnessLevel:      "advanced",
		Activity:          "endurance",
		Goal:              "marathon",
		GoalDate:          &goal,
		CurrentActivities: []string{"running"},
	}, base)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	id, err := s.SaveBundle(ctx, b)
	if err != nil {
		t.Fatalf("SaveBundle: %v", err)
	}
	if id == "" {
		t.Fatal("Expected non-empty bundle id")
	}

	rec, err := s.LatestBundle(ctx)
	if err != nil {
		t.Fatalf("LatestBundle: %v", err)
	}
	if rec.ID != id {
		t.Errorf("ID = %q, want %q", rec.ID, id)
	}
	if !rec.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %s, want %s", rec.CreatedAt, base)
	}
	if diff := cmp.Diff(b, rec.Bundle); diff != "" {
		t.Errorf("bundle changed through storage (-saved +loaded):\n%s", diff)
	}
}

func TestLatestBundle_NewestWins(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first, _ := planning.Recompute(planning.ProfileInputs{Goal: "marathon"}, base)
	second, _ := planning.Recompute(planning.ProfileInputs{Goal: "powerlifting"}, base.Add(time.Hour))

	if _, err := s.SaveBundle(ctx, first); err != nil {
		t.Fatalf("SaveBundle: %v", err)
	}
	if _, err := s.SaveBundle(ctx, second); err != nil {
		t.Fatalf("SaveBundle: %v", err)
	}

	rec, err := s.LatestBundle(ctx)
	if err != nil {
		t.Fatalf("LatestBundle: %v", err)
	}
	if rec.Bundle.Inputs.Goal != "powerlifting" {
		t.Errorf("latest goal = %q, want powerlifting", rec.Bundle.Inputs.Goal)
	}

	all, err := s.ListBundles(ctx, 10)
	if err != nil {
		t.Fatalf("ListBundles: %v", err)
	}
	if len(all) != 2 || all[1].Bundle.Inputs.Goal != "marathon" {
		t.Errorf("ListBundles returned %d bundles in wrong order", len(all))
	}
}

func TestSessions_AddAndRecent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	systems := []planning.EnergySystem{planning.Aerobic, planning.AnaerobicAlactic, planning.AnaerobicLactic, planning.Mixed}
	for i, sys := range systems {
		sess := &Session{
			PerformedAt:     base.AddDate(0, 0, i),
			System:          sys,
			DurationSeconds: 1800,
			Note:            "felt good",
		}
		if err := s.AddSession(ctx, sess); err != nil {
			t.Fatalf("AddSession: %v", err)
		}
		if sess.ID == "" || sess.Source != SourceManual {
			t.Errorf("AddSession did not fill defaults: %+v", sess)
		}
	}

	recent, err := s.RecentSessions(ctx, 3)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("RecentSessions returned %d, want 3", len(recent))
	}
	if recent[0].System != planning.Mixed || recent[2].System != planning.AnaerobicAlactic {
		t.Errorf("RecentSessions not newest first: %v, %v", recent[0].System, recent[2].System)
	}
	if recent[0].Note != "felt good" || recent[0].AvgHeartrate != nil {
		t.Errorf("unexpected session fields: %+v", recent[0])
	}

	since, err := s.SessionsSince(ctx, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("SessionsSince: %v", err)
	}
	if len(since) != 2 || since[0].System != planning.AnaerobicLactic {
		t.Errorf("SessionsSince returned %+v", since)
	}
}

func TestUpsertImportedSession(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	hr := 148.0
	sess := &Session{
		PerformedAt:     base,
		System:          planning.Mixed,
		Source:          SourceStrava,
		ExternalID:      "strava:101",
		Name:            "Morning Run",
		DurationSeconds: 2400,
		AvgHeartrate:    &hr,
	}
	created, err := s.UpsertImportedSession(ctx, sess)
	if err != nil {
		t.Fatalf("UpsertImportedSession: %v", err)
	}
	if !created {
		t.Error("Expected first import to create a row")
	}
	firstID := sess.ID

	again := *sess
	again.ID = ""
	again.System = planning.Aerobic
	created, err = s.UpsertImportedSession(ctx, &again)
	if err != nil {
		t.Fatalf("UpsertImportedSession: %v", err)
	}
	if created {
		t.Error("Expected re-import to update, not create")
	}
	if again.ID != firstID {
		t.Errorf("re-import ID = %q, want %q", again.ID, firstID)
	}

	got, err := s.GetSession(ctx, firstID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.System != planning.Aerobic {
		t.Errorf("System = %s, want aerobic after re-import", got.System)
	}
	if got.AvgHeartrate == nil || *got.AvgHeartrate != 148 {
		t.Errorf("AvgHeartrate = %v, want 148", got.AvgHeartrate)
	}

	counts, err := s.CountSessions(ctx)
	if err != nil {
		t.Fatalf("CountSessions: %v", err)
	}
	if counts[SourceStrava] != 1 {
		t.Errorf("strava sessions = %d, want 1", counts[SourceStrava])
	}

	if _, err := s.UpsertImportedSession(ctx, &Session{PerformedAt: base}); err == nil {
		t.Error("Expected error for missing external id")
	}
}

func TestDeleteSession(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sess := &Session{PerformedAt: base, System: planning.Aerobic}
	if err := s.AddSession(ctx, sess); err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession after delete = %v, want ErrSessionNotFound", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second DeleteSession = %v, want ErrSessionNotFound", err)
	}
}

func TestSyncState(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	last, err := s.LastSync(ctx, KeyLastActivitySync)
	if err != nil || !last.IsZero() {
		t.Fatalf("LastSync on empty store = %v, %v; want zero time", last, err)
	}

	if err := s.SetLastSync(ctx, KeyLastActivitySync, base); err != nil {
		t.Fatalf("SetLastSync: %v", err)
	}
	if err := s.SetLastSync(ctx, KeyLastActivitySync, base.Add(time.Hour)); err != nil {
		t.Fatalf("SetLastSync: %v", err)
	}
	last, err = s.LastSync(ctx, KeyLastActivitySync)
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !last.Equal(base.Add(time.Hour)) {
		t.Errorf("LastSync = %s, want %s", last, base.Add(time.Hour))
	}
}

func TestAuth(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.GetAuth(ctx); !errors.Is(err, ErrNoAuth) {
		t.Errorf("GetAuth on empty store = %v, want ErrNoAuth", err)
	}
	if err := s.UpdateTokens(ctx, "a", "r", base); !errors.Is(err, ErrNoAuth) {
		t.Errorf("UpdateTokens on empty store = %v, want ErrNoAuth", err)
	}

	if err := s.SaveAuth(ctx, &Auth{AthleteID: 42, AccessToken: "a1", RefreshToken: "r1", ExpiresAt: base}); err != nil {
		t.Fatalf("SaveAuth: %v", err)
	}
	if err := s.UpdateTokens(ctx, "a2", "r2", base.Add(6*time.Hour)); err != nil {
		t.Fatalf("UpdateTokens: %v", err)
	}

	auth, err := s.GetAuth(ctx)
	if err != nil {
		t.Fatalf("GetAuth: %v", err)
	}
	if auth.AthleteID != 42 || auth.AccessToken != "a2" || !auth.ExpiresAt.Equal(base.Add(6*time.Hour)) {
		t.Errorf("GetAuth = %+v", auth)
	}
}
