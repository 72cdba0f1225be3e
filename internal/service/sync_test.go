package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitcoach/internal/planning"
	"fitcoach/internal/store"
	"fitcoach/internal/strava"
)

// fakeSource serves a fixed activity list in pages.
type fakeSource struct {
	activities []strava.Activity
	afters     []time.Time
	err        error
}

func (f *fakeSource) GetActivities(ctx context.Context, after time.Time, page, perPage int) ([]strava.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.afters = append(f.afters, after)

	var out []strava.Activity
	for _, a := range f.activities {
		if a.StartDate.After(after) {
			out = append(out, a)
		}
	}
	start := (page - 1) * perPage
	if start >= len(out) {
		return nil, nil
	}
	return out[start:min(start+perPage, len(out))], nil
}

func (f *fakeSource) RateLimitStatus() (int, int) { return 100, 1000 }

func newTestSync(t *testing.T, src *fakeSource) (*SyncService, *store.Store) {
	t.Helper()
	st := setupTestStore(t)
	s := NewSyncService(src, st, 0, 0, nil)
	s.now = func() time.Time { return testNow }
	return s, st
}

func TestSyncAll_ImportsAndTags(t *testing.T) {
	ctx := context.Background()
	day := testNow.AddDate(0, 0, -3)
	src := &fakeSource{activities: []strava.Activity{
		{ID: 1, Name: "Easy run", SportType: "Run", StartDate: day, MovingTime: 45 * 60, AverageHeartrate: 130},
		{ID: 2, Name: "Squats", SportType: "WeightTraining", StartDate: day.Add(2 * time.Hour), MovingTime: 30 * 60},
		{ID: 3, Name: "Stretch", SportType: "Yoga", StartDate: day.Add(4 * time.Hour), MovingTime: 30},
	}}
	s, st := newTestSync(t, src)

	progress := make(chan SyncProgress, 16)
	result, err := s.SyncAll(ctx, progress)
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}

	var updates int
	for range progress {
		updates++
	}
	if updates != 4 {
		t.Errorf("progress updates = %d, want 4", updates)
	}

	if result.ActivitiesFetched != 3 || result.SessionsCreated != 2 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 3 fetched, 2 created, 1 skipped", result)
	}

	sessions, err := st.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("stored %d sessions, want 2", len(sessions))
	}
	if sessions[0].ExternalID != "strava:2" || sessions[0].System != planning.AnaerobicAlactic {
		t.Errorf("newest session = %+v, want strava:2 tagged alactic", sessions[0])
	}
	if sessions[1].System != planning.Aerobic || sessions[1].AvgHeartrate == nil || *sessions[1].AvgHeartrate != 130 {
		t.Errorf("run session = %+v, want aerobic with heart rate", sessions[1])
	}

	last, err := st.LastSync(ctx, store.KeyLastActivitySync)
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !last.Equal(testNow) {
		t.Errorf("LastSync = %s, want %s", last, testNow)
	}
}

func TestSyncAll_Incremental(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{activities: []strava.Activity{
		{ID: 7, Name: "Ride", SportType: "Ride", StartDate: testNow.AddDate(0, 0, -1), MovingTime: 3600},
	}}
	s, _ := newTestSync(t, src)

	if _, err := s.SyncAll(ctx, nil); err != nil {
		t.Fatalf("first SyncAll: %v", err)
	}

	// The same activity renamed after the first sync, plus a new one.
	src.activities[0].StartDate = testNow.Add(time.Minute)
	src.activities[0].Name = "Ride (edited)"
	src.activities = append(src.activities, strava.Activity{
		ID: 8, Name: "Sprints", SportType: "Run", StartDate: testNow.Add(time.Hour),
		MovingTime: 15 * 60, AverageHeartrate: 170,
	})
	s.now = func() time.Time { return testNow.Add(2 * time.Hour) }

	result, err := s.SyncAll(ctx, nil)
	if err != nil {
		t.Fatalf("second SyncAll: %v", err)
	}
	if result.SessionsCreated != 1 || result.SessionsUpdated != 1 {
		t.Errorf("result = %+v, want 1 created and 1 updated", result)
	}
	if len(src.afters) != 2 || !src.afters[0].IsZero() || !src.afters[1].Equal(testNow) {
		t.Errorf("after cursors = %v, want zero then %s", src.afters, testNow)
	}
}

func TestSyncAll_Paginates(t *testing.T) {
	var acts []strava.Activity
	for i := 0; i < ActivitiesPerPage+5; i++ {
		acts = append(acts, strava.Activity{
			ID: int64(i + 1), SportType: "Walk", MovingTime: 30 * 60,
			StartDate: testNow.Add(-time.Duration(ActivitiesPerPage+5-i) * time.Hour),
		})
	}
	s, st := newTestSync(t, &fakeSource{activities: acts})

	result, err := s.SyncAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if result.SessionsCreated != ActivitiesPerPage+5 {
		t.Errorf("created = %d, want %d", result.SessionsCreated, ActivitiesPerPage+5)
	}
	counts, err := st.CountSessions(context.Background())
	if err != nil {
		t.Fatalf("CountSessions: %v", err)
	}
	if counts[store.SourceStrava] != ActivitiesPerPage+5 {
		t.Errorf("strava sessions = %d, want %d", counts[store.SourceStrava], ActivitiesPerPage+5)
	}
}

func TestSyncAll_SourceErrorKeepsCursor(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{err: strava.ErrUnauthorized}
	s, st := newTestSync(t, src)

	if _, err := s.SyncAll(ctx, nil); !errors.Is(err, strava.ErrUnauthorized) {
		t.Fatalf("SyncAll() error = %v, want ErrUnauthorized", err)
	}
	last, err := st.LastSync(ctx, store.KeyLastActivitySync)
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("failed sync advanced the cursor to %s", last)
	}
}
