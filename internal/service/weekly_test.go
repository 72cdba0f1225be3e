package service

import (
	"context"
	"testing"
	"time"

	"fitcoach/internal/planning"
	"fitcoach/internal/store"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		// Wednesday
		{time.Date(2026, 3, 4, 18, 0, 0, 0, time.Local), time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)},
		// Monday
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local), time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)},
		// Sunday belongs to the week before
		{time.Date(2026, 3, 8, 23, 59, 0, 0, time.Local), time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)},
		// across a month boundary
		{time.Date(2026, 4, 1, 7, 0, 0, 0, time.Local), time.Date(2026, 3, 30, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		if got := weekStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("weekStart(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestBucketByWeek(t *testing.T) {
	first := time.Date(2026, 2, 16, 0, 0, 0, 0, time.Local)
	at := func(days int, sys planning.EnergySystem) store.Session {
		return store.Session{PerformedAt: first.AddDate(0, 0, days).Add(9 * time.Hour), System: sys}
	}

	sessions := []store.Session{
		at(-1, planning.Aerobic), // before the window
		at(0, planning.Aerobic),
		at(2, planning.AnaerobicAlactic),
		at(6, planning.Mixed),
		at(7, planning.AnaerobicLactic),
		at(15, planning.Aerobic),
		at(21, planning.Aerobic), // after the window
	}

	got := bucketByWeek(sessions, first, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	want := []planning.SystemTally{
		{Aerobic: 1, Alactic: 1, Mixed: 1},
		{Lactic: 1},
		{Aerobic: 1},
	}
	for i, w := range want {
		if got[i].Tally != w {
			t.Errorf("week %d tally = %+v, want %+v", i, got[i].Tally, w)
		}
	}
	if got[0].Total() != 3 {
		t.Errorf("week 0 total = %d, want 3", got[0].Total())
	}
	if got[1].Label != "Feb 23" {
		t.Errorf("week 1 label = %q, want Feb 23", got[1].Label)
	}
}

func TestWeeklySystemCounts(t *testing.T) {
	ctx := context.Background()
	c := newTestCoach(t)
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	c.now = func() time.Time { return now }

	for _, days := range []int{0, -1, -8, -100} {
		sess := &store.Session{System: planning.Aerobic, PerformedAt: now.AddDate(0, 0, days)}
		if err := c.LogSession(ctx, sess); err != nil {
			t.Fatalf("LogSession: %v", err)
		}
	}

	weeks, err := c.WeeklySystemCounts(ctx, 4)
	if err != nil {
		t.Fatalf("WeeklySystemCounts: %v", err)
	}
	if len(weeks) != 4 {
		t.Fatalf("len = %d, want 4", len(weeks))
	}
	if !weeks[3].Start.Equal(weekStart(now)) {
		t.Errorf("last week starts %s, want %s", weeks[3].Start, weekStart(now))
	}
	if weeks[3].Total() != 2 || weeks[2].Total() != 1 {
		t.Errorf("totals = %d, %d; want 1, 2", weeks[2].Total(), weeks[3].Total())
	}
}

func TestWeeklySystemCounts_Clamped(t *testing.T) {
	c := newTestCoach(t)

	weeks, err := c.WeeklySystemCounts(context.Background(), 500000)
	if err != nil {
		t.Fatalf("WeeklySystemCounts: %v", err)
	}
	if len(weeks) != MaxChartWeeks {
		t.Errorf("len = %d, want %d", len(weeks), MaxChartWeeks)
	}

	weeks, err = c.WeeklySystemCounts(context.Background(), 0)
	if err != nil {
		t.Fatalf("WeeklySystemCounts: %v", err)
	}
	if len(weeks) != ChartWeeks {
		t.Errorf("default len = %d, want %d", len(weeks), ChartWeeks)
	}
}
