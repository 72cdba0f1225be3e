package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"fitcoach/internal/planning"
	"fitcoach/internal/store"
)

// WeekCounts is one week's session tally per energy system
type WeekCounts struct {
	Start time.Time            `json:"start"`
	Label string               `json:"label"` // e.g. "Jan 06"
	Tally planning.SystemTally `json:"tally"`
}

// Total returns the number of sessions in the week
func (w WeekCounts) Total() int {
	return w.Tally.Aerobic + w.Tally.Alactic + w.Tally.Lactic + w.Tally.Mixed
}

// WeeklySystemCounts returns per-week session counts for the last weeks
// weeks, oldest first. Weeks start on Monday in the local time zone.
// weeks <= 0 means ChartWeeks; anything above MaxChartWeeks is clamped.
func (c *CoachService) WeeklySystemCounts(ctx context.Context, weeks int) ([]WeekCounts, error) {
	if weeks <= 0 {
		weeks = ChartWeeks
	}
	weeks = min(weeks, MaxChartWeeks)

	thisWeek := weekStart(c.now())
	first := thisWeek.AddDate(0, 0, -7*(weeks-1))

	sessions, err := c.store.SessionsSince(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	return bucketByWeek(sessions, first, weeks), nil
}

func bucketByWeek(sessions []store.Session, first time.Time, weeks int) []WeekCounts {
	out := make([]WeekCounts, weeks)
	for i := range out {
		start := first.AddDate(0, 0, 7*i)
		out[i] = WeekCounts{Start: start, Label: start.Format("Jan 02")}
	}

	for _, s := range sessions {
		// rounded so DST shifts don't move a session into the previous week
		idx := int(math.Round(weekStart(s.PerformedAt).Sub(first).Hours() / (24 * 7)))
		if idx < 0 || idx >= weeks {
			continue
		}
		t := &out[idx].Tally
		switch s.System {
		case planning.Aerobic:
			t.Aerobic++
		case planning.AnaerobicAlactic:
			t.Alactic++
		case planning.AnaerobicLactic:
			t.Lactic++
		default:
			t.Mixed++
		}
	}
	return out
}

// weekStart returns local midnight of the Monday on or before t.
func weekStart(t time.Time) time.Time {
	t = t.Local()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return day.AddDate(0, 0, -offset)
}
