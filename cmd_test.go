package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fitcoach/internal/planning"
	"fitcoach/internal/store"
)

func TestFormatPattern(t *testing.T) {
	days := [7]planning.DayType{
		planning.DayTraining, planning.DayRest, planning.DayTraining, planning.DayActiveRecovery,
		planning.DayTraining, planning.DayRest, planning.DayRest,
	}
	got := formatPattern(days)
	if !strings.HasPrefix(got, "Mon training, Tue rest") || !strings.Contains(got, "Thu active recovery") {
		t.Errorf("formatPattern() = %q", got)
	}
}

func TestPrintPlan(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b, err := planning.Recompute(planning.ProfileInputs{FitnessLevel: "intermediate", Goal: "marathon"}, now)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	var buf bytes.Buffer
	if err := printPlan(&buf, b); err != nil {
		t.Fatalf("printPlan: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Dominant system", "aerobic", "Season", "Current block"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintProgress(t *testing.T) {
	profile := planning.BuildProfile(planning.ProfileRequest{Goal: "powerlifting", FitnessLevel: "advanced"})
	r := planning.AnalyzeProgress(profile, []planning.CompletedSession{
		{System: planning.Aerobic}, {System: planning.Aerobic},
	}, "")

	var buf bytes.Buffer
	if err := printProgress(&buf, r); err != nil {
		t.Fatalf("printProgress: %v", err)
	}
	if !strings.Contains(buf.String(), "Next focus: anaerobic-alactic") {
		t.Errorf("progress output = %q, want alactic focus", buf.String())
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := printHistory(&buf, nil); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "No plans") {
		t.Errorf("empty history = %q", buf.String())
	}

	now := time.Now()
	b, err := planning.Recompute(planning.ProfileInputs{Goal: "powerlifting"}, now)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	buf.Reset()
	records := []store.BundleRecord{{ID: "a", CreatedAt: now.Add(-2 * time.Hour), Bundle: b}}
	if err := printHistory(&buf, records); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"COMPUTED", "2 hours ago", "anaerobic-alactic", "powerlifting"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}
}
