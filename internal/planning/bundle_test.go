package planning

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecompute_AdvancedLifter(t *testing.T) {
	b, err := Recompute(ProfileInputs{
		FitnessLevel:       "advanced",
		StrengthExperience: "advanced-lifter",
		Activity:           "strength-power",
		Goal:               "powerlifting meet",
	}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	if b.Level != AdvancedCompetitive {
		t.Errorf("Level = %s, want advanced-competitive", b.Level)
	}
	if b.Persona.Persona != PersonaSportSpecific || b.Persona.ProgressionRate != RatePeriodized {
		t.Errorf("Persona = %+v, want SportSpecific/periodized", b.Persona)
	}
	if b.Profile.Assessment.RecoveryAbility != "excellent" {
		t.Errorf("assessment row = %+v, want advanced-competitive row", b.Profile.Assessment)
	}
	if b.Plan.Progression.DeloadFrequency != 6 {
		t.Errorf("DeloadFrequency = %d, want 6", b.Plan.Progression.DeloadFrequency)
	}
	if !b.ComputedAt.Equal(testNow) {
		t.Errorf("ComputedAt = %s, want %s", b.ComputedAt, testNow)
	}
}

func TestRecompute_Deterministic(t *testing.T) {
	goal := testNow.AddDate(0, 9, 0)
	in := ProfileInputs{
		FitnessLevel:      "intermediate",
		Goal:              "first marathon",
		SportFocus:        "running",
		GoalDate:          &goal,
		CurrentActivities: []string{"running", "yoga"},
	}

	a, err := Recompute(in, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	b, _ := Recompute(in, testNow)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Recompute is not deterministic (-first +second):\n%s", diff)
	}

	in.CurrentActivities[0] = "mutated"
	*in.GoalDate = testNow
	if a.Inputs.CurrentActivities[0] != "running" || a.Inputs.GoalDate.Equal(testNow) {
		t.Error("bundle inputs alias the caller's slices or pointers")
	}
}

func TestRecompute_PersonaOverride(t *testing.T) {
	b, err := Recompute(ProfileInputs{FitnessLevel: "intermediate", Goal: "general fitness", Persona: "minimalist"}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if b.Persona.Persona != PersonaTrainingPage {
		t.Errorf("Persona = %s, want TrainingPage", b.Persona.Persona)
	}
	notes := b.Plan.Macrocycle.AdaptationNotes
	if notes[len(notes)-1] != personaNotes[PersonaTrainingPage] {
		t.Errorf("Expected TrainingPage note last, got %v", notes)
	}
}

func TestRecompute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		in   ProfileInputs
		want error
	}{
		{"bad level", ProfileInputs{ExperienceLevel: "semi-pro", Goal: "x"}, ErrUnknownExperienceLevel},
		{"bad persona", ProfileInputs{Goal: "x", Persona: "sergeant"}, ErrUnknownPersona},
	}
	for _, tt := range tests {
		_, err := Recompute(tt.in, testNow)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestRecompute_UnknownFitnessTagIsNotAnError(t *testing.T) {
	b, err := Recompute(ProfileInputs{FitnessLevel: "weekend-warrior", Goal: "stay healthy"}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if b.Level != AmateurRegular {
		t.Errorf("Level = %s, want amateur-regular", b.Level)
	}
	if b.Profile.Demands.Category != CategoryMixed {
		t.Errorf("Category = %s, want mixed", b.Profile.Demands.Category)
	}
}
