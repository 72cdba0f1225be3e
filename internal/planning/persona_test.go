package planning

import (
	"errors"
	"testing"
)

func TestSelectPersona_Rules(t *testing.T) {
	tests := []struct {
		name     string
		level    ExperienceLevel
		activity string
		persona  Persona
		safety   string
		rate     string
	}{
		{"complete beginner", CompleteBeginner, "", PersonaBeginnerGuide, SafetyMaximum, RateVeryConservative},
		{"complete beginner ignores sport", CompleteBeginner, "endurance", PersonaBeginnerGuide, SafetyMaximum, RateVeryConservative},
		{"inconsistent beginner", BeginnerInconsistent, "team-sports", PersonaBeginnerGuide, SafetyHigh, RateConservative},
		{"amateur with sport", AmateurRegular, "endurance", PersonaFitCoach, SafetyModerate, RateModerate},
		{"intermediate endurance", IntermediateStructured, "endurance", PersonaSportSpecific, SafetyStandard, RateAggressive},
		{"advanced strength", AdvancedCompetitive, "strength-power", PersonaSportSpecific, SafetyAthleteManaged, RatePeriodized},
		{"advanced underscore tag", AdvancedCompetitive, "Combat_Sports", PersonaSportSpecific, SafetyAthleteManaged, RatePeriodized},
		{"advanced general", AdvancedCompetitive, "general-fitness", PersonaFitCoach, SafetyModerate, RateModerate},
		{"intermediate no activity", IntermediateStructured, "", PersonaFitCoach, SafetyModerate, RateModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectPersona(tt.level, tt.activity)
			if got.Persona != tt.persona {
				t.Errorf("Persona = %s, want %s", got.Persona, tt.persona)
			}
			if got.SafetyPriority != tt.safety {
				t.Errorf("SafetyPriority = %q, want %q", got.SafetyPriority, tt.safety)
			}
			if got.ProgressionRate != tt.rate {
				t.Errorf("ProgressionRate = %q, want %q", got.ProgressionRate, tt.rate)
			}
			if got.Reasoning == "" {
				t.Error("Expected non-empty reasoning")
			}
		})
	}
}

func TestSelectPersona_AlwaysReasons(t *testing.T) {
	activities := []string{"", "endurance", "knitting", "competitive-athlete"}
	for _, level := range ExperienceLevels() {
		for _, a := range activities {
			sel := SelectPersona(level, a)
			if !sel.Persona.Valid() {
				t.Errorf("SelectPersona(%s, %q) returned invalid persona %d", level, a, sel.Persona)
			}
			if sel.Reasoning == "" {
				t.Errorf("SelectPersona(%s, %q) has empty reasoning", level, a)
			}
		}
	}
}

func TestWithOverride(t *testing.T) {
	sel := SelectPersona(AmateurRegular, "")
	got := sel.WithOverride(PersonaTrainingPage)

	if got.Persona != PersonaTrainingPage {
		t.Errorf("Persona = %s, want TrainingPage", got.Persona)
	}
	if got.SafetyPriority != sel.SafetyPriority || got.ProgressionRate != sel.ProgressionRate {
		t.Error("Expected override to keep safety priority and progression rate")
	}
	if got.Reasoning == sel.Reasoning {
		t.Error("Expected reasoning to mention the override")
	}

	same := sel.WithOverride(PersonaFitCoach)
	if same != sel {
		t.Errorf("Override to the selected persona changed the selection: %+v", same)
	}
}

func TestParsePersona(t *testing.T) {
	tests := []struct {
		in   string
		want Persona
	}{
		{"BeginnerGuide", PersonaBeginnerGuide},
		{"sportspecific", PersonaSportSpecific},
		{" FITCOACH ", PersonaFitCoach},
		{"TrainingPage", PersonaTrainingPage},
		{"minimalist", PersonaTrainingPage},
	}
	for _, tt := range tests {
		got, err := ParsePersona(tt.in)
		if err != nil {
			t.Errorf("ParsePersona(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePersona(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParsePersona("drill-sergeant"); !errors.Is(err, ErrUnknownPersona) {
		t.Errorf("Expected ErrUnknownPersona, got %v", err)
	}
}
