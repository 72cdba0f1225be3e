package planning

import (
	"fmt"
	"strings"
	"time"
)

// ProfileInputs are the user-profile fields every derived plan depends on.
// Changing any of them requires a new Recompute.
type ProfileInputs struct {
	ExperienceLevel    string     `json:"experience_level,omitempty"`
	FitnessLevel       string     `json:"fitness_level,omitempty"`
	StrengthExperience string     `json:"strength_experience,omitempty"`
	Activity           string     `json:"activity,omitempty"`
	Goal               string     `json:"goal"`
	SportFocus         string     `json:"sport_focus,omitempty"`
	GoalDate           *time.Time `json:"goal_date,omitempty"`
	Persona            string     `json:"persona,omitempty"`
	CurrentActivities  []string   `json:"current_activities,omitempty"`
}

// Validate rejects inputs outside the closed enumerations. Free-text
// fields and unknown fitness tags are never errors.
func (in ProfileInputs) Validate() error {
	if strings.TrimSpace(in.ExperienceLevel) != "" {
		if _, err := ParseExperienceLevel(in.ExperienceLevel); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.Persona) != "" {
		if _, err := ParsePersona(in.Persona); err != nil {
			return err
		}
	}
	return nil
}

// PlanBundle is everything derived from one set of ProfileInputs. It is
// produced whole and never patched.
type PlanBundle struct {
	Inputs     ProfileInputs       `json:"inputs"`
	Level      ExperienceLevel     `json:"experience_level"`
	Persona    PersonaSelection    `json:"persona"`
	Profile    EnergySystemProfile `json:"energy_profile"`
	Plan       PeriodizationPlan   `json:"plan"`
	ComputedAt time.Time           `json:"computed_at"`
}

// Recompute derives persona, energy profile and periodization plan
// together from the same inputs. It fails only when Validate does.
func Recompute(in ProfileInputs, now time.Time) (PlanBundle, error) {
	if err := in.Validate(); err != nil {
		return PlanBundle{}, fmt.Errorf("invalid profile inputs: %w", err)
	}

	level, err := ResolveExperience(in.ExperienceLevel, in.FitnessLevel, in.StrengthExperience)
	if err != nil {
		return PlanBundle{}, err
	}

	persona := SelectPersona(level, in.Activity)
	if strings.TrimSpace(in.Persona) != "" {
		override, _ := ParsePersona(in.Persona)
		persona = persona.WithOverride(override)
	}

	// The resolved level is itself a fitness tag, so the assessment row
	// always agrees with the level the plan was built for.
	profile := BuildProfile(ProfileRequest{
		Goal:              in.Goal,
		Sport:             in.SportFocus,
		FitnessLevel:      level.String(),
		CurrentActivities: in.CurrentActivities,
	})

	p := persona.Persona
	plan := Plan(PlanRequest{
		Level:      level,
		Goal:       in.Goal,
		GoalDate:   in.GoalDate,
		SportFocus: in.SportFocus,
		Persona:    &p,
	}, now)

	in.CurrentActivities = append([]string(nil), in.CurrentActivities...)
	if in.GoalDate != nil {
		d := *in.GoalDate
		in.GoalDate = &d
	}
	return PlanBundle{
		Inputs:     in,
		Level:      level,
		Persona:    persona,
		Profile:    profile,
		Plan:       plan,
		ComputedAt: now,
	}, nil
}
