package planning

import (
	"fmt"
	"strings"
)

// Safety priorities reported by SelectPersona.
const (
	SafetyMaximum        = "maximum"
	SafetyHigh           = "high"
	SafetyAthleteManaged = "athlete-managed"
	SafetyStandard       = "standard"
	SafetyModerate       = "moderate"
)

// Progression rates reported by SelectPersona.
const (
	RateVeryConservative = "very-conservative"
	RateConservative     = "conservative"
	RateModerate         = "moderate"
	RateAggressive       = "aggressive"
	RatePeriodized       = "periodized"
)

// sportSpecificActivities are the activity tags that route trained users
// to the sport-specific coach.
var sportSpecificActivities = map[string]bool{
	"strength-power":      true,
	"endurance":           true,
	"combat-sports":       true,
	"team-sports":         true,
	"racquet-sports":      true,
	"competitive-athlete": true,
}

// PersonaSelection is the persona selector's output.
type PersonaSelection struct {
	Persona         Persona `json:"persona"`
	SafetyPriority  string  `json:"safety_priority"`
	ProgressionRate string  `json:"progression_rate"`
	Reasoning       string  `json:"reasoning"`
}

// IsSportSpecificActivity reports whether activity is in the fixed
// sport-specific set.
func IsSportSpecificActivity(activity string) bool {
	return sportSpecificActivities[normalize(activity)]
}

// SelectPersona applies the persona rules in priority order. The final
// rule always matches.
func SelectPersona(level ExperienceLevel, activity string) PersonaSelection {
	switch {
	case level.IsBeginner():
		sel := PersonaSelection{
			Persona:         PersonaBeginnerGuide,
			SafetyPriority:  SafetyHigh,
			ProgressionRate: RateConservative,
		}
		if level == CompleteBeginner {
			sel.SafetyPriority = SafetyMaximum
			sel.ProgressionRate = RateVeryConservative
		}
		sel.Reasoning = fmt.Sprintf(
			"%s needs guided fundamentals: safety %s, %s progression",
			level, sel.SafetyPriority, sel.ProgressionRate)
		return sel

	case (level == IntermediateStructured || level == AdvancedCompetitive) && IsSportSpecificActivity(activity):
		sel := PersonaSelection{
			Persona:         PersonaSportSpecific,
			SafetyPriority:  SafetyStandard,
			ProgressionRate: RateAggressive,
		}
		if level == AdvancedCompetitive {
			sel.SafetyPriority = SafetyAthleteManaged
			sel.ProgressionRate = RatePeriodized
		}
		sel.Reasoning = fmt.Sprintf(
			"%s training for %q gets sport-specific coaching: safety %s, %s progression",
			level, normalize(activity), sel.SafetyPriority, sel.ProgressionRate)
		return sel
	}

	reason := fmt.Sprintf("%s with general goals gets the all-round coach", level)
	if a := strings.TrimSpace(activity); a != "" && !level.IsBeginner() {
		reason = fmt.Sprintf("%s with activity %q gets the all-round coach", level, normalize(a))
	}
	return PersonaSelection{
		Persona:         PersonaFitCoach,
		SafetyPriority:  SafetyModerate,
		ProgressionRate: RateModerate,
		Reasoning:       reason,
	}
}

// WithOverride switches the persona to an explicitly requested one while
// keeping the rule-derived safety priority and progression rate.
func (s PersonaSelection) WithOverride(p Persona) PersonaSelection {
	if p == s.Persona {
		return s
	}
	s.Reasoning = fmt.Sprintf("%s; user selected %s over %s", s.Reasoning, p, s.Persona)
	s.Persona = p
	return s
}
