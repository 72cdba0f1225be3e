package planning

import "strings"

// Dominance thresholds, evaluated in this order.
const (
	aerobicDominantPct = 60
	alacticDominantPct = 40
	lacticDominantPct  = 30

	// minAerobicTrainingPct keeps an aerobic base in every profile.
	minAerobicTrainingPct = 30
	trainingScale         = 0.8
	recoveryAllowancePct  = 20
)

// fitnessTags maps onboarding fitness-level tags to experience levels.
// "advanced" is split further by the strength sub-tag.
var fitnessTags = map[string]ExperienceLevel{
	"sedentary":               CompleteBeginner,
	"none":                    CompleteBeginner,
	"complete-beginner":       CompleteBeginner,
	"beginner":                BeginnerInconsistent,
	"beginner-inconsistent":   BeginnerInconsistent,
	"intermediate":            AmateurRegular,
	"regular":                 AmateurRegular,
	"amateur-regular":         AmateurRegular,
	"advanced":                IntermediateStructured,
	"structured":              IntermediateStructured,
	"intermediate-structured": IntermediateStructured,
	"elite":                   AdvancedCompetitive,
	"competitive":             AdvancedCompetitive,
	"advanced-competitive":    AdvancedCompetitive,
}

// advancedStrengthTags promote an "advanced" fitness tag to
// advanced-competitive.
var advancedStrengthTags = map[string]bool{
	"advanced-lifter": true,
	"competitive":     true,
	"elite":           true,
}

// ResolveExperience is the single precedence chain for deriving an
// experience level: an explicit level wins, then the fitness tag
// (disambiguated by the strength sub-tag), then amateur-regular. Only an
// explicit level outside the enumeration is an error.
func ResolveExperience(explicit, fitnessTag, strengthTag string) (ExperienceLevel, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseExperienceLevel(explicit)
	}
	return levelFromFitnessTag(fitnessTag, strengthTag), nil
}

func levelFromFitnessTag(fitnessTag, strengthTag string) ExperienceLevel {
	level, ok := fitnessTags[normalize(fitnessTag)]
	if !ok {
		return AmateurRegular
	}
	strength := normalize(strengthTag)
	switch {
	case level == IntermediateStructured && advancedStrengthTags[strength]:
		return AdvancedCompetitive
	case level == AmateurRegular && strength == "advanced-lifter":
		return IntermediateStructured
	}
	return level
}

// selfAssessments is keyed by experience level; the fitness tag is mapped
// onto it before lookup.
var selfAssessments = [numExperienceLevels]SelfAssessment{
	CompleteBeginner: {
		AerobicCapacity:   "low",
		AnaerobicCapacity: "low",
		RecoveryAbility:   "poor",
		LimitingFactors:   []string{"general conditioning", "movement quality", "training consistency"},
	},
	BeginnerInconsistent: {
		AerobicCapacity:   "low-moderate",
		AnaerobicCapacity: "low",
		RecoveryAbility:   "fair",
		LimitingFactors:   []string{"training consistency", "aerobic base"},
	},
	AmateurRegular: {
		AerobicCapacity:   "moderate",
		AnaerobicCapacity: "moderate",
		RecoveryAbility:   "good",
		LimitingFactors:   []string{"training structure", "lactate tolerance"},
	},
	IntermediateStructured: {
		AerobicCapacity:   "good",
		AnaerobicCapacity: "moderate-high",
		RecoveryAbility:   "good",
		LimitingFactors:   []string{"power output", "sport-specific conditioning"},
	},
	AdvancedCompetitive: {
		AerobicCapacity:   "high",
		AnaerobicCapacity: "high",
		RecoveryAbility:   "excellent",
		LimitingFactors:   []string{"marginal gains", "recovery management"},
	},
}

// RecoveryPoor is the assessment value that triggers intensity warnings.
const RecoveryPoor = "poor"

// AssessFitness returns the capacity row for a fitness tag. Unknown or
// empty tags get the amateur-regular row.
func AssessFitness(fitnessTag string) SelfAssessment {
	a := selfAssessments[levelFromFitnessTag(fitnessTag, "")]
	a.LimitingFactors = append([]string(nil), a.LimitingFactors...)
	return a
}

// ProfileRequest holds the profiler's inputs.
type ProfileRequest struct {
	Goal              string
	Sport             string
	FitnessLevel      string
	CurrentActivities []string
}

// BuildProfile classifies the goal, picks dominant and secondary systems,
// derives the training-time distribution and attaches the self-assessment.
func BuildProfile(req ProfileRequest) EnergySystemProfile {
	demands := ClassifyDemands(req.Goal, req.Sport)
	dominant := DominantSystem(demands)
	secondary := SecondarySystem(demands, dominant)

	return EnergySystemProfile{
		Dominant:            dominant,
		Secondary:           &secondary,
		Demands:             demands,
		Distribution:        TrainingSplit(demands),
		Assessment:          AssessFitness(req.FitnessLevel),
		HasActivityBaseline: len(req.CurrentActivities) > 0,
	}
}

// DominantSystem applies the threshold rules in fixed order.
func DominantSystem(d SportEnergyDemands) EnergySystem {
	switch {
	case d.Aerobic >= aerobicDominantPct:
		return Aerobic
	case d.Alactic >= alacticDominantPct:
		return AnaerobicAlactic
	case d.Lactic >= lacticDominantPct:
		return AnaerobicLactic
	}
	return Mixed
}

// SecondarySystem returns the highest-demand tracked system other than
// dominant. When dominant is Mixed every tracked system remains and the
// runner-up is taken. Ties go to the earlier system in
// aerobic, alactic, lactic order. The result is never Mixed.
func SecondarySystem(d SportEnergyDemands, dominant EnergySystem) EnergySystem {
	ranked := rankSystems(d)
	if dominant == Mixed {
		return ranked[1]
	}
	for _, e := range ranked {
		if e != dominant {
			return e
		}
	}
	return ranked[1]
}

// rankSystems orders the tracked systems by demand, stable on ties.
func rankSystems(d SportEnergyDemands) [3]EnergySystem {
	ranked := trackedSystems
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && d.Percent(ranked[j]) > d.Percent(ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}

// TrainingSplit floors aerobic training at 30%, splits the remainder
// between alactic and lactic in proportion to their demands, scales all
// three by 0.8 and reports a flat 20 for recovery. The total is not
// renormalised.
func TrainingSplit(d SportEnergyDemands) TrainingDistribution {
	aerobic := float64(d.Aerobic)
	if aerobic < minAerobicTrainingPct {
		aerobic = minAerobicTrainingPct
	}
	remaining := 100 - aerobic

	var alactic, lactic float64
	if anaerobic := d.Alactic + d.Lactic; anaerobic > 0 {
		alactic = remaining * float64(d.Alactic) / float64(anaerobic)
		lactic = remaining * float64(d.Lactic) / float64(anaerobic)
	} else {
		alactic = remaining / 2
		lactic = remaining / 2
	}

	return TrainingDistribution{
		Aerobic:  aerobic * trainingScale,
		Alactic:  alactic * trainingScale,
		Lactic:   lactic * trainingScale,
		Recovery: recoveryAllowancePct,
	}
}
