package planning

// Progression-rate categories of a ProgressionStrategy.
const (
	StrategyConservative = "conservative"
	StrategyModerate     = "moderate"
	StrategyAggressive   = "aggressive"
)

// progressionStrategies is keyed by level only; deload frequency never
// decreases as experience increases.
var progressionStrategies = [numExperienceLevels]ProgressionStrategy{
	CompleteBeginner: {
		PrimaryVariables:  []string{"frequency", "duration"},
		Rate:              StrategyConservative,
		PlateauPrevention: []string{"master movement patterns before adding load", "rotate exercise variations every 4 weeks"},
		DeloadFrequency:   3,
	},
	BeginnerInconsistent: {
		PrimaryVariables:  []string{"consistency", "duration", "volume"},
		Rate:              StrategyConservative,
		PlateauPrevention: []string{"fixed weekly schedule", "small weekly targets", "rotate exercise variations every 4 weeks"},
		DeloadFrequency:   4,
	},
	AmateurRegular: {
		PrimaryVariables:  []string{"volume", "intensity"},
		Rate:              StrategyModerate,
		PlateauPrevention: []string{"undulating session intensity", "introduce new stimuli each mesocycle"},
		DeloadFrequency:   4,
	},
	IntermediateStructured: {
		PrimaryVariables:  []string{"intensity", "volume", "density"},
		Rate:              StrategyModerate,
		PlateauPrevention: []string{"block periodization", "vary rep ranges and work intervals", "planned overreach weeks"},
		DeloadFrequency:   5,
	},
	AdvancedCompetitive: {
		PrimaryVariables:  []string{"intensity", "specificity", "density"},
		Rate:              StrategyAggressive,
		PlateauPrevention: []string{"conjugate variation", "competition-specific overload", "readiness-based autoregulation"},
		DeloadFrequency:   6,
	},
}

// StrategyFor returns the progression strategy for a level. The returned
// slices are copies.
func StrategyFor(level ExperienceLevel) ProgressionStrategy {
	s := progressionStrategies[level]
	s.PrimaryVariables = append([]string(nil), s.PrimaryVariables...)
	s.PlateauPrevention = append([]string(nil), s.PlateauPrevention...)
	return s
}
