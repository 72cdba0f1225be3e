package planning

var trainingDaysPerWeek = [numExperienceLevels]int{
	CompleteBeginner:       3,
	BeginnerInconsistent:   3,
	AmateurRegular:         4,
	IntermediateStructured: 5,
	AdvancedCompetitive:    6,
}

const (
	tr = DayTraining
	rs = DayRest
	ar = DayActiveRecovery
	ct = DayCrossTraining
)

// weekTemplates hold one training slot per trainingDaysPerWeek entry.
var weekTemplates = [numExperienceLevels][7]DayType{
	CompleteBeginner:       {tr, rs, tr, rs, tr, ar, rs},
	BeginnerInconsistent:   {tr, rs, tr, ar, tr, rs, rs},
	AmateurRegular:         {tr, tr, rs, tr, ar, tr, rs},
	IntermediateStructured: {tr, tr, ar, tr, tr, tr, rs},
	AdvancedCompetitive:    {tr, tr, tr, ar, tr, tr, tr},
}

// peakTemplates apply to non-beginners in the peak phase. Beginner rows
// repeat the standard template since beginner macrocycles have no peak.
var peakTemplates = [numExperienceLevels][7]DayType{
	CompleteBeginner:       weekTemplates[CompleteBeginner],
	BeginnerInconsistent:   weekTemplates[BeginnerInconsistent],
	AmateurRegular:         {tr, rs, tr, ct, tr, tr, rs},
	IntermediateStructured: {tr, tr, rs, tr, ct, tr, tr},
	AdvancedCompetitive:    {tr, tr, ar, tr, tr, tr, tr},
}

// beginnerVolume is the single conservative row every beginner gets.
var beginnerVolume = VolumeProgression{WeeklyIncreasePct: 5, DeloadEveryWeeks: 3, MaxConsecutiveHighWeeks: 2}

var volumeProgressions = [numExperienceLevels][numPhases]VolumeProgression{
	CompleteBeginner:     {beginnerVolume, beginnerVolume, beginnerVolume, beginnerVolume, beginnerVolume},
	BeginnerInconsistent: {beginnerVolume, beginnerVolume, beginnerVolume, beginnerVolume, beginnerVolume},
	AmateurRegular: {
		PhaseBase:       {WeeklyIncreasePct: 8, DeloadEveryWeeks: 4, MaxConsecutiveHighWeeks: 2},
		PhaseBuild:      {WeeklyIncreasePct: 6, DeloadEveryWeeks: 4, MaxConsecutiveHighWeeks: 2},
		PhasePeak:       {WeeklyIncreasePct: 4, DeloadEveryWeeks: 3, MaxConsecutiveHighWeeks: 1},
		PhaseRecovery:   {WeeklyIncreasePct: 0, DeloadEveryWeeks: 1, MaxConsecutiveHighWeeks: 0},
		PhaseTransition: {WeeklyIncreasePct: 0, DeloadEveryWeeks: 1, MaxConsecutiveHighWeeks: 0},
	},
	IntermediateStructured: {
		PhaseBase:       {WeeklyIncreasePct: 10, DeloadEveryWeeks: 4, MaxConsecutiveHighWeeks: 3},
		PhaseBuild:      {WeeklyIncreasePct: 8, DeloadEveryWeeks: 4, MaxConsecutiveHighWeeks: 3},
		PhasePeak:       {WeeklyIncreasePct: 5, DeloadEveryWeeks: 3, MaxConsecutiveHighWeeks: 2},
		PhaseRecovery:   {WeeklyIncreasePct: 0, DeloadEveryWeeks: 1, MaxConsecutiveHighWeeks: 0},
		PhaseTransition: {WeeklyIncreasePct: 0, DeloadEveryWeeks: 1, MaxConsecutiveHighWeeks: 0},
	},
	AdvancedCompetitive: {
		PhaseBase:       {WeeklyIncreasePct: 10, DeloadEveryWeeks: 5, MaxConsecutiveHighWeeks: 4},
		PhaseBuild:      {WeeklyIncreasePct: 8, DeloadEveryWeeks: 5, MaxConsecutiveHighWeeks: 3},
		PhasePeak:       {WeeklyIncreasePct: 5, DeloadEveryWeeks: 3, MaxConsecutiveHighWeeks: 2},
		PhaseRecovery:   {WeeklyIncreasePct: 0, DeloadEveryWeeks: 1, MaxConsecutiveHighWeeks: 0},
		PhaseTransition: {WeeklyIncreasePct: 0, DeloadEveryWeeks: 1, MaxConsecutiveHighWeeks: 0},
	},
}

// WeekTemplate returns the 7-day pattern for a level and phase.
func WeekTemplate(level ExperienceLevel, phase Phase) [7]DayType {
	if phase == PhasePeak && !level.IsBeginner() {
		return peakTemplates[level]
	}
	return weekTemplates[level]
}

// PlanMicrocycle builds the weekly pattern and volume progression.
// RestDays counts every non-training slot.
func PlanMicrocycle(level ExperienceLevel, phase Phase) MicrocyclePlan {
	training := trainingDaysPerWeek[level]
	return MicrocyclePlan{
		Pattern:      WeekTemplate(level, phase),
		TrainingDays: training,
		RestDays:     7 - training,
		Volume:       volumeProgressions[level][phase],
	}
}

// CountDays returns how many slots of the pattern have the given type.
func (m MicrocyclePlan) CountDays(t DayType) int {
	n := 0
	for _, d := range m.Pattern {
		if d == t {
			n++
		}
	}
	return n
}
