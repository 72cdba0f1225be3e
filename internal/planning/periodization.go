package planning

import (
	"fmt"
	"time"
)

const (
	minMacrocycleMonths = 3
	maxMacrocycleMonths = 12
	minBlockWeeks       = 2
)

// macrocycleMonths is used when no goal date is given.
var macrocycleMonths = [numExperienceLevels]int{
	CompleteBeginner:       6,
	BeginnerInconsistent:   6,
	AmateurRegular:         8,
	IntermediateStructured: 10,
	AdvancedCompetitive:    12,
}

var macrocycleNotes = [numExperienceLevels][]string{
	CompleteBeginner: {
		"Build the habit first: sessions stay short and technique-led",
		"No maximal efforts during the first macrocycle",
	},
	BeginnerInconsistent: {
		"Consistency is the main target; missed weeks restart the current step, not the plan",
		"Intensity rises only after three consecutive complete weeks",
	},
	AmateurRegular: {
		"Structured progression replaces ad-hoc sessions",
		"One quality session per week in base, two in build",
	},
	IntermediateStructured: {
		"Phase-specific overload with planned deloads",
		"Sport-specific conditioning enters from the build phase",
	},
	AdvancedCompetitive: {
		"Full periodization with a peak aligned to the goal date",
		"Athlete-managed load adjustments within each microcycle",
	},
}

var personaNotes = [numPersonas]string{
	PersonaBeginnerGuide: "Coach explains every new exercise before it is loaded",
	PersonaSportSpecific: "Coach ties each block to sport performance markers",
	PersonaFitCoach:      "Coach balances fitness goals with lifestyle constraints",
	PersonaTrainingPage:  "Minimal coaching: the plan is presented without commentary",
}

// mesocycleWeeks is keyed by phase then experience level.
var mesocycleWeeks = [numPhases][numExperienceLevels]int{
	PhaseBase:       {6, 6, 5, 4, 4},
	PhaseBuild:      {4, 4, 4, 5, 5},
	PhasePeak:       {3, 3, 3, 3, 3},
	PhaseRecovery:   {2, 2, 1, 1, 1},
	PhaseTransition: {2, 2, 2, 2, 2},
}

var focusAreas = [numPhases][numEnergySystems][]string{
	PhaseBase: {
		Aerobic:          {"aerobic base", "movement quality", "tendon resilience"},
		AnaerobicAlactic: {"general strength", "movement quality", "aerobic support"},
		AnaerobicLactic:  {"aerobic base", "work capacity", "general strength"},
		Mixed:            {"general conditioning", "movement quality"},
	},
	PhaseBuild: {
		Aerobic:          {"threshold development", "muscular endurance"},
		AnaerobicAlactic: {"maximal strength", "power development"},
		AnaerobicLactic:  {"lactate tolerance", "repeat effort capacity"},
		Mixed:            {"work capacity", "strength endurance"},
	},
	PhasePeak: {
		Aerobic:          {"race-pace specificity", "VO2max"},
		AnaerobicAlactic: {"peak power", "speed"},
		AnaerobicLactic:  {"glycolytic power", "sport-specific intervals"},
		Mixed:            {"performance expression", "sport-specific intervals"},
	},
	PhaseRecovery: {
		Aerobic:          {"active recovery", "mobility", "restoration"},
		AnaerobicAlactic: {"active recovery", "mobility", "restoration"},
		AnaerobicLactic:  {"active recovery", "mobility", "restoration"},
		Mixed:            {"active recovery", "mobility", "restoration"},
	},
	PhaseTransition: {
		Aerobic:          {"unstructured activity", "mobility", "mental recovery"},
		AnaerobicAlactic: {"unstructured activity", "mobility", "mental recovery"},
		AnaerobicLactic:  {"unstructured activity", "mobility", "mental recovery"},
		Mixed:            {"unstructured activity", "mobility", "mental recovery"},
	},
}

var beginnerOverload = [numPhases][]string{
	PhaseBase:       {"frequency", "duration"},
	PhaseBuild:      {"duration", "volume"},
	PhasePeak:       {"volume"},
	PhaseRecovery:   {},
	PhaseTransition: {},
}

var trainedOverload = [numPhases][]string{
	PhaseBase:       {"volume", "frequency"},
	PhaseBuild:      {"intensity", "volume"},
	PhasePeak:       {"intensity", "specificity"},
	PhaseRecovery:   {},
	PhaseTransition: {},
}

var beginnerIntensity = [numPhases]IntensityDistribution{
	PhaseBase:       {Recovery: 20, AerobicBase: 70, Tempo: 10},
	PhaseBuild:      {Recovery: 15, AerobicBase: 60, Tempo: 20, VO2: 5},
	PhasePeak:       {Recovery: 15, AerobicBase: 55, Tempo: 20, VO2: 10},
	PhaseRecovery:   {Recovery: 40, AerobicBase: 60},
	PhaseTransition: {Recovery: 50, AerobicBase: 50},
}

var trainedIntensity = [numPhases][numEnergySystems]IntensityDistribution{
	PhaseBase: {
		Aerobic:          {Recovery: 10, AerobicBase: 75, Tempo: 10, VO2: 5},
		AnaerobicAlactic: {Recovery: 15, AerobicBase: 50, Tempo: 10, VO2: 5, Neuromuscular: 20},
		AnaerobicLactic:  {Recovery: 15, AerobicBase: 55, Tempo: 15, VO2: 10, Neuromuscular: 5},
		Mixed:            {Recovery: 10, AerobicBase: 65, Tempo: 15, VO2: 5, Neuromuscular: 5},
	},
	PhaseBuild: {
		Aerobic:          {Recovery: 10, AerobicBase: 60, Tempo: 15, VO2: 10, Neuromuscular: 5},
		AnaerobicAlactic: {Recovery: 15, AerobicBase: 35, Tempo: 10, VO2: 10, Neuromuscular: 30},
		AnaerobicLactic:  {Recovery: 10, AerobicBase: 40, Tempo: 20, VO2: 20, Neuromuscular: 10},
		Mixed:            {Recovery: 10, AerobicBase: 50, Tempo: 20, VO2: 10, Neuromuscular: 10},
	},
	PhasePeak: {
		Aerobic:          {Recovery: 10, AerobicBase: 50, Tempo: 15, VO2: 20, Neuromuscular: 5},
		AnaerobicAlactic: {Recovery: 20, AerobicBase: 30, Tempo: 5, VO2: 10, Neuromuscular: 35},
		AnaerobicLactic:  {Recovery: 15, AerobicBase: 30, Tempo: 15, VO2: 30, Neuromuscular: 10},
		Mixed:            {Recovery: 15, AerobicBase: 40, Tempo: 15, VO2: 15, Neuromuscular: 15},
	},
	PhaseRecovery: {
		Aerobic:          {Recovery: 40, AerobicBase: 55, Tempo: 5},
		AnaerobicAlactic: {Recovery: 40, AerobicBase: 55, Tempo: 5},
		AnaerobicLactic:  {Recovery: 40, AerobicBase: 55, Tempo: 5},
		Mixed:            {Recovery: 40, AerobicBase: 55, Tempo: 5},
	},
	PhaseTransition: {
		Aerobic:          {Recovery: 50, AerobicBase: 45, Tempo: 5},
		AnaerobicAlactic: {Recovery: 50, AerobicBase: 45, Tempo: 5},
		AnaerobicLactic:  {Recovery: 50, AerobicBase: 45, Tempo: 5},
		Mixed:            {Recovery: 50, AerobicBase: 45, Tempo: 5},
	},
}

var recoveryProtocols = [numExperienceLevels][]string{
	CompleteBeginner:       {"rest day after every training day", "8+ hours sleep", "easy walking on rest days"},
	BeginnerInconsistent:   {"at least one rest day between hard sessions", "8+ hours sleep", "light mobility routine"},
	AmateurRegular:         {"mobility after each session", "easy aerobic flush the day after intervals", "sleep tracking"},
	IntermediateStructured: {"planned deload weeks", "soft-tissue work", "post-session nutrition timing"},
	AdvancedCompetitive:    {"HRV-guided session adjustment", "contrast therapy", "planned deload weeks", "periodized nutrition"},
}

// PlanRequest holds the planner's inputs. GoalDate and Persona are optional.
type PlanRequest struct {
	Level      ExperienceLevel
	Goal       string
	GoalDate   *time.Time
	SportFocus string
	Persona    *Persona
}

// Plan builds the macrocycle, the current mesocycle and microcycle, the
// progression strategy and the phase schedule. now only affects
// MacrocyclePlan.DurationMonths (when a goal date is set) and
// NextPhaseTransition.
func Plan(req PlanRequest, now time.Time) PeriodizationPlan {
	macro := planMacrocycle(req, now)
	current := macro.Phases[0]
	meso := PlanMesocycle(req.Level, current, macro.PrimarySystem)

	return PeriodizationPlan{
		Macrocycle:          macro,
		CurrentMesocycle:    meso,
		CurrentMicrocycle:   PlanMicrocycle(req.Level, current),
		NextPhaseTransition: now.AddDate(0, 0, meso.DurationWeeks*7),
		Progression:         StrategyFor(req.Level),
		Schedule:            PhaseSchedule(req.Level, macro.Phases, macro.DurationMonths),
	}
}

func planMacrocycle(req PlanRequest, now time.Time) MacrocyclePlan {
	demands := ClassifyDemands(req.Goal, req.SportFocus)

	months := macrocycleMonths[req.Level]
	var goalDate *time.Time
	if req.GoalDate != nil {
		months = clampMonths(monthsBetween(now, *req.GoalDate))
		d := *req.GoalDate
		goalDate = &d
	}

	notes := append([]string(nil), macrocycleNotes[req.Level]...)
	if req.Persona != nil && req.Persona.Valid() {
		notes = append(notes, personaNotes[*req.Persona])
	}
	if req.GoalDate != nil {
		notes = append(notes, fmt.Sprintf("Macrocycle fitted to goal date %s", req.GoalDate.Format("2006-01-02")))
	}

	return MacrocyclePlan{
		DurationMonths:  months,
		Phases:          PhaseSequence(req.Level, demands.Category),
		PrimarySystem:   DominantSystem(demands),
		GoalDate:        goalDate,
		SportFocus:      req.SportFocus,
		AdaptationNotes: notes,
	}
}

// PhaseSequence returns the ordered phases of a macrocycle. Every
// sequence starts with base, and peak always follows build.
func PhaseSequence(level ExperienceLevel, category SportCategory) []Phase {
	if level.IsBeginner() {
		return []Phase{PhaseBase, PhaseBuild, PhaseRecovery}
	}
	switch category {
	case CategoryStrengthPower:
		return []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseTransition}
	case CategoryEndurance:
		return []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseRecovery}
	}
	return []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseRecovery}
}

// monthsBetween counts whole calendar months from now until goal.
func monthsBetween(now, goal time.Time) int {
	months := (goal.Year()-now.Year())*12 + int(goal.Month()) - int(now.Month())
	if goal.Day() < now.Day() {
		months--
	}
	return months
}

func clampMonths(m int) int {
	if m < minMacrocycleMonths {
		return minMacrocycleMonths
	}
	if m > maxMacrocycleMonths {
		return maxMacrocycleMonths
	}
	return m
}

// PlanMesocycle resolves one mesocycle from the fixed tables. Beginners
// use the simplified intensity table regardless of energy system.
func PlanMesocycle(level ExperienceLevel, phase Phase, system EnergySystem) MesocyclePlan {
	overload := trainedOverload[phase]
	intensity := trainedIntensity[phase][system]
	if level.IsBeginner() {
		overload = beginnerOverload[phase]
		intensity = beginnerIntensity[phase]
	}

	return MesocyclePlan{
		Phase:             phase,
		DurationWeeks:     mesocycleWeeks[phase][level],
		FocusAreas:        append([]string(nil), focusAreas[phase][system]...),
		OverloadVariables: append([]string{}, overload...),
		Intensity:         intensity,
		RecoveryProtocols: append([]string(nil), recoveryProtocols[level]...),
	}
}

// PhaseSchedule lays the phases out over the macrocycle. Each phase
// starts at its mesocycle length; weeks left over (or missing) are
// added to (or taken from) base and build in turn. Peak, recovery and
// transition keep their table length.
func PhaseSchedule(level ExperienceLevel, phases []Phase, months int) []PhaseBlock {
	weeks := make([]int, len(phases))
	var flexible []int
	sum := 0
	for i, p := range phases {
		weeks[i] = mesocycleWeeks[p][level]
		sum += weeks[i]
		if p == PhaseBase || p == PhaseBuild {
			flexible = append(flexible, i)
		}
	}

	total := months * 52 / 12
	for i := 0; sum < total && len(flexible) > 0; i++ {
		weeks[flexible[i%len(flexible)]]++
		sum++
	}
	for sum > total {
		shrunk := false
		for _, idx := range flexible {
			if sum > total && weeks[idx] > minBlockWeeks {
				weeks[idx]--
				sum--
				shrunk = true
			}
		}
		if !shrunk {
			break
		}
	}

	blocks := make([]PhaseBlock, len(phases))
	start := 1
	for i, p := range phases {
		blocks[i] = PhaseBlock{
			Phase:          p,
			StartWeek:      start,
			Weeks:          weeks[i],
			MesocycleWeeks: mesocycleWeeks[p][level],
		}
		start += weeks[i]
	}
	return blocks
}
