// Package planning derives coaching persona, energy-system profile and
// periodization plans from a user profile using fixed lookup tables.
package planning

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Boundary errors. The core itself never returns these; they are raised
// while parsing caller input, before any lookup runs.
var (
	ErrUnknownExperienceLevel = errors.New("unknown experience level")
	ErrUnknownEnergySystem    = errors.New("unknown energy system")
	ErrUnknownPhase           = errors.New("unknown periodization phase")
	ErrUnknownPersona         = errors.New("unknown coach persona")
)

// ExperienceLevel is ordered from least to most experienced.
type ExperienceLevel int

const (
	CompleteBeginner ExperienceLevel = iota
	BeginnerInconsistent
	AmateurRegular
	IntermediateStructured
	AdvancedCompetitive

	numExperienceLevels = iota
)

var experienceLevelNames = [numExperienceLevels]string{
	CompleteBeginner:       "complete-beginner",
	BeginnerInconsistent:   "beginner-inconsistent",
	AmateurRegular:         "amateur-regular",
	IntermediateStructured: "intermediate-structured",
	AdvancedCompetitive:    "advanced-competitive",
}

// ExperienceLevels returns all levels in ascending order.
func ExperienceLevels() []ExperienceLevel {
	out := make([]ExperienceLevel, numExperienceLevels)
	for i := range out {
		out[i] = ExperienceLevel(i)
	}
	return out
}

func (l ExperienceLevel) String() string {
	if !l.Valid() {
		return fmt.Sprintf("ExperienceLevel(%d)", int(l))
	}
	return experienceLevelNames[l]
}

// Valid reports whether l is inside the closed enumeration.
func (l ExperienceLevel) Valid() bool {
	return l >= 0 && int(l) < numExperienceLevels
}

// IsBeginner is true for the two levels that get the simplified tables.
func (l ExperienceLevel) IsBeginner() bool {
	return l == CompleteBeginner || l == BeginnerInconsistent
}

// ParseExperienceLevel parses the canonical hyphenated name.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	key := normalize(s)
	for i, name := range experienceLevelNames {
		if name == key {
			return ExperienceLevel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownExperienceLevel, s)
}

func (l ExperienceLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownExperienceLevel, int(l))
	}
	return []byte(l.String()), nil
}

func (l *ExperienceLevel) UnmarshalText(b []byte) error {
	v, err := ParseExperienceLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// EnergySystem is one of the physiological pathways a session targets.
type EnergySystem int

const (
	Aerobic EnergySystem = iota
	AnaerobicAlactic
	AnaerobicLactic
	Mixed

	numEnergySystems = iota
)

var energySystemNames = [numEnergySystems]string{
	Aerobic:          "aerobic",
	AnaerobicAlactic: "anaerobic-alactic",
	AnaerobicLactic:  "anaerobic-lactic",
	Mixed:            "mixed",
}

// trackedSystems are the three systems demands and deficits are measured on.
// Order doubles as the tie-break order.
var trackedSystems = [3]EnergySystem{Aerobic, AnaerobicAlactic, AnaerobicLactic}

// EnergySystems returns every energy system including mixed.
func EnergySystems() []EnergySystem {
	return []EnergySystem{Aerobic, AnaerobicAlactic, AnaerobicLactic, Mixed}
}

func (e EnergySystem) String() string {
	if !e.Valid() {
		return fmt.Sprintf("EnergySystem(%d)", int(e))
	}
	return energySystemNames[e]
}

func (e EnergySystem) Valid() bool {
	return e >= 0 && int(e) < numEnergySystems
}

// ParseEnergySystem accepts the canonical names plus the short forms
// "alactic" and "lactic".
func ParseEnergySystem(s string) (EnergySystem, error) {
	key := normalize(s)
	switch key {
	case "alactic", "phosphocreatine":
		return AnaerobicAlactic, nil
	case "lactic", "glycolytic":
		return AnaerobicLactic, nil
	}
	for i, name := range energySystemNames {
		if name == key {
			return EnergySystem(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEnergySystem, s)
}

func (e EnergySystem) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEnergySystem, int(e))
	}
	return []byte(e.String()), nil
}

func (e *EnergySystem) UnmarshalText(b []byte) error {
	v, err := ParseEnergySystem(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Phase is a periodization phase. Order within a macrocycle is
// base -> build -> peak -> recovery/transition.
type Phase int

const (
	PhaseBase Phase = iota
	PhaseBuild
	PhasePeak
	PhaseRecovery
	PhaseTransition

	numPhases = iota
)

var phaseNames = [numPhases]string{
	PhaseBase:       "base",
	PhaseBuild:      "build",
	PhasePeak:       "peak",
	PhaseRecovery:   "recovery",
	PhaseTransition: "transition",
}

// Phases returns every phase in canonical order.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) Valid() bool {
	return p >= 0 && int(p) < numPhases
}

func ParsePhase(s string) (Phase, error) {
	key := normalize(s)
	for i, name := range phaseNames {
		if name == key {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}

func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Persona identifies the virtual coach driving interaction.
type Persona int

const (
	PersonaBeginnerGuide Persona = iota
	PersonaSportSpecific
	PersonaFitCoach
	PersonaTrainingPage // minimalist

	numPersonas = iota
)

var personaNames = [numPersonas]string{
	PersonaBeginnerGuide: "BeginnerGuide",
	PersonaSportSpecific: "SportSpecific",
	PersonaFitCoach:      "FitCoach",
	PersonaTrainingPage:  "TrainingPage",
}

func (p Persona) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Persona(%d)", int(p))
	}
	return personaNames[p]
}

func (p Persona) Valid() bool {
	return p >= 0 && int(p) < numPersonas
}

// ParsePersona matches persona names case-insensitively. "minimalist" is
// accepted for TrainingPage.
func ParsePersona(s string) (Persona, error) {
	key := normalize(s)
	if key == "minimalist" {
		return PersonaTrainingPage, nil
	}
	for i, name := range personaNames {
		if strings.ToLower(name) == key {
			return Persona(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPersona, s)
}

func (p Persona) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPersona, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Persona) UnmarshalText(b []byte) error {
	v, err := ParsePersona(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// DayType is one slot of a weekly microcycle pattern.
type DayType string

const (
	DayTraining       DayType = "training"
	DayRest           DayType = "rest"
	DayActiveRecovery DayType = "active_recovery"
	DayCrossTraining  DayType = "cross_training"
)

// SportCategory is the classifier's bucket for a goal/sport description.
type SportCategory string

const (
	CategoryEndurance     SportCategory = "endurance"
	CategoryStrengthPower SportCategory = "strength-power"
	CategoryCombat        SportCategory = "combat"
	CategoryTeam          SportCategory = "team"
	CategorySkill         SportCategory = "skill"
	CategoryMixed         SportCategory = "mixed"
)

// SportEnergyDemands is the percentage split across the three tracked
// energy systems. Aerobic+Alactic+Lactic is always 100.
type SportEnergyDemands struct {
	Aerobic   int           `json:"aerobic"`
	Alactic   int           `json:"alactic"`
	Lactic    int           `json:"lactic"`
	Category  SportCategory `json:"category"`
	Duration  string        `json:"duration"`
	Intensity string        `json:"intensity"`
}

// Percent returns the demand for one of the tracked systems. Mixed has
// no demand of its own.
func (d SportEnergyDemands) Percent(e EnergySystem) int {
	switch e {
	case Aerobic:
		return d.Aerobic
	case AnaerobicAlactic:
		return d.Alactic
	case AnaerobicLactic:
		return d.Lactic
	}
	return 0
}

// Total is the sum of the three percentages.
func (d SportEnergyDemands) Total() int {
	return d.Aerobic + d.Alactic + d.Lactic
}

// IntensityDistribution splits training time across five intensity zones.
// Every row in the fixed tables sums to 100.
type IntensityDistribution struct {
	Recovery      int `json:"recovery"`
	AerobicBase   int `json:"aerobic_base"`
	Tempo         int `json:"tempo"`
	VO2           int `json:"vo2"`
	Neuromuscular int `json:"neuromuscular_power"`
}

func (d IntensityDistribution) Total() int {
	return d.Recovery + d.AerobicBase + d.Tempo + d.VO2 + d.Neuromuscular
}

// TrainingDistribution is the profiler's share of training time per
// system plus a flat recovery allowance.
type TrainingDistribution struct {
	Aerobic  float64 `json:"aerobic"`
	Alactic  float64 `json:"alactic"`
	Lactic   float64 `json:"lactic"`
	Recovery float64 `json:"recovery"`
}

// Total is reported as-is; it is not normalised to 100.
func (t TrainingDistribution) Total() float64 {
	return t.Aerobic + t.Alactic + t.Lactic + t.Recovery
}

// SelfAssessment is the qualitative capacity row for a fitness level.
type SelfAssessment struct {
	AerobicCapacity   string   `json:"aerobic_capacity"`
	AnaerobicCapacity string   `json:"anaerobic_capacity"`
	RecoveryAbility   string   `json:"recovery_ability"`
	LimitingFactors   []string `json:"limiting_factors"`
}

// EnergySystemProfile combines classifier output with a self-assessment.
type EnergySystemProfile struct {
	Dominant     EnergySystem         `json:"dominant_system"`
	Secondary    *EnergySystem        `json:"secondary_system,omitempty"`
	Demands      SportEnergyDemands   `json:"sport_demands"`
	Distribution TrainingDistribution `json:"training_distribution"`
	Assessment   SelfAssessment       `json:"assessment"`
	// HasActivityBaseline records whether any current activities were
	// reported. Nothing else about them is used.
	HasActivityBaseline bool `json:"has_activity_baseline"`
}

// MacrocyclePlan is the multi-month top-level plan.
type MacrocyclePlan struct {
	DurationMonths  int          `json:"duration_months"`
	Phases          []Phase      `json:"phases"`
	PrimarySystem   EnergySystem `json:"primary_energy_system"`
	GoalDate        *time.Time   `json:"goal_date,omitempty"`
	SportFocus      string       `json:"sport_focus,omitempty"`
	AdaptationNotes []string     `json:"adaptation_notes"`
}

// MesocyclePlan is a multi-week block focused on a single phase.
type MesocyclePlan struct {
	Phase             Phase                 `json:"phase"`
	DurationWeeks     int                   `json:"duration_weeks"`
	FocusAreas        []string              `json:"focus_areas"`
	OverloadVariables []string              `json:"overload_variables"`
	Intensity         IntensityDistribution `json:"intensity_distribution"`
	RecoveryProtocols []string              `json:"recovery_protocols"`
}

// VolumeProgression controls week-to-week volume changes.
type VolumeProgression struct {
	WeeklyIncreasePct       int `json:"weekly_increase_pct"`
	DeloadEveryWeeks        int `json:"deload_every_weeks"`
	MaxConsecutiveHighWeeks int `json:"max_consecutive_high_weeks"`
}

// MicrocyclePlan is the repeating one-week pattern.
type MicrocyclePlan struct {
	Pattern      [7]DayType        `json:"pattern"`
	TrainingDays int               `json:"training_days"`
	RestDays     int               `json:"rest_days"`
	Volume       VolumeProgression `json:"volume_progression"`
}

// ProgressionStrategy is looked up per experience level.
type ProgressionStrategy struct {
	PrimaryVariables  []string `json:"primary_variables"`
	Rate              string   `json:"rate"`
	PlateauPrevention []string `json:"plateau_prevention"`
	DeloadFrequency   int      `json:"deload_frequency_weeks"`
}

// PhaseBlock is one phase of the season schedule. A block may span
// several mesocycles of MesocycleWeeks each.
type PhaseBlock struct {
	Phase          Phase `json:"phase"`
	StartWeek      int   `json:"start_week"`
	Weeks          int   `json:"weeks"`
	MesocycleWeeks int   `json:"mesocycle_weeks"`
}

// PeriodizationPlan is the planner's full output.
type PeriodizationPlan struct {
	Macrocycle          MacrocyclePlan      `json:"macrocycle"`
	CurrentMesocycle    MesocyclePlan       `json:"current_mesocycle"`
	CurrentMicrocycle   MicrocyclePlan      `json:"current_microcycle"`
	NextPhaseTransition time.Time           `json:"next_phase_transition"`
	Progression         ProgressionStrategy `json:"progression_strategy"`
	Schedule            []PhaseBlock        `json:"phase_schedule"`
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", "-")
}
