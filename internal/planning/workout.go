package planning

// RPERange is an inclusive range on the 1-10 perceived exertion scale.
type RPERange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type exerciseRef struct {
	id        string
	equipment string // "" means bodyweight
}

type sessionTemplate struct {
	work        string
	rest        string
	intensity   string
	rpe         RPERange
	adaptations []string
	exercises   []exerciseRef
	notes       string
}

var sessionTemplates = [numEnergySystems]sessionTemplate{
	Aerobic: {
		work:        "20-60 min continuous",
		rest:        "none (continuous effort)",
		intensity:   "60-75% HRmax, conversational pace",
		rpe:         RPERange{Min: 4, Max: 6},
		adaptations: []string{"mitochondrial density", "capillarization", "stroke volume"},
		exercises: []exerciseRef{
			{id: "steady-state-run"},
			{id: "brisk-incline-walk"},
			{id: "zone2-cycling", equipment: "bike"},
			{id: "long-row", equipment: "rower"},
			{id: "continuous-swim", equipment: "pool"},
		},
		notes: "Extend duration by 5-10% per week before adding any intensity.",
	},
	AnaerobicAlactic: {
		work:        "6-10 s maximal efforts",
		rest:        "60-180 s full recovery (1:12 to 1:20)",
		intensity:   "95-100% maximal effort",
		rpe:         RPERange{Min: 9, Max: 10},
		adaptations: []string{"phosphocreatine capacity", "rate of force development", "neuromuscular recruitment"},
		exercises: []exerciseRef{
			{id: "sprint-10m"},
			{id: "box-jump", equipment: "box"},
			{id: "med-ball-slam", equipment: "medicine-ball"},
			{id: "power-clean", equipment: "barbell"},
			{id: "heavy-kettlebell-swing", equipment: "kettlebell"},
		},
		notes: "Keep full recovery between reps and end the set when speed drops.",
	},
	AnaerobicLactic: {
		work:        "30-90 s hard intervals",
		rest:        "90-180 s (1:2 to 1:3)",
		intensity:   "85-95% effort",
		rpe:         RPERange{Min: 8, Max: 9},
		adaptations: []string{"lactate buffering", "glycolytic enzyme activity", "repeat effort tolerance"},
		exercises: []exerciseRef{
			{id: "400m-repeats"},
			{id: "burpee-intervals"},
			{id: "shuttle-runs"},
			{id: "assault-bike-intervals", equipment: "bike"},
			{id: "battle-ropes", equipment: "ropes"},
		},
		notes: "Add one repetition per session before shortening rest.",
	},
	Mixed: {
		work:        "3-8 min rounds",
		rest:        "60-120 s between rounds",
		intensity:   "70-90% effort",
		rpe:         RPERange{Min: 6, Max: 8},
		adaptations: []string{"work capacity", "metabolic flexibility"},
		exercises: []exerciseRef{
			{id: "bodyweight-circuit-amrap"},
			{id: "kettlebell-complex", equipment: "kettlebell"},
			{id: "sled-push-pull", equipment: "sled"},
			{id: "row-bike-combo", equipment: "rower"},
		},
		notes: "Progress round count first, then reduce rest between rounds.",
	},
}

// SessionRequest holds the session generator's inputs. DurationMinutes is
// advisory and echoed back; it never changes the selected parameters.
type SessionRequest struct {
	Target          EnergySystem
	Profile         EnergySystemProfile
	DurationMinutes int
	Equipment       []string
}

// WorkoutParameters describes one session. ExerciseSelection contains
// exercise identifiers only.
type WorkoutParameters struct {
	PrimarySystem       EnergySystem  `json:"primary_system"`
	SecondarySystem     *EnergySystem `json:"secondary_system,omitempty"`
	WorkDuration        string        `json:"work_duration"`
	RestDuration        string        `json:"rest_duration"`
	IntensityTarget     string        `json:"intensity_target"`
	RPE                 RPERange      `json:"rpe_range"`
	AdaptationsTargeted []string      `json:"adaptations_targeted"`
	ExerciseSelection   []string      `json:"exercise_selection"`
	ProgressionNotes    string        `json:"progression_notes"`
	DurationMinutes     int           `json:"duration_minutes,omitempty"`
}

// GenerateSession returns the fixed parameters for the target system.
// The secondary system is reported only when the target is the profile's
// dominant system.
func GenerateSession(req SessionRequest) WorkoutParameters {
	t := sessionTemplates[req.Target]

	params := WorkoutParameters{
		PrimarySystem:       req.Target,
		WorkDuration:        t.work,
		RestDuration:        t.rest,
		IntensityTarget:     t.intensity,
		RPE:                 t.rpe,
		AdaptationsTargeted: append([]string(nil), t.adaptations...),
		ExerciseSelection:   selectExercises(t.exercises, req.Equipment),
		ProgressionNotes:    t.notes,
		DurationMinutes:     req.DurationMinutes,
	}
	if req.Target == req.Profile.Dominant && req.Profile.Secondary != nil {
		s := *req.Profile.Secondary
		params.SecondarySystem = &s
	}
	return params
}

// AdaptationsFor returns the adaptations a system's sessions target.
func AdaptationsFor(e EnergySystem) []string {
	return append([]string(nil), sessionTemplates[e].adaptations...)
}

// selectExercises keeps bodyweight entries plus entries whose equipment
// is available. An empty filter, or a filter that leaves nothing, returns
// the whole pool.
func selectExercises(pool []exerciseRef, equipment []string) []string {
	all := make([]string, len(pool))
	for i, ex := range pool {
		all[i] = ex.id
	}
	if len(equipment) == 0 {
		return all
	}

	have := make(map[string]bool, len(equipment))
	for _, e := range equipment {
		have[normalize(e)] = true
	}

	var picked []string
	for _, ex := range pool {
		if ex.equipment == "" || have[ex.equipment] {
			picked = append(picked, ex.id)
		}
	}
	if len(picked) == 0 {
		return all
	}
	return picked
}
