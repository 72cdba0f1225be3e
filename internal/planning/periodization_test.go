package planning

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var testNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func TestIntensityTablesSumTo100(t *testing.T) {
	for _, p := range Phases() {
		if got := beginnerIntensity[p].Total(); got != 100 {
			t.Errorf("beginner %s intensity total = %d", p, got)
		}
		for _, e := range EnergySystems() {
			if got := trainedIntensity[p][e].Total(); got != 100 {
				t.Errorf("trained %s/%s intensity total = %d", p, e, got)
			}
		}
	}
}

func TestTablesAreComplete(t *testing.T) {
	for _, l := range ExperienceLevels() {
		if macrocycleMonths[l] == 0 {
			t.Errorf("no macrocycle length for %s", l)
		}
		if len(recoveryProtocols[l]) == 0 {
			t.Errorf("no recovery protocols for %s", l)
		}
		if len(macrocycleNotes[l]) == 0 {
			t.Errorf("no macrocycle notes for %s", l)
		}
		for _, p := range Phases() {
			if mesocycleWeeks[p][l] == 0 {
				t.Errorf("no mesocycle length for %s/%s", p, l)
			}
			if volumeProgressions[l][p].DeloadEveryWeeks == 0 {
				t.Errorf("no volume progression for %s/%s", l, p)
			}
		}
	}
	for _, p := range Phases() {
		for _, e := range EnergySystems() {
			if len(focusAreas[p][e]) == 0 {
				t.Errorf("no focus areas for %s/%s", p, e)
			}
		}
		if beginnerOverload[p] == nil || trainedOverload[p] == nil {
			t.Errorf("overload row for %s is nil", p)
		}
	}
	for i := range personaNotes {
		if personaNotes[i] == "" {
			t.Errorf("no note for persona %s", Persona(i))
		}
	}
}

func TestWeekTemplatesMatchTrainingDays(t *testing.T) {
	for _, l := range ExperienceLevels() {
		for _, p := range Phases() {
			m := PlanMicrocycle(l, p)
			if got := m.CountDays(DayTraining); got != m.TrainingDays {
				t.Errorf("%s/%s: pattern has %d training days, want %d", l, p, got, m.TrainingDays)
			}
			if m.TrainingDays+m.RestDays != 7 {
				t.Errorf("%s/%s: training %d + rest %d != 7", l, p, m.TrainingDays, m.RestDays)
			}
		}
	}
}

func TestPeakTemplateOnlyForTrained(t *testing.T) {
	if WeekTemplate(CompleteBeginner, PhasePeak) != weekTemplates[CompleteBeginner] {
		t.Error("Expected beginners to keep the standard template in peak")
	}
	if WeekTemplate(AmateurRegular, PhasePeak) == weekTemplates[AmateurRegular] {
		t.Error("Expected amateur peak template to differ from standard")
	}
}

func TestDeloadFrequencyNonDecreasing(t *testing.T) {
	want := []int{3, 4, 4, 5, 6}
	prev := 0
	for i, l := range ExperienceLevels() {
		got := StrategyFor(l).DeloadFrequency
		if got != want[i] {
			t.Errorf("%s deload = %d, want %d", l, got, want[i])
		}
		if got < prev {
			t.Errorf("%s deload %d decreases from %d", l, got, prev)
		}
		prev = got
	}
}

func TestPhaseSequence(t *testing.T) {
	tests := []struct {
		level    ExperienceLevel
		category SportCategory
		want     []Phase
	}{
		{CompleteBeginner, CategoryStrengthPower, []Phase{PhaseBase, PhaseBuild, PhaseRecovery}},
		{BeginnerInconsistent, CategoryEndurance, []Phase{PhaseBase, PhaseBuild, PhaseRecovery}},
		{AmateurRegular, CategoryStrengthPower, []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseTransition}},
		{IntermediateStructured, CategoryEndurance, []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseRecovery}},
		{AdvancedCompetitive, CategoryTeam, []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseRecovery}},
	}
	for _, tt := range tests {
		got := PhaseSequence(tt.level, tt.category)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("PhaseSequence(%s, %s) mismatch (-want +got):\n%s", tt.level, tt.category, diff)
		}
		if got[0] != PhaseBase {
			t.Errorf("sequence must start with base, got %v", got)
		}
		for i, p := range got {
			if p == PhasePeak && (i == 0 || got[i-1] != PhaseBuild) {
				t.Errorf("peak must follow build in %v", got)
			}
		}
	}
}

func TestPlan_CompleteBeginnerGeneralFitness(t *testing.T) {
	plan := Plan(PlanRequest{Level: CompleteBeginner, Goal: "general fitness"}, testNow)

	if plan.Macrocycle.DurationMonths != 6 {
		t.Errorf("DurationMonths = %d, want 6", plan.Macrocycle.DurationMonths)
	}
	want := []Phase{PhaseBase, PhaseBuild, PhaseRecovery}
	if diff := cmp.Diff(want, plan.Macrocycle.Phases); diff != "" {
		t.Errorf("phases mismatch (-want +got):\n%s", diff)
	}
	if plan.Progression.DeloadFrequency != 3 {
		t.Errorf("DeloadFrequency = %d, want 3", plan.Progression.DeloadFrequency)
	}
	if plan.CurrentMesocycle.Phase != PhaseBase || plan.CurrentMesocycle.DurationWeeks != 6 {
		t.Errorf("CurrentMesocycle = %s/%d weeks, want base/6", plan.CurrentMesocycle.Phase, plan.CurrentMesocycle.DurationWeeks)
	}
	if plan.CurrentMesocycle.Intensity != beginnerIntensity[PhaseBase] {
		t.Errorf("Expected beginner intensity table, got %+v", plan.CurrentMesocycle.Intensity)
	}
	if plan.CurrentMicrocycle.TrainingDays != 3 {
		t.Errorf("TrainingDays = %d, want 3", plan.CurrentMicrocycle.TrainingDays)
	}
}

func TestPlan_NextPhaseTransition(t *testing.T) {
	for _, l := range ExperienceLevels() {
		plan := Plan(PlanRequest{Level: l, Goal: "marathon"}, testNow)
		want := testNow.AddDate(0, 0, 7*plan.CurrentMesocycle.DurationWeeks)
		if !plan.NextPhaseTransition.Equal(want) {
			t.Errorf("%s: NextPhaseTransition = %s, want %s", l, plan.NextPhaseTransition, want)
		}
	}
}

func TestPlan_GoalDateClamped(t *testing.T) {
	tests := []struct {
		name string
		goal time.Time
		want int
	}{
		{"two weeks out", testNow.AddDate(0, 0, 14), 3},
		{"in the past", testNow.AddDate(0, -2, 0), 3},
		{"five months", testNow.AddDate(0, 5, 0), 5},
		{"day short of five months", testNow.AddDate(0, 5, -1), 4},
		{"two years", testNow.AddDate(2, 0, 0), 12},
	}
	for _, tt := range tests {
		goal := tt.goal
		plan := Plan(PlanRequest{Level: AdvancedCompetitive, Goal: "marathon", GoalDate: &goal}, testNow)
		if plan.Macrocycle.DurationMonths != tt.want {
			t.Errorf("%s: DurationMonths = %d, want %d", tt.name, plan.Macrocycle.DurationMonths, tt.want)
		}
		if plan.Macrocycle.GoalDate == nil || !plan.Macrocycle.GoalDate.Equal(goal) {
			t.Errorf("%s: GoalDate not carried into macrocycle", tt.name)
		}
	}
}

func TestPlan_Deterministic(t *testing.T) {
	persona := PersonaSportSpecific
	goal := testNow.AddDate(0, 7, 0)
	req := PlanRequest{
		Level:      IntermediateStructured,
		Goal:       "Olympic weightlifting total",
		GoalDate:   &goal,
		SportFocus: "weightlifting",
		Persona:    &persona,
	}

	a := Plan(req, testNow)
	b := Plan(req, testNow)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Plan is not deterministic (-first +second):\n%s", diff)
	}
	if a.Macrocycle.PrimarySystem != AnaerobicAlactic {
		t.Errorf("PrimarySystem = %s, want anaerobic-alactic", a.Macrocycle.PrimarySystem)
	}
}

func TestPlanMesocycle_ReturnsCopies(t *testing.T) {
	m := PlanMesocycle(AmateurRegular, PhaseBuild, Aerobic)
	m.FocusAreas[0] = "mutated"
	m.RecoveryProtocols[0] = "mutated"
	again := PlanMesocycle(AmateurRegular, PhaseBuild, Aerobic)
	if again.FocusAreas[0] == "mutated" || again.RecoveryProtocols[0] == "mutated" {
		t.Error("PlanMesocycle returned slices aliasing the tables")
	}
}

func TestPhaseSchedule(t *testing.T) {
	tests := []struct {
		name   string
		level  ExperienceLevel
		phases []Phase
		months int
		weeks  []int
	}{
		// 26 weeks over base 6, build 4, recovery 2: 14 extra weeks alternate.
		{"beginner six months", CompleteBeginner, []Phase{PhaseBase, PhaseBuild, PhaseRecovery}, 6, []int{13, 11, 2}},
		// 13 weeks; table sums to 4+5+3+2 = 14, so base gives one back.
		{"advanced three months", AdvancedCompetitive, []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseTransition}, 3, []int{3, 5, 3, 2}},
	}
	for _, tt := range tests {
		blocks := PhaseSchedule(tt.level, tt.phases, tt.months)
		if len(blocks) != len(tt.phases) {
			t.Fatalf("%s: got %d blocks, want %d", tt.name, len(blocks), len(tt.phases))
		}
		start := 1
		for i, b := range blocks {
			if b.Phase != tt.phases[i] {
				t.Errorf("%s: block %d phase = %s, want %s", tt.name, i, b.Phase, tt.phases[i])
			}
			if b.Weeks != tt.weeks[i] {
				t.Errorf("%s: block %d weeks = %d, want %d", tt.name, i, b.Weeks, tt.weeks[i])
			}
			if b.StartWeek != start {
				t.Errorf("%s: block %d starts at %d, want %d", tt.name, i, b.StartWeek, start)
			}
			start += b.Weeks
		}
	}
}
