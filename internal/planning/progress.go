package planning

import (
	"fmt"
	"strings"
)

// Recommendation thresholds, in percent unless noted.
const (
	aerobicTargetTrigger = 60
	aerobicObservedFloor = 50
	alacticTargetTrigger = 40
	alacticMinSessions   = 2 // count, not percent
	lacticTargetTrigger  = 30
	lacticObservedFloor  = 15
)

const (
	recommendContinueAsIs  = "Continue the current energy-system distribution"
	recommendAerobicBase   = "Add more aerobic base work: observed aerobic share is below 50% of sessions against a target above 60%"
	recommendPowerWork     = "Add more power and speed work: fewer than 2 alactic sessions in the recent history"
	recommendLacticWork    = "Include lactate-tolerance intervals: observed lactic share is below 15%"
	recommendReduceLoading = "Reduce session intensity: recovery ability is rated poor"
)

// CompletedSession is one recently completed session, tagged with the
// energy system it mainly trained.
type CompletedSession struct {
	System EnergySystem `json:"primary_system"`
}

// SystemTally counts sessions per energy system.
type SystemTally struct {
	Aerobic int `json:"aerobic"`
	Alactic int `json:"alactic"`
	Lactic  int `json:"lactic"`
	Mixed   int `json:"mixed"`
}

func (t SystemTally) count(e EnergySystem) int {
	switch e {
	case Aerobic:
		return t.Aerobic
	case AnaerobicAlactic:
		return t.Alactic
	case AnaerobicLactic:
		return t.Lactic
	}
	return t.Mixed
}

// SystemPercentages holds a value per tracked system.
type SystemPercentages struct {
	Aerobic float64 `json:"aerobic"`
	Alactic float64 `json:"alactic"`
	Lactic  float64 `json:"lactic"`
}

func (p SystemPercentages) get(e EnergySystem) float64 {
	switch e {
	case Aerobic:
		return p.Aerobic
	case AnaerobicAlactic:
		return p.Alactic
	case AnaerobicLactic:
		return p.Lactic
	}
	return 0
}

func (p *SystemPercentages) set(e EnergySystem, v float64) {
	switch e {
	case Aerobic:
		p.Aerobic = v
	case AnaerobicAlactic:
		p.Alactic = v
	case AnaerobicLactic:
		p.Lactic = v
	}
}

// ProgressSummary is the quantitative part of a progress report.
// Deficits are target minus observed; positive means under-trained.
type ProgressSummary struct {
	TotalSessions int               `json:"total_sessions"`
	Tally         SystemTally       `json:"tally"`
	Observed      SystemPercentages `json:"observed_pct"`
	Deficits      SystemPercentages `json:"deficits"`
	Text          string            `json:"text"`
}

// ProgressReport is the progress analyzer's output.
type ProgressReport struct {
	Summary              ProgressSummary `json:"progress_summary"`
	AdaptationsOccurring []string        `json:"adaptations_occurring"`
	Recommendations      []string        `json:"recommendations"`
	NextFocus            EnergySystem    `json:"next_focus"`
}

// AnalyzeProgress compares the recent session mix with the profile's
// sport targets. Sessions tagged mixed count toward the total only.
// The free-text feedback argument is accepted for callers that collect it
// but is not interpreted.
func AnalyzeProgress(profile EnergySystemProfile, sessions []CompletedSession, _ string) ProgressReport {
	var tally SystemTally
	for _, s := range sessions {
		switch s.System {
		case Aerobic:
			tally.Aerobic++
		case AnaerobicAlactic:
			tally.Alactic++
		case AnaerobicLactic:
			tally.Lactic++
		default:
			tally.Mixed++
		}
	}

	total := len(sessions)
	var observed, deficits SystemPercentages
	for _, e := range trackedSystems {
		if total > 0 {
			observed.set(e, 100*float64(tally.count(e))/float64(total))
		}
		deficits.set(e, float64(profile.Demands.Percent(e))-observed.get(e))
	}

	next := profile.Dominant
	if total > 0 {
		next = largestDeficit(deficits)
	}

	return ProgressReport{
		Summary: ProgressSummary{
			TotalSessions: total,
			Tally:         tally,
			Observed:      observed,
			Deficits:      deficits,
			Text:          summaryText(total, observed, profile.Demands),
		},
		AdaptationsOccurring: adaptationsOccurring(tally),
		Recommendations:      recommend(profile, tally, observed),
		NextFocus:            next,
	}
}

// largestDeficit is the argmax over the tracked systems; the earlier
// system wins a tie.
func largestDeficit(d SystemPercentages) EnergySystem {
	best := trackedSystems[0]
	for _, e := range trackedSystems[1:] {
		if d.get(e) > d.get(best) {
			best = e
		}
	}
	return best
}

// recommend runs each threshold check independently.
func recommend(profile EnergySystemProfile, tally SystemTally, observed SystemPercentages) []string {
	var recs []string
	demands := profile.Demands

	if demands.Aerobic > aerobicTargetTrigger && observed.Aerobic < aerobicObservedFloor {
		recs = append(recs, recommendAerobicBase)
	}
	if demands.Alactic > alacticTargetTrigger && tally.Alactic < alacticMinSessions {
		recs = append(recs, recommendPowerWork)
	}
	if demands.Lactic >= lacticTargetTrigger && observed.Lactic < lacticObservedFloor {
		recs = append(recs, recommendLacticWork)
	}
	if profile.Assessment.RecoveryAbility == RecoveryPoor {
		recs = append(recs, recommendReduceLoading)
	}

	if len(recs) == 0 {
		return []string{recommendContinueAsIs}
	}
	return recs
}

func adaptationsOccurring(tally SystemTally) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range EnergySystems() {
		if tally.count(e) == 0 {
			continue
		}
		for _, a := range AdaptationsFor(e) {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

func summaryText(total int, observed SystemPercentages, demands SportEnergyDemands) string {
	if total == 0 {
		return "No recent sessions recorded"
	}
	parts := make([]string, 0, len(trackedSystems))
	for _, e := range trackedSystems {
		parts = append(parts, fmt.Sprintf("%s %.0f%% (target %d%%)", e, observed.get(e), demands.Percent(e)))
	}
	noun := "sessions"
	if total == 1 {
		noun = "session"
	}
	return fmt.Sprintf("%d %s: %s", total, noun, strings.Join(parts, ", "))
}
