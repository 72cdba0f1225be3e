package service

import (
	"time"

	"fitcoach/internal/planning"
	"fitcoach/internal/strava"
)

var strengthSportTypes = map[string]bool{
	"WeightTraining":                true,
	"Crossfit":                      true,
	"HighIntensityIntervalTraining": true,
}

var enduranceSportTypes = map[string]bool{
	"Run":         true,
	"Ride":        true,
	"Swim":        true,
	"Walk":        true,
	"Hike":        true,
	"Rowing":      true,
	"VirtualRide": true,
	"VirtualRun":  true,
	"NordicSki":   true,
}

// ClassifyActivity tags a Strava activity with the energy system it mainly
// trained. ok is false for activities too short to count. maxHR <= 0
// disables the heart-rate rules. Heart rate is judged as a fraction of
// reserve (max minus resting); a restingHR outside (0, maxHR) counts as 0.
func ClassifyActivity(a strava.Activity, maxHR, restingHR float64) (system planning.EnergySystem, ok bool) {
	moving := time.Duration(a.MovingTime) * time.Second
	if moving < MinTaggedMovingTime {
		return 0, false
	}

	sport := a.SportType
	if sport == "" {
		sport = a.Type
	}

	if strengthSportTypes[sport] {
		if moving < StrengthSessionCutoff {
			return planning.AnaerobicAlactic, true
		}
		return planning.Mixed, true
	}

	if hr := a.AverageHeartrate; hr >= MinValidHeartrate && hr <= MaxValidHeartrate && maxHR > 0 {
		switch frac := reserveFraction(hr, maxHR, restingHR); {
		case frac < AerobicHRReserveMax:
			return planning.Aerobic, true
		case frac >= LacticHRReserveMin && moving <= LacticEffortMax:
			return planning.AnaerobicLactic, true
		}
		return planning.Mixed, true
	}

	if enduranceSportTypes[sport] && moving >= ContinuousEffortMin {
		return planning.Aerobic, true
	}
	return planning.Mixed, true
}

func reserveFraction(hr, maxHR, restingHR float64) float64 {
	if restingHR <= 0 || restingHR >= maxHR {
		restingHR = 0
	}
	return (hr - restingHR) / (maxHR - restingHR)
}
