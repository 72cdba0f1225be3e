package service

import "time"

const (
	// HR validation thresholds
	MinValidHeartrate = 50
	MaxValidHeartrate = 220
	DefaultMaxHR      = 185
	DefaultRestingHR  = 50

	// Progress analysis looks at this many of the newest sessions
	ProgressSessionLimit = 20

	// Time windows
	ChartWeeks    = 12
	MaxChartWeeks = 520

	// Strava paging
	ActivitiesPerPage = 100
)

// Activity tagging thresholds
const (
	MinTaggedMovingTime   = 60 * time.Second
	StrengthSessionCutoff = 45 * time.Minute
	ContinuousEffortMin   = 20 * time.Minute
	LacticEffortMax       = 20 * time.Minute

	// Fractions of heart-rate reserve
	AerobicHRReserveMax = 0.72
	LacticHRReserveMin  = 0.83
)
