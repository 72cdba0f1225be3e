package strava

import "time"

// Activity is the summary representation returned by
// /athlete/activities. Only the fields session tagging needs are decoded.
type Activity struct {
	ID               int64     `json:"id"`
	Athlete          Athlete   `json:"athlete"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	SportType        string    `json:"sport_type"`
	StartDate        time.Time `json:"start_date"`
	StartDateLocal   time.Time `json:"start_date_local"`
	Distance         float64   `json:"distance"`          // meters
	MovingTime       int       `json:"moving_time"`       // seconds
	ElapsedTime      int       `json:"elapsed_time"`      // seconds
	AverageHeartrate float64   `json:"average_heartrate"` // bpm
	MaxHeartrate     float64   `json:"max_heartrate"`     // bpm
	SufferScore      int       `json:"suffer_score"`
	HasHeartrate     bool      `json:"has_heartrate"`
}

// Athlete represents a Strava athlete (minimal info in activity response)
type Athlete struct {
	ID int64 `json:"id"`
}
