package service

import (
	"testing"

	"fitcoach/internal/planning"
	"fitcoach/internal/strava"
)

func TestClassifyActivity(t *testing.T) {
	tests := []struct {
		name     string
		activity strava.Activity
		maxHR    float64
		restHR   float64
		want     planning.EnergySystem
		wantOK   bool
	}{
		{
			name:     "too short",
			activity: strava.Activity{SportType: "Run", MovingTime: 45},
			maxHR:    185,
			restHR:   50,
			wantOK:   false,
		},
		{
			name:     "short lifting session",
			activity: strava.Activity{SportType: "WeightTraining", MovingTime: 40 * 60, AverageHeartrate: 120},
			maxHR:    185,
			restHR:   50,
			want:     planning.AnaerobicAlactic,
			wantOK:   true,
		},
		{
			name:     "long crossfit session",
			activity: strava.Activity{SportType: "Crossfit", MovingTime: 60 * 60},
			maxHR:    185,
			restHR:   50,
			want:     planning.Mixed,
			wantOK:   true,
		},
		{
			name:     "easy run by heart rate",
			activity: strava.Activity{SportType: "Run", MovingTime: 50 * 60, AverageHeartrate: 140},
			maxHR:    185,
			restHR:   50,
			want:     planning.Aerobic,
			wantOK:   true,
		},
		{
			name:     "hard short ride",
			activity: strava.Activity{SportType: "Ride", MovingTime: 15 * 60, AverageHeartrate: 168},
			maxHR:    185,
			restHR:   50,
			want:     planning.AnaerobicLactic,
			wantOK:   true,
		},
		{
			name:     "hard long ride is mixed",
			activity: strava.Activity{SportType: "Ride", MovingTime: 70 * 60, AverageHeartrate: 168},
			maxHR:    185,
			restHR:   50,
			want:     planning.Mixed,
			wantOK:   true,
		},
		{
			name:     "tempo band is mixed",
			activity: strava.Activity{SportType: "Run", MovingTime: 10 * 60, AverageHeartrate: 155},
			maxHR:    185,
			restHR:   50,
			want:     planning.Mixed,
			wantOK:   true,
		},
		{
			name:     "no heart rate long run",
			activity: strava.Activity{Type: "Run", MovingTime: 30 * 60},
			maxHR:    185,
			restHR:   50,
			want:     planning.Aerobic,
			wantOK:   true,
		},
		{
			name:     "no max HR configured",
			activity: strava.Activity{SportType: "Swim", MovingTime: 25 * 60, AverageHeartrate: 175},
			maxHR:    0,
			want:     planning.Aerobic,
			wantOK:   true,
		},
		{
			name:     "implausible heart rate ignored",
			activity: strava.Activity{SportType: "Yoga", MovingTime: 30 * 60, AverageHeartrate: 20},
			maxHR:    185,
			restHR:   50,
			want:     planning.Mixed,
			wantOK:   true,
		},
		{
			name:     "resting HR widens the aerobic band",
			activity: strava.Activity{SportType: "Run", MovingTime: 40 * 60, AverageHeartrate: 145},
			maxHR:    185,
			restHR:   60,
			want:     planning.Aerobic,
			wantOK:   true,
		},
		{
			name:     "no resting HR judges against max",
			activity: strava.Activity{SportType: "Run", MovingTime: 40 * 60, AverageHeartrate: 145},
			maxHR:    185,
			want:     planning.Mixed,
			wantOK:   true,
		},
		{
			name:     "resting HR above max is ignored",
			activity: strava.Activity{SportType: "Run", MovingTime: 40 * 60, AverageHeartrate: 145},
			maxHR:    185,
			restHR:   190,
			want:     planning.Mixed,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyActivity(tt.activity, tt.maxHR, tt.restHR)
			if ok != tt.wantOK {
				t.Fatalf("ClassifyActivity() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ClassifyActivity() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReserveFraction(t *testing.T) {
	tests := []struct {
		hr, max, rest float64
		want          float64
	}{
		{185, 185, 50, 1},
		{50, 185, 50, 0},
		{117.5, 185, 50, 0.5},
		{92.5, 185, 0, 0.5},
		{92.5, 185, 200, 0.5},
	}
	for _, tt := range tests {
		if got := reserveFraction(tt.hr, tt.max, tt.rest); got != tt.want {
			t.Errorf("reserveFraction(%v, %v, %v) = %v, want %v", tt.hr, tt.max, tt.rest, got, tt.want)
		}
	}
}
