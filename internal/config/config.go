package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"fitcoach/internal/planning"
)

// GoalDateLayout is the on-disk format of profile.goal_date.
const GoalDateLayout = "2006-01-02"

// Config represents the application configuration
type Config struct {
	Profile ProfileConfig `toml:"profile"`
	Strava  StravaConfig  `toml:"strava"`
	Athlete AthleteConfig `toml:"athlete"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// ProfileConfig holds the user profile every plan is derived from
type ProfileConfig struct {
	ExperienceLevel    string   `toml:"experience_level"`
	FitnessLevel       string   `toml:"fitness_level"`
	StrengthExperience string   `toml:"strength_experience"`
	Activity           string   `toml:"activity"`
	Goal               string   `toml:"goal"`
	SportFocus         string   `toml:"sport_focus"`
	GoalDate           string   `toml:"goal_date"`
	Persona            string   `toml:"persona"`
	CurrentActivities  []string `toml:"current_activities"`
	Equipment          []string `toml:"equipment"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// AthleteConfig holds the heart-rate bounds used to tag imported sessions
type AthleteConfig struct {
	RestingHR float64 `toml:"resting_hr"`
	MaxHR     float64 `toml:"max_hr"`
}

// ServerConfig configures the JSON API
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures zap
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Profile: ProfileConfig{
			FitnessLevel: "intermediate",
			Goal:         "general fitness",
		},
		Athlete: AthleteConfig{
			RestingHR: 50,
			MaxHR:     185,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8790",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from the config directory
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path)
}

func loadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrNoConfig
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return &cfg, nil
}

// Save writes the configuration to the config directory
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return saveFile(path, cfg)
}

func saveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	example := DefaultConfig()
	example.Profile.Activity = "endurance"
	example.Profile.Goal = "run a half marathon"
	example.Profile.CurrentActivities = []string{"running"}
	example.Profile.Equipment = []string{"bike", "kettlebell"}
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return Save(&example)
}

// Validate checks the profile and athlete sections. Strava credentials are
// only checked by ValidateStrava since only sync needs them.
func (c *Config) Validate() error {
	if _, err := c.Profile.Inputs(); err != nil {
		return err
	}

	if c.Athlete.RestingHR > 0 && c.Athlete.MaxHR > 0 && c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	return nil
}

// ValidateStrava checks that real Strava credentials are configured
func (c *Config) ValidateStrava() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}
	return nil
}

// Inputs converts the profile section into planning inputs. Enumerated
// fields are validated; free text is passed through untouched.
func (p ProfileConfig) Inputs() (planning.ProfileInputs, error) {
	in := planning.ProfileInputs{
		ExperienceLevel:    p.ExperienceLevel,
		FitnessLevel:       p.FitnessLevel,
		StrengthExperience: p.StrengthExperience,
		Activity:           p.Activity,
		Goal:               p.Goal,
		SportFocus:         p.SportFocus,
		Persona:            p.Persona,
		CurrentActivities:  append([]string(nil), p.CurrentActivities...),
	}

	if s := strings.TrimSpace(p.GoalDate); s != "" {
		d, err := time.Parse(GoalDateLayout, s)
		if err != nil {
			return planning.ProfileInputs{}, fmt.Errorf("profile.goal_date must be YYYY-MM-DD, got %q", p.GoalDate)
		}
		in.GoalDate = &d
	}

	if err := in.Validate(); err != nil {
		return planning.ProfileInputs{}, fmt.Errorf("profile: %w", err)
	}
	return in, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetConfigDir returns the config directory. FITCOACH_HOME overrides the
// default of ~/.fitcoach.
func GetConfigDir() (string, error) {
	if env := os.Getenv("FITCOACH_HOME"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fitcoach"), nil
}
