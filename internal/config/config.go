package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	WindowStart      string     `yaml:"window_start,omitempty"`       // Analysis window start (YYYY-MM-DD)
	WindowEnd        string     `yaml:"window_end,omitempty"`         // Analysis window end (YYYY-MM-DD)
	RegimeThresholdF float64    `yaml:"regime_threshold_f,omitempty"` // Heating/cooling split (fallback: 70)
	CVTrials         int        `yaml:"cv_trials,omitempty"`          // Random-drop trials (fallback: 500)
	CVDropFraction   float64    `yaml:"cv_drop_fraction,omitempty"`   // Random-drop holdout fraction (fallback: 0.1)
	ExcludedDates    []string   `yaml:"excluded_dates,omitempty"`     // Known anomalous dates (YYYY-MM-DD), skipped in ratio series
	DemandColumn     string     `yaml:"demand_column,omitempty"`      // Demand CSV column name (fallback: demand_mw)
	HomeAssistant    HAConfig   `yaml:"home_assistant,omitempty"`
	MQTT             MQTTConfig `yaml:"mqtt,omitempty"`
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://yourdomain.local:5050"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.city_mean_demand"
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

const dateLayout = "2006-01-02"

// GetRegimeThresholdF returns the heating/cooling split temperature with a
// default of 70°F
func (c *Config) GetRegimeThresholdF() float64 {
	if c.RegimeThresholdF <= 0 {
		return 70.0
	}
	return c.RegimeThresholdF
}

// GetCVTrials returns the number of random-drop cross-validation trials
// with a default of 500
func (c *Config) GetCVTrials() int {
	if c.CVTrials <= 0 {
		return 500
	}
	return c.CVTrials
}

// GetCVDropFraction returns the random-drop holdout fraction with a default
// of 0.1
func (c *Config) GetCVDropFraction() float64 {
	if c.CVDropFraction <= 0 {
		return 0.1
	}
	return c.CVDropFraction
}

// GetDemandColumn returns the demand CSV column name with a default of
// "demand_mw"
func (c *Config) GetDemandColumn() string {
	if c.DemandColumn == "" {
		return "demand_mw"
	}
	return c.DemandColumn
}

// GetWindow parses the analysis window. A missing start or end is returned
// as a zero time, leaving that side unbounded.
func (c *Config) GetWindow() (start, end time.Time, err error) {
	if c.WindowStart != "" {
		start, err = time.Parse(dateLayout, c.WindowStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing window_start: %w", err)
		}
	}
	if c.WindowEnd != "" {
		end, err = time.Parse(dateLayout, c.WindowEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing window_end: %w", err)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("window_end %s is before window_start %s", c.WindowEnd, c.WindowStart)
	}
	return start, end, nil
}

// GetExcludedDates parses the excluded-dates list into a set keyed by
// midnight UTC
func (c *Config) GetExcludedDates() (map[time.Time]bool, error) {
	if len(c.ExcludedDates) == 0 {
		return nil, nil
	}
	out := make(map[time.Time]bool, len(c.ExcludedDates))
	for _, s := range c.ExcludedDates {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("parsing excluded date %q: %w", s, err)
		}
		out[d] = true
	}
	return out, nil
}
