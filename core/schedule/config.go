package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Config.SetDefaults.
const (
	DefaultHorizonDays   = 90
	DefaultDailyCapacity = 8.0
	DefaultWorkDayHours  = 8.0

	// minOperationHours is the floor applied to degenerate operations so
	// they still consume capacity when placed.
	minOperationHours = 0.1
)

// Config defines scheduling parameters loaded from configuration.
type Config struct {
	// DefaultDailyCapacity is the flat per-bucket fallback used when no
	// roster-derived capacity is available.
	DefaultDailyCapacity float64 `json:"default_daily_capacity" yaml:"default_daily_capacity"`
	// WorkDayHours converts whole days of lateness into hours.
	WorkDayHours float64 `json:"work_day_hours" yaml:"work_day_hours"`
	// HorizonDays bounds how far ahead operations may be placed.
	HorizonDays int `json:"horizon_days" yaml:"horizon_days"`
}

// SetDefaults fills unset fields with the standard shop values.
func (c *Config) SetDefaults() {
	if c.DefaultDailyCapacity <= 0 {
		c.DefaultDailyCapacity = DefaultDailyCapacity
	}
	if c.WorkDayHours <= 0 {
		c.WorkDayHours = DefaultWorkDayHours
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = DefaultHorizonDays
	}
}

// LoadConfig loads Config from a JSON or YAML file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var cfg Config
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", ext)
	}
	return cfg, err
}

// DecodeConfig reads from r to decode a Config.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	return cfg, nil
}
