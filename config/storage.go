package config

import (
	"fmt"
)

// StorageConfig defines settings for overlay persistence.
type StorageConfig struct {
	// Backend selects the store type: "json" or "sqlite".
	Backend string `json:"backend"`
	// Path is the data directory for the json backend or the database
	// file for the sqlite backend.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StorageConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "json"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "shopsched.db"
		default:
			c.Path = "data"
		}
	}
}

// Validate checks mandatory fields.
func (c StorageConfig) Validate() error {
	if c.Backend != "json" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}
