package metrics

import "github.com/dsisolutions/shopsched/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusPort is the listen address for the exposition endpoint,
	// used when a prom sink is configured.
	PrometheusPort string `json:"prometheus_port"`
}
