package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Raw config loaded from YAML. Pointer fields distinguish "unset" from zero
// so an overlay file only overrides what it names.
type Raw struct {
	Version       string      `yaml:"version"`
	HTTP          HTTPRaw     `yaml:"http"`
	GRPC          *GRPCRaw    `yaml:"grpc,omitempty"`
	Log           LogRaw      `yaml:"log"`
	Metrics       *MetricsRaw `yaml:"metrics,omitempty"`
	DefaultRegion string      `yaml:"default_region,omitempty"`
}

type HTTPRaw struct {
	Addr         string    `yaml:"addr"`
	ReadTimeout  *Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout *Duration `yaml:"write_timeout,omitempty"`
	IdleTimeout  *Duration `yaml:"idle_timeout,omitempty"`
}

type GRPCRaw struct {
	Enabled *bool  `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type LogRaw struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

type MetricsRaw struct {
	Enabled   *bool  `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Duration is a time.Duration written as "15s" in YAML.
type Duration time.Duration

// UnmarshalYAML parses Go duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config is the normalized runtime configuration.
type Config struct {
	HTTP          HTTPConfig
	GRPC          GRPCConfig
	Log           LogConfig
	Metrics       MetricsConfig
	DefaultRegion string
	Version       string // effective config version for tracing
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GRPCConfig configures the gRPC listener.
type GRPCConfig struct {
	Enabled bool
	Addr    string
}

// LogConfig holds the logger level.
type LogConfig struct {
	Level string
}

// MetricsConfig toggles Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}
