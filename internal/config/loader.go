package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultGRPCAddr     = ":9090"
	defaultLogLevel     = "info"
	defaultNamespace    = "ordercalc"
	defaultRegion       = "AUK"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	envHTTPAddr         = "ORDERCALC_HTTP_ADDR"
	envGRPCAddr         = "ORDERCALC_GRPC_ADDR"
	envLogLevel         = "LOG_LEVEL"
)

// Paths helper for the default and per-environment files.
type Paths struct {
	BaseDir string // e.g., /etc/ordercalc
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}

func (p Paths) EnvPath(env string) string {
	return filepath.Join(p.BaseDir, env+".yaml")
}

// Files lists every path the loader may read, for watching.
func (p Paths) Files(env string) []string {
	files := []string{p.DefaultPath()}
	if env != "" {
		files = append(files, p.EnvPath(env))
	}
	return files
}

// Loader reads YAML configs and merges default → env → environment variables.
type Loader struct {
	paths  Paths
	env    string
	getenv func(string) string
}

// NewLoader creates a config loader for baseDir. env selects the overlay
// file (e.g., "prod" reads prod.yaml) and may be empty.
func NewLoader(baseDir, env string) *Loader {
	return &Loader{
		paths:  Paths{BaseDir: baseDir},
		env:    env,
		getenv: os.Getenv,
	}
}

// Paths exposes the files this loader reads.
func (l *Loader) Paths() []string {
	return l.paths.Files(l.env)
}

// LoadMerged loads and merges default → env file → environment variables.
// Missing files are skipped; the result is not validated.
func (l *Loader) LoadMerged() (Raw, error) {
	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return Raw{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if l.env != "" {
		envCfg, err := readYAML(l.paths.EnvPath(l.env))
		if err != nil {
			return Raw{}, fmt.Errorf("read %s: %w", l.env, err)
		}
		merged = mergeRaw(merged, envCfg)
	}
	return mergeRaw(merged, l.fromEnv()), nil
}

// Load merges, validates and normalizes the configuration.
func (l *Loader) Load() (Config, error) {
	raw, err := l.LoadMerged()
	if err != nil {
		return Config{}, err
	}
	if err := Validate(raw); err != nil {
		return Config{}, err
	}
	return Normalize(raw), nil
}

func (l *Loader) fromEnv() Raw {
	var out Raw
	out.HTTP.Addr = strings.TrimSpace(l.getenv(envHTTPAddr))
	if addr := strings.TrimSpace(l.getenv(envGRPCAddr)); addr != "" {
		out.GRPC = &GRPCRaw{Addr: addr}
	}
	out.Log.Level = strings.ToLower(strings.TrimSpace(l.getenv(envLogLevel)))
	return out
}

// readYAML loads a YAML file into Raw. Missing files return zero cfg, no error.
func readYAML(path string) (Raw, error) {
	var cfg Raw
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Raw{}, nil
		}
		return Raw{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Raw{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b onto a: any field b sets wins.
func mergeRaw(a, b Raw) Raw {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.DefaultRegion != "" {
		out.DefaultRegion = b.DefaultRegion
	}

	// http
	if b.HTTP.Addr != "" {
		out.HTTP.Addr = b.HTTP.Addr
	}
	if b.HTTP.ReadTimeout != nil {
		out.HTTP.ReadTimeout = b.HTTP.ReadTimeout
	}
	if b.HTTP.WriteTimeout != nil {
		out.HTTP.WriteTimeout = b.HTTP.WriteTimeout
	}
	if b.HTTP.IdleTimeout != nil {
		out.HTTP.IdleTimeout = b.HTTP.IdleTimeout
	}

	// grpc
	switch {
	case out.GRPC == nil && b.GRPC != nil:
		c := *b.GRPC
		out.GRPC = &c
	case out.GRPC != nil && b.GRPC != nil:
		c := *out.GRPC
		if b.GRPC.Enabled != nil {
			c.Enabled = b.GRPC.Enabled
		}
		if b.GRPC.Addr != "" {
			c.Addr = b.GRPC.Addr
		}
		out.GRPC = &c
	}

	// log
	if b.Log.Level != "" {
		out.Log.Level = b.Log.Level
	}

	// metrics
	switch {
	case out.Metrics == nil && b.Metrics != nil:
		c := *b.Metrics
		out.Metrics = &c
	case out.Metrics != nil && b.Metrics != nil:
		c := *out.Metrics
		if b.Metrics.Enabled != nil {
			c.Enabled = b.Metrics.Enabled
		}
		if b.Metrics.Namespace != "" {
			c.Namespace = b.Metrics.Namespace
		}
		out.Metrics = &c
	}

	return out
}

// Normalize fills defaults into a validated Raw.
func Normalize(raw Raw) Config {
	cfg := Config{
		HTTP: HTTPConfig{
			Addr:         defaultHTTPAddr,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		GRPC:          GRPCConfig{Enabled: true, Addr: defaultGRPCAddr},
		Log:           LogConfig{Level: defaultLogLevel},
		Metrics:       MetricsConfig{Enabled: true, Namespace: defaultNamespace},
		DefaultRegion: defaultRegion,
		Version:       raw.Version,
	}

	if raw.HTTP.Addr != "" {
		cfg.HTTP.Addr = raw.HTTP.Addr
	}
	if raw.HTTP.ReadTimeout != nil {
		cfg.HTTP.ReadTimeout = time.Duration(*raw.HTTP.ReadTimeout)
	}
	if raw.HTTP.WriteTimeout != nil {
		cfg.HTTP.WriteTimeout = time.Duration(*raw.HTTP.WriteTimeout)
	}
	if raw.HTTP.IdleTimeout != nil {
		cfg.HTTP.IdleTimeout = time.Duration(*raw.HTTP.IdleTimeout)
	}
	if raw.GRPC != nil {
		if raw.GRPC.Enabled != nil {
			cfg.GRPC.Enabled = *raw.GRPC.Enabled
		}
		if raw.GRPC.Addr != "" {
			cfg.GRPC.Addr = raw.GRPC.Addr
		}
	}
	if raw.Log.Level != "" {
		cfg.Log.Level = strings.ToLower(raw.Log.Level)
	}
	if raw.Metrics != nil {
		if raw.Metrics.Enabled != nil {
			cfg.Metrics.Enabled = *raw.Metrics.Enabled
		}
		if raw.Metrics.Namespace != "" {
			cfg.Metrics.Namespace = raw.Metrics.Namespace
		}
	}
	if r := strings.TrimSpace(raw.DefaultRegion); r != "" {
		cfg.DefaultRegion = strings.ToUpper(r)
	}
	return cfg
}
