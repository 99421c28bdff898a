package config

import (
	"fmt"
	"net"
	"sort"
	"strings"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks semantic constraints of a merged Raw config.
func Validate(cfg Raw) error {
	var errs []string

	// http
	if cfg.HTTP.Addr != "" {
		if err := checkAddr(cfg.HTTP.Addr); err != nil {
			errs = append(errs, "http.addr "+err.Error())
		}
	}
	for name, d := range map[string]*Duration{
		"http.read_timeout":  cfg.HTTP.ReadTimeout,
		"http.write_timeout": cfg.HTTP.WriteTimeout,
		"http.idle_timeout":  cfg.HTTP.IdleTimeout,
	} {
		if d != nil && *d <= 0 {
			errs = append(errs, name+" must be > 0")
		}
	}

	// grpc
	if cfg.GRPC != nil && cfg.GRPC.Addr != "" {
		if err := checkAddr(cfg.GRPC.Addr); err != nil {
			errs = append(errs, "grpc.addr "+err.Error())
		}
	}

	// log
	if cfg.Log.Level != "" && !validLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, "log.level must be one of: debug, info, warn, error")
	}

	// metrics
	if cfg.Metrics != nil && strings.ContainsAny(cfg.Metrics.Namespace, " -.") {
		errs = append(errs, "metrics.namespace must not contain spaces, dashes or dots")
	}

	if len(errs) > 0 {
		// map iteration above is unordered
		sort.Strings(errs)
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func checkAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("must be host:port (%q)", addr)
	}
	if port == "" {
		return fmt.Errorf("must include a port (%q)", addr)
	}
	return nil
}
