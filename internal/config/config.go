// Package config reads kiba's plain "key value" configuration file format:
// one pair per line, "#" introduces a full-line comment, blank lines are
// ignored. This mirrors the original config.rs reader exactly — a generic
// format library (YAML, TOML, .env) would be the wrong fit for a format
// this spec pins down to the byte, including its exact fatal-on-malformed
// behavior (see DESIGN.md).
package config

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBind is the listener address used when no "bind" key is set.
	DefaultBind = "127.0.0.1:6464"
	// DefaultCbound is the message-bus channel capacity used when no
	// "cbound" key is set.
	DefaultCbound = 128
	// DefaultMetricsBind is the Prometheus HTTP listener address used when
	// no "metrics_bind" key is set. An empty Config.MetricsBind disables the
	// metrics listener; a config-file line always carries a value, so the
	// file itself cannot set it empty.
	DefaultMetricsBind = "127.0.0.1:9464"
	// DefaultLogLevel is used when neither KIBA_LOG nor a "log_level" key
	// is set.
	DefaultLogLevel = "info"
)

// Config is the resolved set of startup parameters, per §6/§11.3.
type Config struct {
	Bind        string
	Cbound      int
	MetricsBind string
	LogLevel    string
}

// Default returns a Config populated entirely with defaults.
func Default() Config {
	return Config{
		Bind:        DefaultBind,
		Cbound:      DefaultCbound,
		MetricsBind: DefaultMetricsBind,
		LogLevel:    DefaultLogLevel,
	}
}

// Load resolves a Config from an optional file path. An empty path returns
// Default() unchanged. A present but unreadable path, or a malformed line,
// or an invalid cbound/metrics_bind/log_level value, is a fatal startup
// error (§7 category 3) reported as a non-nil error for the caller to log
// and exit on.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not open config file %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return Config{}, fmt.Errorf("could not parse %s, line %d: %q", path, lineNo, text)
		}
		key, val := fields[0], fields[1]
		if err := cfg.apply(key, val); err != nil {
			return Config{}, fmt.Errorf("could not parse %s, line %d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) apply(key, val string) error {
	switch key {
	case "bind":
		cfg.Bind = val
	case "cbound":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return fmt.Errorf("cbound must be a positive integer, got %q", val)
		}
		cfg.Cbound = n
	case "metrics_bind":
		if _, _, err := net.SplitHostPort(val); err != nil {
			return fmt.Errorf("metrics_bind must be a host:port address, got %q", val)
		}
		cfg.MetricsBind = val
	case "log_level":
		if _, err := logrus.ParseLevel(val); err != nil {
			return fmt.Errorf("log_level must be one of trace/debug/info/warn/error/fatal/panic, got %q", val)
		}
		cfg.LogLevel = val
	default:
		return fmt.Errorf("unrecognized config key %q", key)
	}
	return nil
}

// LooksLikeKibaConf reports whether path ends in the conventional
// "kiba.conf" filename. cmd/kiba-server logs a warning when it doesn't,
// matching the original config.rs's soft naming-convention nudge — this
// package stays pure and leaves the actual logging to the caller.
func LooksLikeKibaConf(path string) bool {
	return strings.HasSuffix(path, "kiba.conf")
}

// ResolveLogLevel returns the environment's KIBA_LOG if set, otherwise the
// config file's log_level, otherwise DefaultLogLevel. Per §11.3 the
// environment wins when both are present.
func ResolveLogLevel(cfg Config) string {
	if lvl := os.Getenv("KIBA_LOG"); lvl != "" {
		return lvl
	}
	if cfg.LogLevel != "" {
		return cfg.LogLevel
	}
	return DefaultLogLevel
}
