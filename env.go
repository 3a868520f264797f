package evlog

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted by New. A Config with EnvPrefix "MYAPP"
// checks MYAPP_DEBUG before EVLOG_DEBUG, and so on for each knob.
const (
	EnvDebug    = "EVLOG_DEBUG"
	EnvQuiet    = "EVLOG_QUIET"
	EnvPath     = "EVLOG_PATH"
	EnvNoFile   = "EVLOG_NOFILE"
	EnvNoSyslog = "EVLOG_NOSYSLOG"
)

func applyEnvOverrides(cfg *Config) {
	if v, ok := parseBool(envValue(cfg.EnvPrefix, EnvDebug)); ok {
		cfg.Debug = v
	}
	if v, ok := parseBool(envValue(cfg.EnvPrefix, EnvQuiet)); ok {
		cfg.Muted = v
	}
	if path := strings.TrimSpace(envValue(cfg.EnvPrefix, EnvPath)); path != "" {
		cfg.LogDir = path
	}
	if v, ok := parseBool(envValue(cfg.EnvPrefix, EnvNoFile)); ok && v {
		cfg.ToFile = false
	}
	if v, ok := parseBool(envValue(cfg.EnvPrefix, EnvNoSyslog)); ok && v {
		cfg.ToSyslog = false
	}
}

// envValue resolves name with the prefixed variant winning over the
// EVLOG_ fallback.
func envValue(prefix, name string) string {
	if prefix != "" {
		if v := os.Getenv(prefix + strings.TrimPrefix(name, "EVLOG")); v != "" {
			return v
		}
	}
	return os.Getenv(name)
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
