package logging

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "EVLOGCTL_LOG_LEVEL"
	EnvLogJSON    = "EVLOGCTL_LOG_JSON"
	EnvLogNoColor = "EVLOGCTL_LOG_NOCOLOR"
)

// Profile describes how tool diagnostics should be rendered. It covers
// the stderr side channel only; program output never runs through it.
type Profile struct {
	Level   zerolog.Level
	JSON    bool
	NoColor bool
}

// RuntimeProfile is the default for CLI runs, after environment
// overrides.
func RuntimeProfile() Profile {
	p := Profile{Level: zerolog.InfoLevel}
	applyEnvOverrides(&p)
	return p
}

// TestProfile keeps test output quiet and deterministic. Environment
// overrides do not apply.
func TestProfile() Profile {
	return Profile{Level: zerolog.DebugLevel, NoColor: true}
}

func applyEnvOverrides(p *Profile) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		p.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogJSON)); ok {
		p.JSON = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		p.NoColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
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
