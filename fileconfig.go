package evlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// evlog config.toml key mapping to Config fields.
type fileConfig struct {
	Ident      string `toml:"ident"`
	ToStderr   bool   `toml:"to_stderr"`
	ToStdout   bool   `toml:"to_stdout"`
	ToFile     bool   `toml:"to_file"`
	LogDir     string `toml:"log_dir"`
	FileSuffix string `toml:"file_suffix"`
	ToSyslog   bool   `toml:"to_syslog"`
	Facility   string `toml:"facility"`
	ToSelf     bool   `toml:"to_self"`
	Muted      bool   `toml:"muted"`
	Debug      bool   `toml:"debug"`
	NoPID      bool   `toml:"no_pid"`
	Prefix     string `toml:"prefix"`
	EnvPrefix  string `toml:"env_prefix"`
}

// DefaultConfig returns the baseline LoadFile overlays onto.
func DefaultConfig() Config {
	return Config{Facility: "user"}
}

// LoadFile reads a TOML logger config, overlaying defined keys onto
// DefaultConfig. Environment overrides still apply later, at New.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load evlog config: %w", err)
	}

	if meta.IsDefined("ident") {
		cfg.Ident = strings.TrimSpace(raw.Ident)
	}
	if meta.IsDefined("to_stderr") {
		cfg.ToStderr = raw.ToStderr
	}
	if meta.IsDefined("to_stdout") {
		cfg.ToStdout = raw.ToStdout
	}
	if meta.IsDefined("to_file") {
		cfg.ToFile = raw.ToFile
	}
	if meta.IsDefined("log_dir") {
		cfg.LogDir = strings.TrimSpace(raw.LogDir)
	}
	if meta.IsDefined("file_suffix") {
		cfg.FileSuffix = strings.TrimSpace(raw.FileSuffix)
	}
	if meta.IsDefined("to_syslog") {
		cfg.ToSyslog = raw.ToSyslog
	}
	if meta.IsDefined("facility") {
		cfg.Facility = strings.TrimSpace(raw.Facility)
	}
	if meta.IsDefined("to_self") {
		cfg.ToSelf = raw.ToSelf
	}
	if meta.IsDefined("muted") {
		cfg.Muted = raw.Muted
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	if meta.IsDefined("no_pid") {
		cfg.NoPID = raw.NoPID
	}
	if meta.IsDefined("prefix") {
		cfg.Prefix = raw.Prefix
	}
	if meta.IsDefined("env_prefix") {
		cfg.EnvPrefix = strings.TrimSpace(raw.EnvPrefix)
	}

	if cfg.Ident == "" {
		return Config{}, fmt.Errorf("load evlog config: %w", ErrNoIdent)
	}
	if _, err := parseFacility(cfg.Facility); err != nil {
		return Config{}, fmt.Errorf("load evlog config: %w", err)
	}
	return cfg, nil
}

// Template returns a starter config with every key present.
func Template() string {
	return configTemplate
}

// WriteTemplate writes the starter config to path, 0600, refusing to
// clobber an existing file unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(configTemplate), 0o600)
}

const configTemplate = `ident = "myapp"

# destinations; stderr is the default when none is enabled
to_stderr = true
to_stdout = false
to_file = false
log_dir = "/var/log/myapp"
file_suffix = ""
to_syslog = false
facility = "user"
to_self = false

# gating
muted = false
debug = false

# line shape
no_pid = false
prefix = ""

# environment override prefix; empty keeps EVLOG_*
env_prefix = ""
`
