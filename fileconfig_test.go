package evlog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
ident = "edge"
to_file = true
log_dir = "/tmp/edge-logs"
debug = true
prefix = "edge: "
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Ident != "edge" {
		t.Fatalf("unexpected ident: %q", cfg.Ident)
	}
	if !cfg.ToFile || cfg.LogDir != "/tmp/edge-logs" {
		t.Fatalf("unexpected file settings: %+v", cfg)
	}
	if !cfg.Debug || cfg.Muted {
		t.Fatalf("unexpected gating: %+v", cfg)
	}
	if cfg.Prefix != "edge: " {
		t.Fatalf("unexpected prefix: %q", cfg.Prefix)
	}
	if cfg.Facility != "user" {
		t.Fatalf("expected default facility, got %q", cfg.Facility)
	}
}

func TestLoadFileUndefinedKeysKeepDefaults(t *testing.T) {
	path := writeConfig(t, `ident = "edge"`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Ident != "edge" || cfg.Facility != "user" {
		t.Fatalf("expected defaults to survive: %+v", cfg)
	}
	if cfg.ToStderr || cfg.ToStdout || cfg.ToFile || cfg.ToSyslog || cfg.ToSelf {
		t.Fatalf("expected no destinations from an empty overlay: %+v", cfg)
	}
	if cfg.Muted || cfg.Debug || cfg.NoPID {
		t.Fatalf("expected gating defaults: %+v", cfg)
	}
}

func TestLoadFileTrimsStrings(t *testing.T) {
	path := writeConfig(t, `
ident = "  edge  "
facility = " daemon "
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Ident != "edge" || cfg.Facility != "daemon" {
		t.Fatalf("expected trimmed strings, got %+v", cfg)
	}
}

func TestLoadFileRequiresIdent(t *testing.T) {
	path := writeConfig(t, `to_stderr = true`)
	if _, err := LoadFile(path); !errors.Is(err, ErrNoIdent) {
		t.Fatalf("expected ErrNoIdent, got %v", err)
	}
}

func TestLoadFileRejectsUnknownFacility(t *testing.T) {
	path := writeConfig(t, `
ident = "edge"
facility = "postmaster"
`)
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected facility error")
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "load evlog config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteTemplateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("template should load cleanly: %v", err)
	}
	if cfg.Ident != "myapp" || !cfg.ToStderr {
		t.Fatalf("unexpected template config: %+v", cfg)
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
}

func TestTemplateMatchesWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if string(raw) != Template() {
		t.Fatalf("written template differs from Template()")
	}
}
