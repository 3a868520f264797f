package evlog

import "testing"

func TestEnvDebugEnables(t *testing.T) {
	t.Setenv(EnvDebug, "1")
	l, err := New(Config{Ident: "app", ToSelf: true, NoPID: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	if !l.IsDebug() {
		t.Fatalf("expected EVLOG_DEBUG=1 to enable debug")
	}
}

func TestEnvDebugForcesOff(t *testing.T) {
	t.Setenv(EnvDebug, "0")
	l, err := New(Config{Ident: "app", ToSelf: true, NoPID: true, Debug: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	if l.IsDebug() {
		t.Fatalf("expected EVLOG_DEBUG=0 to override the config")
	}
}

func TestEnvQuietMutes(t *testing.T) {
	t.Setenv(EnvQuiet, "true")
	l, err := New(Config{Ident: "app", ToSelf: true, NoPID: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	if !l.IsMuted() {
		t.Fatalf("expected EVLOG_QUIET to mute")
	}
	l.Log("dropped")
	if len(l.Events()) != 0 {
		t.Fatalf("expected muted logger to drop lines")
	}
}

func TestEnvPrefixWins(t *testing.T) {
	t.Setenv("MYAPP_DEBUG", "1")
	t.Setenv(EnvDebug, "0")
	l, err := New(Config{Ident: "app", ToSelf: true, NoPID: true, EnvPrefix: "MYAPP"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	if !l.IsDebug() {
		t.Fatalf("expected MYAPP_DEBUG to win over EVLOG_DEBUG")
	}
}

func TestEnvPrefixFallsBack(t *testing.T) {
	t.Setenv("MYAPP_DEBUG", "")
	t.Setenv(EnvDebug, "1")
	l, err := New(Config{Ident: "app", ToSelf: true, NoPID: true, EnvPrefix: "MYAPP"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	if !l.IsDebug() {
		t.Fatalf("expected fallback to EVLOG_DEBUG when the prefixed variable is unset")
	}
}

func TestEnvPathRedirectsLogDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPath, dir)
	l, err := New(Config{Ident: "app", ToFile: true, ToSelf: true, NoPID: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	fd := findFileDest(t, l)
	if fd.dir != dir {
		t.Fatalf("expected log dir %q, got %q", dir, fd.dir)
	}
}

func TestEnvNoFileDropsFileDest(t *testing.T) {
	t.Setenv(EnvNoFile, "1")
	l, err := New(Config{Ident: "app", ToFile: true, ToSelf: true, NoPID: true, LogDir: t.TempDir()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	for _, name := range destNames(l) {
		if name == "file" {
			t.Fatalf("expected EVLOG_NOFILE to drop the file destination")
		}
	}
}

func TestEnvNoSyslogDropsSyslogDest(t *testing.T) {
	t.Setenv(EnvNoSyslog, "true")
	l, err := New(Config{Ident: "app", ToSyslog: true, ToSelf: true, NoPID: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	for _, name := range destNames(l) {
		if name == "syslog" {
			t.Fatalf("expected EVLOG_NOSYSLOG to drop the syslog destination")
		}
	}
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
		ok   bool
	}{
		{"1", true, true},
		{"true", true, true},
		{"TRUE", true, true},
		{" true ", true, true},
		{"0", false, true},
		{"false", false, true},
		{"", false, false},
		{"yes", false, false},
		{"garbage", false, false},
	}
	for _, tc := range cases {
		got, ok := parseBool(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseBool(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func findFileDest(t *testing.T, l *Logger) *fileDest {
	t.Helper()
	for _, d := range l.root.dests {
		if fd, ok := d.(*fileDest); ok {
			return fd
		}
	}
	t.Fatalf("no file destination configured")
	return nil
}
