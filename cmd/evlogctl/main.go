package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/evlog"
	"github.com/danmuck/evlog/internal/observability"
	"github.com/danmuck/evlog/logfmt"
)

type options struct {
	mode    string
	in      string
	out     string
	match   string
	noColor bool
	force   bool
}

const (
	colorKey   = "\x1b[36m"
	colorAlert = "\x1b[31m"
	colorReset = "\x1b[0m"
)

func main() {
	opts := parseFlags()
	observability.InitLogger("evlogctl")

	switch opts.mode {
	case "pretty":
		err := withInput(opts.in, func(r io.Reader) error {
			w, color := outputWriter(opts.noColor)
			return runPretty(r, w, color)
		})
		if err != nil {
			fatalf("pretty: %v", err)
		}
	case "json":
		err := withInput(opts.in, func(r io.Reader) error {
			return runJSON(r, os.Stdout)
		})
		if err != nil {
			fatalf("json: %v", err)
		}
	case "filter":
		key, value, err := parseMatch(opts.match)
		if err != nil {
			usagef("%v", err)
		}
		err = withInput(opts.in, func(r io.Reader) error {
			return runFilter(r, os.Stdout, key, value)
		})
		if err != nil {
			fatalf("filter: %v", err)
		}
	case "check":
		findings := 0
		err := withInput(opts.in, func(r io.Reader) error {
			n, err := runCheck(r, log.Logger)
			findings = n
			return err
		})
		if err != nil {
			fatalf("check: %v", err)
		}
		if findings > 0 {
			os.Exit(1)
		}
	case "init":
		path := strings.TrimSpace(opts.out)
		if path == "" {
			path = "evlog.toml"
		}
		if err := evlog.WriteTemplate(path, opts.force); err != nil {
			fatalf("init: %v", err)
		}
		log.Info().Str("path", path).Msg("wrote config template")
	default:
		usagef("unknown mode %q (supported: pretty, json, filter, check, init)", opts.mode)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.mode, "mode", "pretty", "mode: pretty | json | filter | check | init")
	flag.StringVar(&opts.in, "in", "", "input file; empty or - reads stdin")
	flag.StringVar(&opts.out, "out", "", "output path (init mode)")
	flag.StringVar(&opts.match, "match", "", "key=value pair to keep (filter mode)")
	flag.BoolVar(&opts.noColor, "no-color", false, "disable color in pretty mode")
	flag.BoolVar(&opts.force, "force", false, "overwrite an existing file (init mode)")
	flag.Parse()
	return opts
}

func withInput(path string, fn func(io.Reader) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

func outputWriter(noColor bool) (io.Writer, bool) {
	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if noColor || !interactive {
		return os.Stdout, false
	}
	return colorable.NewColorableStdout(), true
}

// runPretty renders each record one pair per line with keys padded to
// the record's widest key. Records are separated by a blank line.
func runPretty(r io.Reader, w io.Writer, color bool) error {
	sc := newLineScanner(r)
	first := true
	for sc.Scan() {
		entries := logfmt.Parse(sc.Text())
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		width := 0
		for _, e := range entries {
			if len(e.Key) > width {
				width = len(e.Key)
			}
		}
		for _, e := range entries {
			pad := strings.Repeat(" ", width-len(e.Key))
			key := e.Key
			if color {
				c := colorKey
				if key == logfmt.JunkKey || key == logfmt.AbortedKey {
					c = colorAlert
				}
				key = c + key + colorReset
			}
			fmt.Fprintf(w, "%s%s = %s\n", key, pad, e.Value)
		}
	}
	return sc.Err()
}

// runJSON emits one JSON object per input line, last write winning on
// duplicate keys.
func runJSON(r io.Reader, w io.Writer) error {
	sc := newLineScanner(r)
	for sc.Scan() {
		b, err := json.Marshal(logfmt.ParseMap(sc.Text()))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
	}
	return sc.Err()
}

// runFilter passes through lines whose hash view maps key to value.
func runFilter(r io.Reader, w io.Writer, key, value string) error {
	sc := newLineScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if m := logfmt.ParseMap(line); m[key] == value {
			fmt.Fprintln(w, line)
		}
	}
	return sc.Err()
}

// runCheck reports every junk or aborted segment and returns how many
// it saw. Findings go to the diagnostics logger, not stdout.
func runCheck(r io.Reader, logger zerolog.Logger) (int, error) {
	sc := newLineScanner(r)
	lines := 0
	findings := 0
	for sc.Scan() {
		lines++
		for _, e := range logfmt.Parse(sc.Text()) {
			if e.Key == logfmt.JunkKey || e.Key == logfmt.AbortedKey {
				findings++
				logger.Warn().Int("line", lines).Str("segment", e.Value).Msg("unparseable input")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return findings, err
	}
	logger.Info().Int("lines", lines).Int("findings", findings).Msg("check complete")
	return findings, nil
}

func parseMatch(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("filter mode needs -match key=value, got %q", raw)
	}
	return key, value, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	return sc
}

func fatalf(format string, args ...any) {
	log.Fatal().Msgf(format, args...)
}

func usagef(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "evlogctl: "+format+"\n", args...)
	flag.Usage()
	os.Exit(2)
}
