package evlog

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/danmuck/evlog/logfmt"
)

// ErrNoIdent rejects logger construction without an identity string.
var ErrNoIdent = errors.New("evlog: ident required")

// Config selects destinations and initial gating for New. When none of
// the To* fields is set, lines go to stderr.
type Config struct {
	// Ident names the program: the syslog tag and the log file stem.
	Ident string

	ToStderr   bool
	ToStdout   bool
	ToFile     bool
	LogDir     string // file destination directory; temp dir when empty
	FileSuffix string // inserted between Ident and ".log"
	ToSyslog   bool
	Facility   string // syslog facility name; "user" when empty
	ToSelf     bool   // in-memory capture, readable via Events

	Muted  bool
	Debug  bool
	NoPID  bool   // drop the "[<pid>] " marker from lines
	Prefix string

	// EnvPrefix substitutes the EVLOG_ prefix when checking environment
	// overrides, e.g. "MYAPP" consults MYAPP_DEBUG first.
	EnvPrefix string

	// FailureFunc receives destination write errors. Nil panics.
	FailureFunc func(error)
}

// Logger writes lines to a shared set of destinations. Loggers derived
// via Proxy or With delegate gating up a live parent chain: muting or
// debugging an ancestor is immediately visible to every descendant.
type Logger struct {
	root   *dispatcher
	parent *Logger

	mu     sync.RWMutex
	prefix string
	debug  bool
	muted  bool
	bound  []logfmt.Pair
}

// dispatcher carries the state all loggers in one family share.
type dispatcher struct {
	ident   string
	pid     string // precomposed "[<pid>] " marker, empty when disabled
	failure func(error)
	exit    func(int)

	mu     sync.RWMutex
	dests  []Destination
	mem    *memoryDest
	closed bool
}

// New builds a root logger. Environment overrides apply before
// destinations open; file and syslog destinations open lazily on first
// write.
func New(cfg Config) (*Logger, error) {
	applyEnvOverrides(&cfg)

	if strings.TrimSpace(cfg.Ident) == "" {
		return nil, ErrNoIdent
	}
	if !cfg.ToStderr && !cfg.ToStdout && !cfg.ToFile && !cfg.ToSyslog && !cfg.ToSelf {
		cfg.ToStderr = true
	}

	d := &dispatcher{
		ident:   cfg.Ident,
		failure: cfg.FailureFunc,
		exit:    os.Exit,
	}
	if d.failure == nil {
		d.failure = func(err error) { panic(err) }
	}
	if !cfg.NoPID {
		d.pid = "[" + strconv.Itoa(os.Getpid()) + "] "
	}

	if cfg.ToStderr {
		d.dests = append(d.dests, newConsoleDest("stderr", os.Stderr))
	}
	if cfg.ToStdout {
		d.dests = append(d.dests, newConsoleDest("stdout", os.Stdout))
	}
	if cfg.ToFile {
		dir := strings.TrimSpace(cfg.LogDir)
		if dir == "" {
			dir = os.TempDir()
		}
		d.dests = append(d.dests, newFileDest(dir, cfg.Ident+cfg.FileSuffix+".log"))
	}
	if cfg.ToSyslog {
		facility, err := parseFacility(cfg.Facility)
		if err != nil {
			return nil, err
		}
		d.dests = append(d.dests, newSyslogDest(cfg.Ident, facility))
	}
	if cfg.ToSelf {
		mem := &memoryDest{}
		d.mem = mem
		d.dests = append(d.dests, mem)
	}

	return &Logger{
		root:   d,
		prefix: cfg.Prefix,
		debug:  cfg.Debug,
		muted:  cfg.Muted,
	}, nil
}

// NewTester builds a capture-only logger for tests: memory destination,
// no pid marker, environment ignored.
func NewTester(ident string) *Logger {
	if strings.TrimSpace(ident) == "" {
		ident = "tester"
	}
	mem := &memoryDest{}
	d := &dispatcher{
		ident:   ident,
		failure: func(err error) { panic(err) },
		exit:    os.Exit,
		mem:     mem,
		dests:   []Destination{mem},
	}
	return &Logger{root: d}
}

// Ident returns the identity the logger family was built with.
func (l *Logger) Ident() string { return l.root.ident }

// Log joins args with spaces and writes one info line per physical
// line. Muted loggers drop it.
func (l *Logger) Log(args ...any) {
	if l.effectiveMuted() {
		return
	}
	l.write(LevelInfo, sprintArgs(args))
}

// Logf is Log with a format string.
func (l *Logger) Logf(format string, args ...any) {
	if l.effectiveMuted() {
		return
	}
	l.write(LevelInfo, fmt.Sprintf(format, args...))
}

// Debug writes like Log, but only when debug is in effect somewhere on
// the delegation chain.
func (l *Logger) Debug(args ...any) {
	if !l.effectiveDebug() || l.effectiveMuted() {
		return
	}
	l.write(LevelDebug, sprintArgs(args))
}

// Debugf is Debug with a format string.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.effectiveDebug() || l.effectiveMuted() {
		return
	}
	l.write(LevelDebug, fmt.Sprintf(format, args...))
}

// Fatal writes at the error level even when muted, then exits the
// process with status 1.
func (l *Logger) Fatal(args ...any) {
	l.write(LevelError, sprintArgs(args))
	l.root.exit(1)
}

// Fatalf is Fatal with a format string.
func (l *Logger) Fatalf(format string, args ...any) {
	l.write(LevelError, fmt.Sprintf(format, args...))
	l.root.exit(1)
}

// Event encodes event=<etype>, the chain's bound pairs, then pairs, as
// one logfmt line. Prefixes do not apply to event lines; the pid marker
// does.
func (l *Logger) Event(etype string, pairs ...logfmt.Pair) {
	if l.effectiveMuted() {
		return
	}
	l.writeEvent(LevelInfo, etype, pairs)
}

// DebugEvent is Event gated like Debug.
func (l *Logger) DebugEvent(etype string, pairs ...logfmt.Pair) {
	if !l.effectiveDebug() || l.effectiveMuted() {
		return
	}
	l.writeEvent(LevelDebug, etype, pairs)
}

// With derives a logger carrying extra bound pairs for its events.
// Destinations and gating delegate to the receiver.
func (l *Logger) With(pairs ...logfmt.Pair) *Logger {
	return &Logger{root: l.root, parent: l, bound: pairs}
}

// Events returns the lines captured by the family's memory destination,
// nil when none is configured.
func (l *Logger) Events() []CapturedLine {
	if l.root.mem == nil {
		return nil
	}
	return l.root.mem.Events()
}

// ClearEvents drops everything the memory destination captured.
func (l *Logger) ClearEvents() {
	if l.root.mem != nil {
		l.root.mem.Reset()
	}
}

// Close closes every destination once. First error wins.
func (l *Logger) Close() error {
	d := l.root
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	var firstErr error
	for _, dest := range d.dests {
		if err := dest.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (l *Logger) write(level Level, msg string) {
	msg = strings.TrimRight(msg, "\n")
	for _, line := range strings.Split(msg, "\n") {
		l.root.dispatch(level, l.composePrefix(line))
	}
}

func (l *Logger) writeEvent(level Level, etype string, pairs []logfmt.Pair) {
	all := make([]logfmt.Pair, 0, 1+len(pairs))
	all = append(all, logfmt.KV("event", etype))
	all = append(all, l.boundPairs()...)
	all = append(all, pairs...)
	l.root.dispatch(level, logfmt.Encode(all))
}

// composePrefix applies each hop's prefix as the line passes up the
// chain, leaving the outermost ancestor's prefix leftmost.
func (l *Logger) composePrefix(line string) string {
	for cur := l; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		p := cur.prefix
		cur.mu.RUnlock()
		if p != "" {
			line = p + line
		}
	}
	return line
}

// boundPairs collects bound pairs root-first so a descendant's pairs
// land after (and on parse, override) its ancestors'.
func (l *Logger) boundPairs() []logfmt.Pair {
	var chain []*Logger
	for cur := l; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	var out []logfmt.Pair
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].mu.RLock()
		out = append(out, chain[i].bound...)
		chain[i].mu.RUnlock()
	}
	return out
}

func (d *dispatcher) dispatch(level Level, line string) {
	line = d.pid + line
	d.mu.RLock()
	dests := d.dests
	d.mu.RUnlock()
	for _, dest := range dests {
		if err := dest.WriteLine(level, line); err != nil {
			d.failure(fmt.Errorf("evlog: write %s: %w", dest.Name(), err))
		}
	}
}

func sprintArgs(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
