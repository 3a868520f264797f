package evlog

import "sync"

// CapturedLine is one line a memory destination received.
type CapturedLine struct {
	Level Level
	Line  string
}

// memoryDest accumulates lines in memory until Reset. The tester
// destination: never fails, never touches the disk.
type memoryDest struct {
	mu    sync.Mutex
	lines []CapturedLine
}

func (d *memoryDest) Name() string { return "self" }

func (d *memoryDest) WriteLine(level Level, line string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, CapturedLine{Level: level, Line: line})
	return nil
}

func (d *memoryDest) Close() error { return nil }

// Events returns a copy of everything captured since the last Reset.
func (d *memoryDest) Events() []CapturedLine {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]CapturedLine, len(d.lines))
	copy(out, d.lines)
	return out
}

func (d *memoryDest) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = nil
}
