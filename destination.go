package evlog

import (
	"io"
	"sync"
)

// Destination is one sink a logger writes accepted lines to. WriteLine
// receives the fully composed line without a trailing newline.
type Destination interface {
	Name() string
	WriteLine(level Level, line string) error
	Close() error
}

// consoleDest writes lines to a stream as-is, one per line.
type consoleDest struct {
	name string

	mu  sync.Mutex
	out io.Writer
}

func newConsoleDest(name string, out io.Writer) *consoleDest {
	return &consoleDest{name: name, out: out}
}

func (d *consoleDest) Name() string { return d.name }

func (d *consoleDest) WriteLine(_ Level, line string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := io.WriteString(d.out, line+"\n")
	return err
}

func (d *consoleDest) Close() error { return nil }
