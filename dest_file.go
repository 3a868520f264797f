package evlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileDest appends timestamped lines to <dir>/<base>. The file opens
// lazily on first write so an unused destination never touches disk.
type fileDest struct {
	dir  string
	base string

	mu sync.Mutex
	f  *os.File
}

func newFileDest(dir, base string) *fileDest {
	return &fileDest{dir: dir, base: base}
}

func (d *fileDest) Name() string { return "file" }

func (d *fileDest) path() string { return filepath.Join(d.dir, d.base) }

func (d *fileDest) WriteLine(_ Level, line string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		if err := os.MkdirAll(d.dir, 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(d.path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		d.f = f
	}
	_, err := fmt.Fprintf(d.f, "[%s] %s\n", time.Now().Format(time.RFC3339), line)
	return err
}

func (d *fileDest) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
