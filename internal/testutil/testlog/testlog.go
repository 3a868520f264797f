package testlog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/evlog/internal/logging"
)

// New returns a diagnostics logger that captures into the returned
// buffer, using the test profile instead of the process environment.
func New(t *testing.T) (zerolog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	profile := logging.TestProfile()
	logger := zerolog.New(&buf).Level(profile.Level).With().Str("test", t.Name()).Logger()
	return logger, &buf
}
