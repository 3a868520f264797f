package observability

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/evlog/internal/logging"
)

// InitLogger wires the process-wide diagnostics logger for a tool.
// Diagnostics go to stderr so program output stays pipeable.
func InitLogger(app string) zerolog.Logger {
	return initWithProfile(app, logging.RuntimeProfile())
}

func initWithProfile(app string, profile logging.Profile) zerolog.Logger {
	var output io.Writer = os.Stderr
	if !profile.JSON {
		interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		output = zerolog.ConsoleWriter{
			Out:        colorable.NewColorable(os.Stderr),
			TimeFormat: time.RFC3339,
			NoColor:    profile.NoColor || !interactive,
		}
	}
	logger := zerolog.New(output).Level(profile.Level).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
