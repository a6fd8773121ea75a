// Package logging configures the diagnostic log file.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Open creates a zerolog logger appending to the given file path. The
// terminal belongs to tcell while the game runs, so diagnostics go to a
// file rather than stderr. The returned func closes the underlying file.
func Open(path string) (zerolog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, f.Close, nil
}
