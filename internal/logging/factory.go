package logging

import (
	"io"
	"strings"
)

// New builds the logger selected by backend ("zap" or "slog", the default).
// The returned flush function must be called before exit.
func New(backend, level string, w io.Writer) (Logger, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "zap":
		z, err := NewProductionZapLogger(level)
		if err != nil {
			return nil, nil, err
		}
		return z, z.Sync, nil
	default:
		return NewTextSlogLogger(w, level), func() error { return nil }, nil
	}
}
