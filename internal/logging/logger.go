// Package logging provides the per-run debug log.
//
// Each pipeline run writes JSON-formatted records to log.txt inside the
// output directory, independent of the user-facing status reporter. The log
// survives a failed run so the offending step and its tool output can be
// inspected afterwards.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// New returns a logger writing JSON records to <dir>/log.txt at the given
// level, plus a closer for the underlying file. An empty dir logs to stderr.
func New(dir, level string) (*slog.Logger, io.Closer, error) {
	var writer io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, errors.Wrapf(err, "unable to create log directory %s", dir)
		}
		file, err := os.OpenFile(filepath.Join(dir, "log.txt"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to open log file")
		}
		writer = file
		closer = file
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})

	return slog.New(handler), closer, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
