package utils

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide logger. "json" is used in deployed
// environments, "text" locally.
func NewLogger(format string) *slog.Logger {
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
}
