package application

import "log/slog"

// ResolveLogger returns a usable logger even when wiring left the field nil.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
