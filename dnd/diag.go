package dnd

import (
	"log/slog"
)

// Best-effort protocol operation that failed. The failure was not
// retried.
type Diagnostic struct {
	Op     string // ex: "xdnd enter", "selection notify"
	Window uint32 // target window, zero if not applicable
	Err    error
}

type DiagnosticsSink func(Diagnostic)

// Sink that logs each diagnostic as a warning.
func LogDiagnostics(logger *slog.Logger) DiagnosticsSink {
	if logger == nil {
		logger = slog.Default()
	}
	return func(d Diagnostic) {
		logger.Warn("dnd: best-effort operation failed",
			"op", d.Op,
			"window", d.Window,
			"err", d.Err)
	}
}
