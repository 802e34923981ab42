// Package logging assembles structured slog loggers used across audioprep.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes component loggers so each package tags its lines the
// same way. A no-op logger is provided for tests and wiring code that cannot
// fail. The progress sampler keeps per-record loops from flooding the log.
package logging
