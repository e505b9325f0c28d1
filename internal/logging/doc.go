// Package logging assembles the structured slog loggers used across tamer.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers plus shared field-name constants so
// every component emits log lines with the same shape. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
