// Package logging builds the slog loggers used across transcheck.
//
// Two output formats are supported: a human-oriented pretty format for
// terminal use and JSON for machine consumption. Loggers carry a component
// attribute so every record names the subsystem that emitted it.
package logging
