// Package config loads, normalizes, and validates transcheck configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates transcriber credentials and
// language tags. Obtain settings through this package so downstream code
// receives sanitized paths and clear validation errors; API keys belong in
// the config file, never in code.
package config
