// Package config loads, normalizes, and validates audioprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AUDIOPREP_LOG_LEVEL. The Config type centralizes the knobs the CLI needs:
// where run bookkeeping and logs live, the default dataset filter, batch
// loader settings, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
