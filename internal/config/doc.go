// Package config loads, normalizes, and validates framekey settings.
//
// Settings come from a TOML file resolved from an explicit --config
// path, ~/.config/framekey/config.toml, or a framekey.toml in the
// working directory, in that order. Omitted values fall back to
// repository defaults and all path fields are tilde-expanded to
// absolute paths before any other package sees them.
package config
