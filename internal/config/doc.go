// Package config loads jobdeck settings from ~/.config/jobdeck/config.toml,
// with environment overrides and sensible defaults when the file is absent.
package config
