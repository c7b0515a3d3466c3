// Package config loads fsdefs settings from fsdefs.toml, FSDEFS_* environment
// variables and built-in defaults.
package config

// Config is the full fsdefs configuration.
type Config struct {
	Output   OutputConfig   `mapstructure:"output" toml:"output"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate"`
	Schema   SchemaConfig   `mapstructure:"schema" toml:"schema"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

// OutputConfig controls where and what is generated.
type OutputConfig struct {
	Dir       string   `mapstructure:"dir" toml:"dir"`
	Languages []string `mapstructure:"languages" toml:"languages"`
	// Namespace is used for schemas without a module name
	Namespace string `mapstructure:"namespace" toml:"namespace"`
}

// GenerateConfig tunes translation.
type GenerateConfig struct {
	// KeepGoing writes best-effort output even when diagnostics were reported
	KeepGoing bool `mapstructure:"keep_going" toml:"keep_going"`
	// FailFast stops at the first diagnostic
	FailFast bool `mapstructure:"fail_fast" toml:"fail_fast"`
}

// SchemaConfig constrains accepted schema documents.
type SchemaConfig struct {
	VersionConstraint string `mapstructure:"version_constraint" toml:"version_constraint"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// LogConfig selects log output.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}
