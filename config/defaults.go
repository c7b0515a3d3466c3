package config

import "github.com/spf13/viper"

const (
	// FileName is the project configuration file looked up by Load
	FileName = "fsdefs.toml"

	// DefaultVersionConstraint accepts every 1.x schema document
	DefaultVersionConstraint = ">= 1.0.0, < 2.0.0"

	DefaultNamespace = "Generated"
	DefaultOutputDir = "generated"

	// DefaultDirPermissions is used for ~/.fsdefs and output directories
	DefaultDirPermissions = 0750
	// DefaultFilePermissions is used for generated files and config writes
	DefaultFilePermissions = 0644
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.languages", []string{"fsharp"})
	v.SetDefault("output.namespace", DefaultNamespace)

	v.SetDefault("generate.keep_going", false)
	v.SetDefault("generate.fail_fast", false)

	v.SetDefault("schema.version_constraint", DefaultVersionConstraint)

	v.SetDefault("watch.debounce_ms", 300)

	v.SetDefault("log.json", false)
}

// Default returns the configuration produced by SetDefaults alone.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:       DefaultOutputDir,
			Languages: []string{"fsharp"},
			Namespace: DefaultNamespace,
		},
		Schema: SchemaConfig{VersionConstraint: DefaultVersionConstraint},
		Watch:  WatchConfig{DebounceMS: 300},
	}
}
