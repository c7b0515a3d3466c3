package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/fsdefs/errors"
)

// Load reads configuration with precedence (lowest to highest):
// defaults < ~/.fsdefs/fsdefs.toml < nearest project fsdefs.toml < FSDEFS_* env vars.
// An explicit path replaces the file search.
func Load(path string) (*Config, error) {
	v := NewViper()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	} else {
		mergeConfigFiles(v)
	}

	return LoadWithViper(v)
}

// LoadWithViper unmarshals configuration from a prepared Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// NewViper returns a Viper instance with defaults and env binding applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FSDEFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// FindProjectConfig walks up from dir looking for fsdefs.toml.
// Returns "" when none is found.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// UserConfigPath returns ~/.fsdefs/fsdefs.toml, or "" without a home directory
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fsdefs", FileName)
}

func mergeConfigFiles(v *viper.Viper) {
	var paths []string
	if user := UserConfigPath(); user != "" {
		paths = append(paths, user)
	}
	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			paths = append(paths, project)
		}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		tmp := viper.New()
		tmp.SetConfigFile(p)
		tmp.SetConfigType("toml")
		if err := tmp.ReadInConfig(); err != nil {
			continue
		}
		if err := v.MergeConfigMap(tmp.AllSettings()); err != nil {
			continue
		}
	}
}
