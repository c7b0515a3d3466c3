// Package commands implements the fsdefs subcommands.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/fsdefs/config"
	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/logger"
)

var (
	// ConfigPath is the --config flag; empty searches the default locations
	ConfigPath string
	// JSONLog is the --json-log flag
	JSONLog bool

	cfg *config.Config
)

// Setup loads configuration and initializes logging. It runs before every command.
func Setup(cmd *cobra.Command) error {
	if err := reloadConfig(); err != nil {
		return err
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	if err := logger.Initialize(JSONLog || cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// reloadConfig reads the configuration again from ConfigPath or the nearest fsdefs.toml
func reloadConfig() error {
	loaded, err := config.Load(ConfigPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// Config returns the loaded configuration, or defaults before Setup ran.
func Config() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// configFile returns the config file in effect, for watching
func configFile() string {
	if ConfigPath != "" {
		return ConfigPath
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return config.FindProjectConfig(wd)
}

func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func stderr(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
