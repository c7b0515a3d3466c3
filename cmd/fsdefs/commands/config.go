package commands

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fsdefs/config"
	"github.com/teranos/fsdefs/errors"
)

// ConfigCmd manages fsdefs.toml
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fsdefs configuration",
	Long: `Display and manage fsdefs configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (FSDEFS_* prefix, e.g. FSDEFS_OUTPUT_DIR)
3. Project config (nearest fsdefs.toml up from the working directory)
4. User config (~/.fsdefs/fsdefs.toml)
5. Default values`,
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default fsdefs.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configuration in effect",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file (the old one is kept as .back1)")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
	}
	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	pterm.Fprintln(stderr(cmd), pterm.Green("✓")+" Wrote "+path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := toml.Marshal(Config())
	if err != nil {
		return errors.Wrap(err, "failed to marshal config to TOML")
	}
	fmt.Fprintf(stdout(cmd), "# fsdefs configuration\n%s", string(data))
	return nil
}
