package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/fsdefs/cmd/fsdefs/commands"
	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/logger"
)

var rootCmd = &cobra.Command{
	Use:   "fsdefs",
	Short: "Translate struct and enum schemas into F# declarations",
	Long: `fsdefs - struct and enum schemas to F#, TypeScript and JSON Schema.

Declarations are read from schema files and emitted as F# records and
discriminated unions whose wire encoding (externally tagged enums) matches
the source types.

Available commands:
  generate - Generate declarations
  check    - Check if generated files are up to date
  watch    - Regenerate on schema changes
  validate - Validate JSON payloads against a schema type
  config   - Manage fsdefs.toml
  version  - Show version information

Examples:
  fsdefs generate protocol.yaml
  fsdefs generate protocol.yaml --lang all -o web/generated
  fsdefs check protocol.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.Setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVar(&commands.JSONLog, "json-log", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&commands.ConfigPath, "config", "", "Config file (default: nearest fsdefs.toml)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
