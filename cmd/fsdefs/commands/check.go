package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/typegen"
)

// CheckCmd checks if generated files are up to date
var CheckCmd = &cobra.Command{
	Use:   "check <schema>...",
	Short: "Check if generated files are up to date",
	Long: `Check if generated files match the current schema files.

This command generates into a temporary directory and compares every file
with the output directory.

Exit codes:
  0 - Files are up to date
  1 - Files are out of date or generation failed

Examples:
  fsdefs check protocol.yaml
  fsdefs check protocol.yaml --lang all -o web/generated`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	addGenerateFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.OutputDir == "" {
		return errors.New("check needs an output directory to compare with")
	}

	result, err := checkGenerated(opts)
	if err != nil {
		return err
	}
	if result.UpToDate {
		pterm.Fprintln(stderr(cmd), pterm.Green("✓")+" Generated files are up to date")
		return nil
	}

	pterm.Fprintln(stderr(cmd), pterm.Red("✗")+" Generated files are out of date:")
	for _, f := range result.Differences {
		pterm.Fprintln(stderr(cmd), "  ~ "+f)
	}
	for _, f := range result.Missing {
		pterm.Fprintln(stderr(cmd), "  + "+f)
	}
	return result.Err()
}

// checkGenerated generates into a temporary directory and compares it with
// opts.OutputDir.
func checkGenerated(opts runOptions) (*typegen.CheckResult, error) {
	tempDir, err := os.MkdirTemp("", "fsdefs-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	existing := opts.OutputDir
	opts.OutputDir = tempDir
	if _, err := runGenerate(opts); err != nil {
		return nil, err
	}

	result, err := typegen.CompareDirectories(tempDir, existing)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compare directories")
	}
	return result, nil
}
