package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// StdoutDir as --output prints generated files instead of writing them
const StdoutDir = "-"

var (
	generateLang      []string
	generateOutput    string
	generateTypes     []string
	generateKeepGoing bool
	generateFailFast  bool
)

// GenerateCmd translates schema files into target language declarations
var GenerateCmd = &cobra.Command{
	Use:   "generate <schema>...",
	Short: "Generate F#, TypeScript and JSON Schema declarations",
	Long: `Generate target language declarations from schema files.

Each schema file (.yaml, .json or .toml) lists struct and enum declarations
with their fields, doc comments and fs(...) directives. Enums are emitted as
externally tagged unions: a unit variant is its name, any other variant an
object with a single key naming it.

Supported languages: fsharp, typescript, jsonschema (or all).

Examples:
  fsdefs generate protocol.yaml                    # F# into ./generated
  fsdefs generate protocol.yaml --lang all         # every language
  fsdefs generate protocol.yaml -o -               # print to stdout
  fsdefs generate protocol.yaml --type Message     # Message and its dependencies
  fsdefs generate a.yaml b.yaml --keep-going       # write despite diagnostics`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerateCmd,
}

func init() {
	addGenerateFlags(GenerateCmd)
	GenerateCmd.Flags().BoolVar(&generateKeepGoing, "keep-going", false, "Write best-effort output even when diagnostics are reported")
}

// addGenerateFlags registers the flags shared by generate, check and watch
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&generateLang, "lang", "l", nil, "Target languages: fsharp, typescript, jsonschema, all (default from config)")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", `Output directory, "-" for stdout (default from config)`)
	cmd.Flags().StringSliceVarP(&generateTypes, "type", "t", nil, "Root types to generate (default: all)")
	cmd.Flags().BoolVar(&generateFailFast, "fail-fast", false, "Stop at the first diagnostic")
}

// optionsFromFlags merges command flags over the loaded configuration
func optionsFromFlags(cmd *cobra.Command, args []string) (runOptions, error) {
	c := Config()
	flags := cmd.Flags()

	langs := c.Output.Languages
	if flags.Changed("lang") {
		langs = generateLang
	}
	languages, err := parseLanguages(langs)
	if err != nil {
		return runOptions{}, err
	}

	opts := runOptions{
		Schemas:           args,
		Languages:         languages,
		Types:             generateTypes,
		OutputDir:         c.Output.Dir,
		Namespace:         c.Output.Namespace,
		VersionConstraint: c.Schema.VersionConstraint,
		KeepGoing:         c.Generate.KeepGoing,
		FailFast:          c.Generate.FailFast,
		Stdout:            stdout(cmd),
		Stderr:            stderr(cmd),
	}
	if flags.Changed("output") {
		opts.OutputDir = generateOutput
	}
	if opts.OutputDir == StdoutDir {
		opts.OutputDir = ""
	}
	if flags.Lookup("keep-going") != nil && flags.Changed("keep-going") {
		opts.KeepGoing = generateKeepGoing
	}
	if flags.Changed("fail-fast") {
		opts.FailFast = generateFailFast
	}
	return opts, nil
}

func runGenerateCmd(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	files, err := runGenerate(opts)
	if err != nil {
		return err
	}
	if opts.OutputDir != "" {
		pterm.Fprintln(stderr(cmd), pterm.Green("✓")+pterm.Sprintf(" Generated %d file(s) in %s", len(files), opts.OutputDir))
	}
	return nil
}
