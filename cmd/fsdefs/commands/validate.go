package commands

import (
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/typegen/jsonschema"
)

var validateType string

// ValidateCmd checks JSON payloads against the wire encoding of a schema type
var ValidateCmd = &cobra.Command{
	Use:   "validate <schema> <payload.json>...",
	Short: "Validate JSON payloads against a schema type",
	Long: `Validate JSON payloads against the externally tagged wire encoding of
a schema type. Pass "-" to read a payload from stdin.

Examples:
  fsdefs validate protocol.yaml --type FrontendMessage msg.json
  echo '"Idle"' | fsdefs validate protocol.yaml -t FrontendMessage -`,
	Args: cobra.MinimumNArgs(2),
	RunE: runValidate,
}

func init() {
	ValidateCmd.Flags().StringVarP(&validateType, "type", "t", "", "Type the payloads must match")
	_ = ValidateCmd.MarkFlagRequired("type")
}

func runValidate(cmd *cobra.Command, args []string) error {
	c := Config()
	results, err := translate(runOptions{
		Schemas:           args[:1],
		Types:             []string{validateType},
		Namespace:         c.Output.Namespace,
		VersionConstraint: c.Schema.VersionConstraint,
		Stdout:            stdout(cmd),
		Stderr:            stderr(cmd),
	})
	if err != nil {
		return err
	}
	doc := jsonschema.Document(results[0].Result)

	failed := 0
	for _, path := range args[1:] {
		payload, err := readPayload(cmd, path)
		if err != nil {
			return err
		}
		if err := jsonschema.Validate(doc, validateType, payload); err != nil {
			if !errors.Is(err, errors.ErrInvalidPayload) {
				return errors.Wrap(err, path)
			}
			failed++
			pterm.Fprintln(stderr(cmd), pterm.Red("✗")+" "+path)
			for _, d := range errors.GetAllDetails(err) {
				pterm.Fprintln(stderr(cmd), "    "+d)
			}
			continue
		}
		pterm.Fprintln(stderr(cmd), pterm.Green("✓")+" "+path)
	}

	if failed > 0 {
		return errors.Wrapf(errors.ErrInvalidPayload, "%d of %d payload(s) rejected", failed, len(args)-1)
	}
	return nil
}

func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}
