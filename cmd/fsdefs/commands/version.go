package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/version"
)

// VersionCmd shows build information
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fsdefs version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		info := version.Get()

		if jsonOutput {
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to format version info")
			}
			fmt.Fprintln(stdout(cmd), string(output))
			return nil
		}
		fmt.Fprintln(stdout(cmd), info.String())
		fmt.Fprintf(stdout(cmd), "Platform: %s\n", info.Platform)
		fmt.Fprintf(stdout(cmd), "Go: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
