package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fsdefs/watch"
)

// WatchCmd regenerates output whenever a schema or the config file changes
var WatchCmd = &cobra.Command{
	Use:   "watch <schema>...",
	Short: "Regenerate on schema changes",
	Long: `Generate once, then regenerate whenever a schema file or fsdefs.toml
changes. Diagnostics are printed and the previous output is kept until the
schema translates cleanly again. Stop with Ctrl+C.

Examples:
  fsdefs watch protocol.yaml --lang all`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	addGenerateFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	regenerate := func(changed []string) error {
		if changed != nil {
			reloaded, err := watchOptions(cmd, args)
			if err != nil {
				pterm.Fprintln(stderr(cmd), pterm.Red("✗")+" "+err.Error())
				return err
			}
			opts = reloaded
		}
		files, err := runGenerate(opts)
		if err != nil {
			pterm.Fprintln(stderr(cmd), pterm.Red("✗")+" "+err.Error())
			return err
		}
		pterm.Fprintln(stderr(cmd), pterm.Green("✓")+pterm.Sprintf(" Generated %d file(s)", len(files)))
		return nil
	}
	// an initial failure is reported but does not stop watching
	_ = regenerate(nil)

	files := append([]string(nil), args...)
	if path := configFile(); path != "" {
		files = append(files, path)
	}
	debounce := time.Duration(Config().Watch.DebounceMS) * time.Millisecond
	w, err := watch.New(files, debounce, regenerate)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Fprintln(stderr(cmd), pterm.Sprintf("Watching %d file(s)", len(files)))
	return w.Run(ctx)
}

// watchOptions rereads fsdefs.toml and merges the command flags over it again
func watchOptions(cmd *cobra.Command, args []string) (runOptions, error) {
	if err := reloadConfig(); err != nil {
		return runOptions{}, err
	}
	return optionsFromFlags(cmd, args)
}
