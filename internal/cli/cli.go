// Package cli implements the quill command-line interface.
//
// Commands:
//   - run: open a window and animate the demo scene
//   - inspect: print the demo scene's node tree
//   - graph: export the node tree as Graphviz DOT or SVG
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// to commands through their context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// Execute runs the quill CLI with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "quill",
		Short:        "quill draws retained-mode scene graphs",
		Long:         `quill is a small retained-mode drawing layer on Ebitengine. The CLI runs and inspects its demo scene.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newGraphCmd())
	return root
}
