package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/quill"
	qinspect "github.com/phanxgames/quill/inspect"
	"github.com/phanxgames/quill/internal/demo"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

type graphOpts struct {
	format   string
	output   string
	detailed bool
}

func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the demo scene's node tree as DOT or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include props in node labels")
	return cmd
}

func runGraph(cmd *cobra.Command, opts graphOpts) error {
	if opts.format != formatDOT && opts.format != formatSVG {
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatDOT, formatSVG)
	}
	logger := loggerFromContext(cmd.Context())

	scene := quill.NewScene()
	defer scene.Dispose()
	if _, err := demo.Build(scene, demo.Options{}); err != nil {
		return err
	}
	dot := qinspect.ToDOT(qinspect.Describe(scene.Root()), qinspect.Options{Detailed: opts.detailed})

	data := []byte(dot)
	if opts.format == formatSVG {
		prog := newProgress(logger)
		svg, err := qinspect.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
		prog.done("Rendered SVG")
		data = svg
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(cmd.OutOrStdout(), "Wrote %s graph", opts.format)
	printFile(cmd.OutOrStdout(), opts.output)
	return nil
}
