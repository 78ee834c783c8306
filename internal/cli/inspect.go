package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/phanxgames/quill"
	qinspect "github.com/phanxgames/quill/inspect"
	"github.com/phanxgames/quill/internal/demo"
)

func newInspectCmd() *cobra.Command {
	var showProps bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the demo scene's node tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scene := quill.NewScene()
			defer scene.Dispose()
			if _, err := demo.Build(scene, demo.Options{}); err != nil {
				return err
			}
			entry := qinspect.Describe(scene.Root())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render("Scene"))
			fmt.Fprintln(out, renderTree(entry, showProps).String())
			printKeyValue(out, "nodes", fmt.Sprint(entry.Count()))
			printKeyValue(out, "tracked", fmt.Sprint(scene.Registry().Len()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showProps, "props", "p", false, "show each node's props")
	return cmd
}

// renderTree converts a descriptor tree to a lipgloss tree.
func renderTree(e qinspect.Entry, showProps bool) *tree.Tree {
	t := tree.Root(entryLabel(e, showProps)).EnumeratorStyle(styleDim)
	for _, c := range e.Children {
		if len(c.Children) == 0 {
			t.Child(entryLabel(c, showProps))
			continue
		}
		t.Child(renderTree(c, showProps))
	}
	return t
}

func entryLabel(e qinspect.Entry, showProps bool) string {
	label := styleType.Render(e.DrawingType) + styleID.Render(fmt.Sprintf("#%d", e.ID))
	if showProps {
		if props := qinspect.FormatProps(e.Props); props != "" {
			label += " " + styleDim.Render(props)
		}
	}
	return label
}
