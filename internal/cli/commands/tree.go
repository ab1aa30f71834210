package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/tree"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the project tree",
		Long: `Print the project's scenes and resources as a tree.

Output adapts to environment:
  - Terminal: Styled text
  - Piped/Scripted: Markdown list

Use --output to override: auto, text, markdown, json`,
		Example: `  # Print the tree for ./project.yaml
  dreamtool tree

  # Include identifiers
  dreamtool tree --ids

  # Machine-readable
  dreamtool tree -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd, showIDs)
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show scene and resource identifiers")
	return cmd
}

func runTree(cmd *cobra.Command, showIDs bool) error {
	cmdCtx := NewCommandContext(cmd)
	p, err := cmdCtx.LoadProject()
	if err != nil {
		return err
	}

	root, err := tree.Generate(p.Snapshot(), tree.HandlerFuncs{})
	if err != nil {
		return fmt.Errorf("failed to build tree: %w", err)
	}
	return cmdCtx.Renderer.Tree(root, showIDs)
}
