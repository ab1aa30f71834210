package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/cli/output"
	"github.com/octronic/dreamtool/internal/project"
)

// ListItem is one row of the list command.
type ListItem struct {
	Kind       string `json:"kind"`
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Identifier string `json:"id"`
}

// ListOutput is the JSON output for the list command.
type ListOutput struct {
	Project   string     `json:"project"`
	Items     []ListItem `json:"items"`
	Scenes    int        `json:"scenes"`
	Resources int        `json:"resources"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [scenes|resources]",
		Short: "List scenes and resources",
		Long: `List the project's scenes and resources with their identifiers.

Output adapts to environment:
  - Terminal: Table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List everything
  dreamtool list

  # List only resources as JSON
  dreamtool list resources -o json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"scenes", "resources"},
		RunE:      runList,
	}
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
		if filter != "scenes" && filter != "resources" {
			return fmt.Errorf("unknown list target %q (want scenes or resources)", filter)
		}
	}

	cmdCtx := NewCommandContext(cmd)
	p, err := cmdCtx.LoadProject()
	if err != nil {
		return err
	}

	out := buildListOutput(p.Snapshot(), filter)
	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return renderListTable(r, out, true)
	default:
		return renderListTable(r, out, false)
	}
}

func buildListOutput(snap project.Snapshot, filter string) ListOutput {
	out := ListOutput{
		Project:   snap.Name,
		Items:     []ListItem{},
		Scenes:    len(snap.Scenes),
		Resources: len(snap.Resources),
	}
	appendItems := func(kind string, items []project.Item) {
		for i, it := range items {
			out.Items = append(out.Items, ListItem{Kind: kind, Position: i + 1, Name: it.Name, Identifier: it.Identifier})
		}
	}
	if filter != "resources" {
		appendItems("scene", snap.Scenes)
	}
	if filter != "scenes" {
		appendItems("resource", snap.Resources)
	}
	return out
}

func renderListTable(r *output.Renderer, out ListOutput, markdown bool) error {
	r.Header(1, fmt.Sprintf("%s (%d scenes, %d resources)", out.Project, out.Scenes, out.Resources))
	if len(out.Items) == 0 {
		r.Println("(0 items)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "#", "Name", "ID"})
	for _, it := range out.Items {
		t.AppendRow(table.Row{it.Kind, it.Position, it.Name, it.Identifier})
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}
