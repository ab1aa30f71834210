package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/cli/config"
	"github.com/octronic/dreamtool/internal/project"
)

// Example content for init --example.
var (
	exampleScenes    = []string{"Intro", "Main", "Credits"}
	exampleResources = []string{"Logo", "Theme Music", "Background"}
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var (
		force   bool
		example bool
		name    string
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Dream project",
		Long: `Initialize a new Dream project.

This creates:
  - project.yaml with the project name and empty scene and resource lists
  - dreamtool.yaml configuration file
  - .gitignore excluding the local preferences store

Use --example to seed the project with a few scenes and resources.`,
		Example: `  # Initialize in current directory
  dreamtool init

  # Initialize a named example project in a new directory
  dreamtool init my-dream --name "My Dream" --example

  # Force overwrite existing files
  dreamtool init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(NewCommandContext(cmd), dir, name, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Add example scenes and resources")
	cmd.Flags().StringVar(&name, "name", "", "Project name (default: directory name)")

	return cmd
}

func runInit(cmdCtx *CommandContext, dir, name string, force, example bool) error {
	r := cmdCtx.Renderer

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	projectPath := filepath.Join(dir, config.DefaultProjectFile)
	if _, err := os.Stat(projectPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.DefaultProjectFile)
	}

	if strings.TrimSpace(name) == "" {
		name = projectNameFromDir(dir)
	}
	p := project.New(name)
	if example {
		for _, s := range exampleScenes {
			if _, err := p.AddScene(s); err != nil {
				return err
			}
		}
		for _, res := range exampleResources {
			if _, err := p.AddResource(res); err != nil {
				return err
			}
		}
	}
	if err := p.SaveAs(projectPath); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	written, err := copyTemplates(dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	cmdCtx.Logger.Debug("project initialized", "dir", dir, "name", name, "example", example)

	r.Header(2, "Created")
	r.Println("  " + config.DefaultProjectFile)
	for _, f := range written {
		r.Println("  " + f)
	}
	r.Println("")
	r.Success(fmt.Sprintf("Dream project %q initialized!", name))
	r.Println("")
	r.Println("Next steps:")
	r.Println("  dreamtool tree      Show the project tree")
	r.Println("  dreamtool shell     Edit scenes and resources interactively")
	r.Println("  dreamtool ui        Open the editor in the browser")
	return nil
}

func projectNameFromDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "Untitled"
	}
	base := filepath.Base(abs)
	if base == "." || base == string(filepath.Separator) {
		return "Untitled"
	}
	return base
}
