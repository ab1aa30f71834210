package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/shell"
)

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Edit the project from an interactive prompt",
		Long: `Start a line-based editing session for the project.

Commands are read with history and tab completion. Removing an item or
leaving with unsaved changes asks for confirmation at the prompt.`,
		Example: `  # Edit ./project.yaml
  dreamtool shell

  # Edit another project without keeping history
  dreamtool --project ../demo/project.yaml shell --no-history`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			p, err := cmdCtx.LoadProject()
			if err != nil {
				return err
			}

			historyFile := ""
			if !noHistory {
				historyFile = filepath.Join(filepath.Dir(cmdCtx.Cfg.ProjectPath), ".dreamtool", "shell_history")
				if err := ensureDir(filepath.Dir(historyFile)); err != nil {
					cmdCtx.Logger.Warn("shell history disabled", "error", err)
					historyFile = ""
				}
			}

			rl, err := shell.NewReadline(historyFile)
			if err != nil {
				return err
			}
			defer func() { _ = rl.Close() }()

			sh, err := shell.New(p, rl, cmdCtx.Renderer, cmdCtx.Logger, cmdCtx.CoordinatorOptions()...)
			if err != nil {
				return err
			}
			defer sh.Close()

			return sh.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Don't record command history")
	return cmd
}
