package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/cli/output"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display dreamtool version and build information.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(info)
			}
			r.Printf("dreamtool v%s\n", info.Version)
			r.Println("Project editor for Dream")
			r.Println(r.Muted("commit " + info.Commit + ", built " + info.BuildDate + ", " + info.GoVersion))
			return nil
		},
	}
}
