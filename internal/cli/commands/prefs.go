package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/cli/output"
	"github.com/octronic/dreamtool/internal/prefs"
)

var prefKeys = []string{prefs.KeyTheme, prefs.KeyToolPath}

// NewPrefsCommand creates the prefs command group.
func NewPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and write editor preferences",
		Long: `Read and write preferences stored in the preferences database.

Known keys:
  theme       UI theme (default: simplex)
  dream-bin   path of the dream executable (default: tool_path from config, else "dream")`,
	}

	cmd.AddCommand(newPrefsGetCommand())
	cmd.AddCommand(newPrefsSetCommand())
	return cmd
}

func newPrefsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "get [key]",
		Short:     "Show one or all preferences",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: prefKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, cleanup, err := cmdCtx.OpenPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			p := cmdCtx.Preferences(store)
			keys := prefKeys
			if len(args) == 1 {
				keys = args
			}

			values := make(map[string]string, len(keys))
			for _, key := range keys {
				v, err := p.Get(cmd.Context(), key)
				if err != nil {
					return err
				}
				values[key] = v
			}
			return renderPrefs(cmdCtx.Renderer, keys, values, len(args) == 1)
		},
	}
}

func newPrefsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Store a preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: prefKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if key == prefs.KeyTheme && !prefs.ValidTheme(value) {
				return fmt.Errorf("unknown theme %q (available: %v)", value, prefs.Themes)
			}

			cmdCtx := NewCommandContext(cmd)
			store, cleanup, err := cmdCtx.OpenPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Preferences(store).Set(cmd.Context(), key, value); err != nil {
				return err
			}
			cmdCtx.Logger.Debug("preference stored", "key", key, "value", value)
			if cmdCtx.Renderer.EffectiveMode() != output.ModeJSON {
				cmdCtx.Renderer.Success(fmt.Sprintf("%s = %s", key, value))
			}
			return nil
		},
	}
}

func renderPrefs(r *output.Renderer, keys []string, values map[string]string, single bool) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(values)
	}
	if single {
		r.Println(values[keys[0]])
		return nil
	}
	r.Header(1, "Preferences")
	for _, key := range keys {
		r.KeyValue(key, values[key])
	}
	return nil
}
