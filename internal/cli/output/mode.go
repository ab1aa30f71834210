// Package output renders command results for terminals, pipes and scripts.
//
// Output adapts to where it is going: styled text on a terminal, markdown
// when piped, JSON on request.
package output

import "fmt"

// OutputMode selects how results are written.
type OutputMode string

// Mode is shorthand for OutputMode.
type Mode = OutputMode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// ParseMode converts a flag or config value to a mode. Empty means auto.
func ParseMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeText, ModeMarkdown, ModeJSON:
		return OutputMode(s), nil
	default:
		return ModeAuto, fmt.Errorf("unknown output mode %q (want auto, text, markdown or json)", s)
	}
}
