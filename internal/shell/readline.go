package shell

import (
	"errors"
	"fmt"

	"github.com/chzyer/readline"
)

// Readline is a LineReader on the terminal with history and completion.
type Readline struct {
	*readline.Instance
}

// NewReadline opens a terminal line editor. History is kept in historyFile
// when it is not empty.
func NewReadline(historyFile string) (*Readline, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     historyFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize shell: %w", err)
	}
	return &Readline{Instance: rl}, nil
}

// Readline reads one line, mapping ctrl+c to ErrInterrupt.
func (r *Readline) Readline() (string, error) {
	line, err := r.Instance.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return line, ErrInterrupt
	}
	return line, err
}

func newCompleter() *readline.PrefixCompleter {
	kinds := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{
			readline.PcItem("scene"),
			readline.PcItem("resource"),
		}
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("tree"),
		readline.PcItem("select",
			readline.PcItem("project"),
			readline.PcItem("scenes"),
			readline.PcItem("scene"),
			readline.PcItem("resources"),
			readline.PcItem("resource"),
		),
		readline.PcItem("add", kinds()...),
		readline.PcItem("rm", kinds()...),
		readline.PcItem("alerts"),
		readline.PcItem("close"),
		readline.PcItem("save"),
		readline.PcItem("open"),
		readline.PcItem("quit"),
	)
}
