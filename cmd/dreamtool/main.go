// Command dreamtool edits Dream project files from the browser or the terminal.
package main

import (
	"os"

	"github.com/octronic/dreamtool/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
