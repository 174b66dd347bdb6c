// Where: cli/internal/commands/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface usage and raw line output.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/poruru/buildargs/cli/internal/config"
	"github.com/poruru/buildargs/cli/internal/ports"
)

// newUI returns a console UI honoring the user's emoji preference.
func newUI(out io.Writer) ports.UserInterface {
	defaults, err := config.LoadDefaults()
	if err != nil {
		return ports.NewConsoleUI(out, true)
	}
	return ports.NewConsoleUI(out, defaults.EmojiEnabled())
}

// exitWithError prints an error message and returns exit code 1.
func exitWithError(out io.Writer, err error) int {
	newUI(out).Warn(fmt.Sprintf("✗ %v", err))
	return 1
}

func writeString(out io.Writer, text string) {
	if out == nil || text == "" {
		return
	}
	_, _ = io.WriteString(out, text)
}

func writeLine(out io.Writer, line string) {
	if out == nil {
		return
	}
	if strings.HasSuffix(line, "\n") {
		_, _ = io.WriteString(out, line)
		return
	}
	_, _ = io.WriteString(out, line+"\n")
}
