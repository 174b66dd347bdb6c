// Where: cli/cmd/buildargs/main.go
// What: CLI entrypoint.
// Why: Execute buildargs commands with configured dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/poruru/buildargs/cli/internal/commands"
)

func main() {
	deps, closer, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := commands.Run(os.Args[1:], deps)
	if closer != nil {
		_ = closer.Close()
	}
	os.Exit(code)
}
