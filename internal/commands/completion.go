// Where: cli/internal/commands/completion.go
// What: Shell completion command implementation.
// Why: Provide subcommand and flag completion for bash, zsh, and fish.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/poruru/buildargs/cli/internal/meta"
)

// CompletionCmd defines the structure for the completion command.
type CompletionCmd struct {
	Bash CompletionBashCmd `cmd:"" help:"Generate bash completion script"`
	Zsh  CompletionZshCmd  `cmd:"" help:"Generate zsh completion script"`
	Fish CompletionFishCmd `cmd:"" help:"Generate fish completion script"`
}

type (
	CompletionBashCmd struct{}
	CompletionZshCmd  struct{}
	CompletionFishCmd struct{}
)

// completionModel lists top-level commands and, per command, the words that may follow it.
type completionModel struct {
	commands []string
	words    map[string][]string
}

func runCompletionBash(cli CLI, out io.Writer) int {
	model := collectCompletionModel(cli)

	var caseParts []string
	for _, cmd := range model.commands {
		words, ok := model.words[cmd]
		if !ok {
			continue
		}
		part := fmt.Sprintf(`        %s)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;`, cmd, strings.Join(words, " "))
		caseParts = append(caseParts, part)
	}

	script := `_%[1]s_completion() {
    local cur cmd
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    cmd="${COMP_WORDS[1]}"

    if [[ ${COMP_CWORD} -le 1 ]]; then
        COMPREPLY=( $(compgen -W "%[3]s" -- "${cur}") )
        return 0
    fi

    case "${cmd}" in
%[2]s
    esac
}
complete -F _%[1]s_completion %[1]s
`
	writeString(out, fmt.Sprintf(script, meta.Slug, strings.Join(caseParts, "\n"), strings.Join(model.commands, " ")))
	return 0
}

func runCompletionZsh(cli CLI, out io.Writer) int {
	model := collectCompletionModel(cli)

	script := `#compdef %[1]s
_%[1]s_completion() {
  local -a commands
  commands=(%[2]s)
  local cmd="${words[2]}"

  if [[ $CURRENT -eq 2 ]]; then
    _values 'commands' ${commands[@]}
    return
  fi

%[3]s
}
_%[1]s_completion "$@"
`

	var subBlocks strings.Builder
	for _, cmd := range model.commands {
		words, ok := model.words[cmd]
		if !ok {
			continue
		}
		subBlocks.WriteString(fmt.Sprintf(`  if [[ "${cmd}" == "%s" ]]; then
    compadd -- %s
    return
  fi
`, cmd, strings.Join(words, " ")))
	}

	writeString(out, fmt.Sprintf(script, meta.Slug, strings.Join(model.commands, " "), subBlocks.String()))
	return 0
}

func runCompletionFish(cli CLI, out io.Writer) int {
	model := collectCompletionModel(cli)
	writeLine(out, fmt.Sprintf("complete -c %s -f -n \"__fish_use_subcommand\" -a \"%s\"", meta.Slug, strings.Join(model.commands, " ")))
	for _, cmd := range model.commands {
		words, ok := model.words[cmd]
		if !ok {
			continue
		}
		writeLine(out, fmt.Sprintf("complete -c %s -f -n \"__fish_seen_subcommand_from %s\" -a \"%s\"", meta.Slug, cmd, strings.Join(words, " ")))
	}
	return 0
}

func collectCompletionModel(cli CLI) completionModel {
	parser, _ := kong.New(&cli, kong.Name(meta.Slug))

	model := completionModel{words: make(map[string][]string)}
	for _, node := range parser.Model.Children {
		if node.Hidden || strings.HasPrefix(node.Name, "__") {
			continue
		}
		model.commands = append(model.commands, node.Name)

		var words []string
		for _, sub := range node.Children {
			if sub.Hidden || strings.HasPrefix(sub.Name, "__") {
				continue
			}
			words = append(words, sub.Name)
		}
		for _, flag := range node.Flags {
			if flag.Hidden || flag.Name == "help" {
				continue
			}
			words = append(words, "--"+flag.Name)
		}
		if len(words) > 0 {
			sort.Strings(words)
			model.words[node.Name] = words
		}
	}
	return model
}
