package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todo help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                   List all tasks
  todo list [common flags]               List all tasks
  todo add [common flags] <title...>     Create a task (alias: create)
  todo edit [common flags] <n> <title...>
  todo done [common flags] <n>           Mark task n completed
  todo rm [common flags] <n>             Delete task n
  todo tui [common flags]                Interactive task list
  todo login [common flags]              Authenticate with Google Tasks
  todo logout [common flags]
  todo help
  todo version

Common flags:
  --config <dir>         Override config directory
  --backend <name>       Task backend: rest (default) or googletasks
  --backend-url <url>    REST backend base URL (default http://localhost:5000)
  --quiet                Suppress informational output
  --debug                Print debug logs to stderr

Environment:
  NEXT_PUBLIC_BACKEND_URL, TODO_BACKEND_URL   REST backend base URL
  TODO_BACKEND                                Task backend
  TODO_LOG_LEVEL                              debug, info, warn, error
  TODO_LOG_FORMAT                             text, json, logfmt
`
