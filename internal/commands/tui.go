package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/ui"
	"todo/internal/view"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd implements the interactive task page.
type TuiCmd struct{}

func (c *TuiCmd) Name() string       { return "tui" }
func (c *TuiCmd) Aliases() []string  { return nil }
func (c *TuiCmd) Synopsis() string   { return "Interactive task list" }
func (c *TuiCmd) Usage() string      { return "todo tui [common flags]" }
func (c *TuiCmd) NeedsBackend() bool { return true }

// LogToFile keeps log lines off the screen the TUI draws on.
func (c *TuiCmd) LogToFile() bool { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	logger := log.FromContext(ctx)
	logger.Info("starting tui", "backend", cfg.Backend)

	if err := ui.Run(ctx, view.New(svc, logger)); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
