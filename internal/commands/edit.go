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
	Register(&EditCmd{})
}

// EditCmd implements the edit command: the CLI form of editing a task and
// leaving the field.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"rename"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's title" }
func (c *EditCmd) Usage() string      { return "todo edit <n> <title...>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, rest, ok := parseRef(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	title := joinTitle(rest)
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	v, err := loadView(ctx, svc)
	if err != nil {
		return reportBackendError(errOut, err)
	}
	task, err := taskAt(v, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := v.StartEdit(task.ID); err != nil {
		fmt.Fprintf(errOut, "error: task is completed: %d\n", ref.TaskNum)
		return exitcode.UserError
	}

	v.SetEditingTitle(title)
	if err := v.CommitEdit(ctx); err != nil {
		return reportBackendError(errOut, err)
	}

	printTasks(cfg, out, v)
	return exitcode.Success
}
