package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/view"
)

// loadView builds a view and performs the initial fetch.
func loadView(ctx context.Context, svc service.Service) (*view.View, error) {
	v := view.New(svc, log.FromContext(ctx))
	if err := v.Load(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

// taskAt resolves a task reference against the displayed list.
func taskAt(v *view.View, ref TaskRef) (service.Task, error) {
	tasks := v.Tasks()
	if ref.TaskNum < 1 || ref.TaskNum > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", ref.TaskNum)
	}
	return tasks[ref.TaskNum-1], nil
}

// printTasks renders the list after a successful command.
func printTasks(cfg *config.Config, out io.Writer, v *view.View) {
	if cfg.Quiet {
		return
	}
	output.FormatTasks(out, v.Tasks())
}

// reportBackendError prints a backend failure and returns its exit code.
func reportBackendError(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrUnauthorized) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// parseRef parses a task reference and prints the usual user errors.
func parseRef(args []string, errOut io.Writer) (TaskRef, []string, bool) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return TaskRef{}, nil, false
	}
	return ref, rest, true
}

// joinTitle joins positional args into a title.
func joinTitle(args []string) string {
	return strings.Join(args, " ")
}
