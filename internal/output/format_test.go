package output

import (
	"bytes"
	"testing"

	"todo/internal/service"
	"todo/internal/testutil"
)

func TestFormatTasks(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, []service.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Walk dog", Completed: true},
		{ID: "3", Title: "line one\nline two"},
		{ID: "4", Title: "   "},
	})
	testutil.Golden(t, "tasks", buf.Bytes())
}

func TestFormatTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, nil)
	if buf.String() != "no tasks found\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatTask_WideNumbers(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1234, service.Task{Title: "x"})
	if buf.String() != "1234  [ ] x\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
