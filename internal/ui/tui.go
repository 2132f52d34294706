// Package ui provides the interactive terminal page.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/service"
	"todo/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

// Model is the bubbletea model over a view.View.
//
// The view is only touched by Update while no handler is running, or by the
// single tea.Cmd running a handler. Rendering uses the snapshot taken when
// the last handler finished.
type Model struct {
	ctx  context.Context
	view *view.View

	mode   mode
	input  textinput.Model
	cursor int
	busy   bool
	err    error

	tasks     []service.Task
	loaded    bool
	editingID string
}

// doneMsg reports that a view handler finished.
type doneMsg struct {
	err error
}

// NewModel creates a model. Init performs the first fetch.
func NewModel(ctx context.Context, v *view.View) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 500
	input.TextStyle = inputStyle
	input.Cursor.SetMode(cursor.CursorStatic)
	return &Model{ctx: ctx, view: v, input: input, busy: true}
}

// Run starts the terminal UI and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, v *view.View) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(NewModel(ctx, v), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return m.do(m.view.Load)
}

// do runs a view handler off the update loop and blocks input until it
// reports back.
func (m *Model) do(fn func(context.Context) error) tea.Cmd {
	m.busy = true
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: fn(ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.busy = false
		m.err = msg.err
		m.tasks = m.view.Tasks()
		m.loaded = m.view.Loaded()
		m.editingID = m.view.EditingID()
		switch {
		case m.mode == modeEdit && m.editingID == "":
			m.leaveInput()
		case m.mode == modeEdit:
			m.cursor = m.indexOf(m.editingID)
		case m.mode == modeAdd && msg.err == nil:
			m.leaveInput()
		}
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "r":
		m.err = nil
		return m, m.do(m.view.Load)
	case "a":
		m.err = nil
		return m, m.enterInput(modeAdd, m.view.Title())
	case "e", "enter":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.view.StartEdit(task.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.editingID = m.view.EditingID()
		return m, m.enterInput(modeEdit, m.view.EditingTitle())
	case "c", " ":
		task, ok := m.selected()
		if !ok || task.Completed {
			return m, nil
		}
		m.err = nil
		id := task.ID
		return m, m.do(func(ctx context.Context) error { return m.view.Complete(ctx, id) })
	case "d", "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.err = nil
		id := task.ID
		return m, m.do(func(ctx context.Context) error { return m.view.Delete(ctx, id) })
	}
	return m, nil
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.view.SetTitle(m.input.Value())
		m.leaveInput()
		return m, nil
	case tea.KeyEnter:
		m.view.SetTitle(m.input.Value())
		if m.view.Title() == "" {
			m.err = view.ErrEmptyTitle
			return m, nil
		}
		m.err = nil
		return m, m.do(m.view.Add)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.view.CancelEdit()
		m.editingID = ""
		m.leaveInput()
		return m, nil
	case tea.KeyEnter, tea.KeyTab:
		m.view.SetEditingTitle(m.input.Value())
		if m.view.EditingTitle() == "" {
			return m, nil
		}
		m.err = nil
		return m, m.do(m.view.CommitEdit)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) enterInput(md mode, value string) tea.Cmd {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) indexOf(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return m.cursor
}

func (m *Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return service.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n")

	writeForm(&b, m)
	writeTasks(&b, m)

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+errorText(m.err)) + "\n")
	}
	b.WriteString("\n")
	writeFooter(&b, m)
	return b.String()
}

func writeForm(b *strings.Builder, m *Model) {
	if m.mode == modeAdd {
		b.WriteString("New task: " + m.input.View() + "\n\n")
		return
	}
	b.WriteString(hintStyle.Render("Press a to add a task") + "\n\n")
}

func writeTasks(b *strings.Builder, m *Model) {
	if len(m.tasks) == 0 {
		if m.busy && !m.loaded {
			b.WriteString("  Loading...\n")
		} else {
			b.WriteString("  No tasks yet.\n")
		}
		return
	}
	for i, task := range m.tasks {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		if m.mode == modeEdit && task.ID == m.editingID {
			b.WriteString(marker + "[ ] " + m.input.View() + "\n")
			continue
		}
		b.WriteString(marker + formatTask(task) + "\n")
	}
}

func formatTask(task service.Task) string {
	if task.Completed {
		return completedStyle.Render("[x] " + task.Title)
	}
	return "[ ] " + task.Title
}

func writeFooter(b *strings.Builder, m *Model) {
	if m.busy {
		b.WriteString(hintStyle.Render("working...") + "\n")
		return
	}
	switch m.mode {
	case modeAdd:
		b.WriteString(hintStyle.Render("enter save | esc back") + "\n")
	case modeEdit:
		b.WriteString(hintStyle.Render("enter/tab save | esc cancel") + "\n")
	default:
		actions := "a add | d delete | r refresh | q quit"
		if task, ok := m.selected(); ok && !task.Completed {
			actions = "a add | e edit | c complete | d delete | r refresh | q quit"
		}
		b.WriteString(hintStyle.Render(actions) + "\n")
	}
}

// errorText drops the wrapping prefix of view errors for display.
func errorText(err error) string {
	switch {
	case errors.Is(err, view.ErrEmptyTitle):
		return "title required"
	case errors.Is(err, view.ErrNotEditable):
		return "completed tasks cannot be edited"
	}
	return err.Error()
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
