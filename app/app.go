package app

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	"twodo/model"
)

// MaxChain bounds the number of follow-up messages a single event may
// produce before Drain gives up.
const MaxChain = 64

var (
	ErrMissingTaskID    = errors.New("no task selected")
	ErrMissingProjectID = errors.New("no project selected")
)

// Model holds the interaction state: the active mode, the cached task and
// project lists, both selection cursors and the add-popup buffers.
type Model struct {
	gw    Gateway
	clip  func(string) error
	trace func(Message)

	keys   KeyMap
	tables map[Mode][]binding

	mode         Mode
	taskField    AddTaskField
	projectField AddProjectField

	tasks    []model.Task
	depths   []int
	projects []model.Project

	taskCursor    Cursor
	projectCursor Cursor

	// Parent of the task being added, fixed when the popup opens.
	addParentID *int64
	// Task or project to select after the next reload.
	focusTaskID    *int64
	focusProjectID *int64
	// Cursors before a project switch, restored if the task reload fails.
	switchFrom *selection

	taskForm    TaskForm
	projectForm ProjectForm
}

type selection struct {
	project Cursor
	task    Cursor
}

type Option func(*Model)

// WithClipboard replaces the system clipboard used by CopyTask.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.clip = write }
}

// WithTrace registers a hook called with every message Drain processes.
func WithTrace(fn func(Message)) Option {
	return func(m *Model) { m.trace = fn }
}

// NewModel creates a model focused on the task pane with empty lists. Call
// Load to populate it.
func NewModel(gw Gateway, opts ...Option) *Model {
	m := &Model{
		gw:          gw,
		clip:        clipboard.WriteAll,
		keys:        DefaultKeyMap(),
		mode:        ModeFocusTask,
		taskForm:    newTaskForm(),
		projectForm: newProjectForm(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tables = m.keys.tables()
	return m
}

// Load fetches projects and the tasks of the selected project.
func (m *Model) Load(ctx context.Context) error {
	return Drain(ctx, m, Msg(MsgReloadProject))
}

func (m *Model) Mode() Mode { return m.mode }
func (m *Model) Keys() KeyMap { return m.keys }
func (m *Model) TaskField() AddTaskField { return m.taskField }
func (m *Model) ProjectField() AddProjectField { return m.projectField }
func (m *Model) TaskCursor() Cursor { return m.taskCursor }
func (m *Model) ProjectCursor() Cursor { return m.projectCursor }
func (m *Model) TaskForm() TaskForm { return m.taskForm }
func (m *Model) ProjectForm() ProjectForm { return m.projectForm }
func (m *Model) AddParentID() *int64 { return m.addParentID }

// SetFormWidth sizes the popup inputs.
func (m *Model) SetFormWidth(w int) {
	m.taskForm.SetWidth(w)
	m.projectForm.SetWidth(w)
}

// Tasks returns the reordered tasks of the selected project as a copy.
func (m *Model) Tasks() []model.Task {
	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Depths is parallel to Tasks.
func (m *Model) Depths() []int {
	out := make([]int, len(m.depths))
	copy(out, m.depths)
	return out
}

func (m *Model) Projects() []model.Project {
	out := make([]model.Project, len(m.projects))
	copy(out, m.projects)
	return out
}

// SelectedTask returns the task under the cursor, or nil.
func (m *Model) SelectedTask() *model.Task {
	i, ok := m.taskCursor.Selected()
	if !ok || i >= len(m.tasks) {
		return nil
	}
	t := m.tasks[i]
	return &t
}

// SelectedProject returns the project under the cursor, or nil.
func (m *Model) SelectedProject() *model.Project {
	i, ok := m.projectCursor.Selected()
	if !ok || i >= len(m.projects) {
		return nil
	}
	p := m.projects[i]
	return &p
}

func (m *Model) selectedTaskIndex() (int, error) {
	i, ok := m.taskCursor.Selected()
	if !ok || i >= len(m.tasks) {
		return 0, ErrMissingTaskID
	}
	return i, nil
}

func (m *Model) selectedProjectID() (int64, error) {
	p := m.SelectedProject()
	if p == nil {
		return 0, ErrMissingProjectID
	}
	return p.ID, nil
}

// ParentIDFor returns the parent a new task gets when added in mode with
// selected under the cursor.
func ParentIDFor(mode Mode, selected *model.Task) *int64 {
	if selected == nil {
		return nil
	}
	switch mode {
	case ModeAddSubTask:
		return model.Int64(selected.ID)
	case ModeAddSiblingTask:
		if selected.IsRoot() {
			return nil
		}
		return model.Int64(*selected.ParentID)
	default:
		return nil
	}
}
