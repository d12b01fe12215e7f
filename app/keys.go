package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the dispatcher knows about. It also feeds the
// help footer, so each binding carries its help text.
type KeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding

	SwitchFocus   key.Binding
	FocusProjects key.Binding
	FocusTasks    key.Binding

	AddTask    key.Binding
	AddSubTask key.Binding
	AddSibling key.Binding
	AddProject key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Toggle     key.Binding
	Copy       key.Binding
	Quit       key.Binding

	Commit    key.Binding
	Submit    key.Binding
	Abort     key.Binding
	NextField key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Prev:  key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev")),
		First: key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),

		SwitchFocus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		FocusProjects: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "projects")),
		FocusTasks:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "tasks")),

		AddTask:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add task")),
		AddSubTask: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "add sub-task")),
		AddSibling: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add sibling")),
		AddProject: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add project")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),

		Commit:    key.NewBinding(key.WithKeys("ctrl+s", "ctrl+@"), key.WithHelp("ctrl+s", "save")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Abort:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	}
}

type binding struct {
	key  key.Binding
	kind MsgKind
}

// tables builds the per-mode dispatch tables. Order matters: the first
// matching binding wins, and global bindings come last.
func (k KeyMap) tables() map[Mode][]binding {
	global := []binding{
		{k.FocusProjects, MsgFocusProject},
		{k.FocusTasks, MsgFocusTask},
		{k.Quit, MsgQuit},
	}
	tasks := []binding{
		{k.Next, MsgSelectNextTask},
		{k.Prev, MsgSelectPrevTask},
		{k.First, MsgSelectFirstTask},
		{k.Last, MsgSelectLastTask},
		{k.SwitchFocus, MsgFocusProject},
		{k.AddTask, MsgAddTaskBegin},
		{k.AddSubTask, MsgAddSubTaskBegin},
		{k.AddSibling, MsgAddSiblingTaskBegin},
		{k.Delete, MsgDeleteTask},
		{k.Reload, MsgReloadTask},
		{k.Toggle, MsgToggleTaskStatus},
		{k.Copy, MsgCopyTask},
	}
	projects := []binding{
		{k.Next, MsgSelectNextProject},
		{k.Prev, MsgSelectPrevProject},
		{k.First, MsgSelectFirstProject},
		{k.Last, MsgSelectLastProject},
		{k.SwitchFocus, MsgFocusTask},
		{k.AddProject, MsgAddProjectBegin},
		{k.Delete, MsgDeleteProject},
		{k.Reload, MsgReloadProject},
	}
	addTask := []binding{
		{k.Abort, MsgAddTaskAbort},
		{k.Commit, MsgAddTaskCommit},
	}
	addProject := []binding{
		{k.Abort, MsgAddProjectAbort},
		{k.Commit, MsgAddProjectCommit},
		{k.Submit, MsgAddProjectCommit},
	}

	return map[Mode][]binding{
		ModeFocusTask:      append(tasks, global...),
		ModeFocusProject:   append(projects, global...),
		ModeAddTask:        addTask,
		ModeAddSubTask:     addTask,
		ModeAddSiblingTask: addTask,
		ModeAddProject:     addProject,
	}
}

// ShortHelp returns the bindings worth showing for mode.
func (k KeyMap) ShortHelp(mode Mode) []key.Binding {
	switch mode {
	case ModeFocusTask:
		return []key.Binding{k.Next, k.Prev, k.AddTask, k.AddSubTask, k.AddSibling, k.Toggle, k.Delete, k.Copy, k.SwitchFocus, k.Quit}
	case ModeFocusProject:
		return []key.Binding{k.Next, k.Prev, k.AddProject, k.Delete, k.SwitchFocus, k.Quit}
	case ModeAddTask, ModeAddSubTask, ModeAddSiblingTask:
		return []key.Binding{k.Commit, k.NextField, k.Abort}
	case ModeAddProject:
		return []key.Binding{k.Submit, k.Abort}
	default:
		return nil
	}
}
