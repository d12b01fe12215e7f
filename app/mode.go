package app

// Mode is the active interaction context. Exactly one is active at a time
// and ModeQuit is terminal.
type Mode int

const (
	ModeFocusTask Mode = iota
	ModeFocusProject
	ModeAddTask
	ModeAddSubTask
	ModeAddSiblingTask
	ModeAddProject
	ModeQuit
)

func (m Mode) String() string {
	switch m {
	case ModeFocusTask:
		return "tasks"
	case ModeFocusProject:
		return "projects"
	case ModeAddTask:
		return "add task"
	case ModeAddSubTask:
		return "add sub-task"
	case ModeAddSiblingTask:
		return "add sibling task"
	case ModeAddProject:
		return "add project"
	case ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// IsAddTask reports whether the mode is one of the add-task variants.
func (m Mode) IsAddTask() bool {
	return m == ModeAddTask || m == ModeAddSubTask || m == ModeAddSiblingTask
}

// AddTaskField is the focused field of the add-task popup.
type AddTaskField int

const (
	FieldTitle AddTaskField = iota
	FieldDescription
)

// AddProjectField is the focused field of the add-project popup.
type AddProjectField int

const (
	FieldName AddProjectField = iota
)
