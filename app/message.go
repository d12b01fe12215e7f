package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind tags a Message.
type MsgKind int

const (
	MsgNoop MsgKind = iota
	MsgQuit

	// Tasks
	MsgAddTaskBegin
	MsgAddSubTaskBegin
	MsgAddSiblingTaskBegin
	MsgAddTaskCommit
	MsgAddTaskAbort
	MsgFocusTask
	MsgFocusAddTaskTitle
	MsgFocusAddTaskDescription
	MsgTaskOp
	MsgReloadTask
	MsgDeleteTask
	MsgToggleTaskStatus
	MsgCopyTask
	MsgSelectNextTask
	MsgSelectPrevTask
	MsgSelectFirstTask
	MsgSelectLastTask

	// Projects
	MsgFocusProject
	MsgSelectNextProject
	MsgSelectPrevProject
	MsgSelectFirstProject
	MsgSelectLastProject
	MsgAddProjectBegin
	MsgAddProjectCommit
	MsgAddProjectAbort
	MsgFocusAddProjectName
	MsgProjectOp
	MsgReloadProject
	MsgDeleteProject

	// Keystroke for the focused text field.
	MsgInput
)

var msgKindNames = map[MsgKind]string{
	MsgNoop:                    "Noop",
	MsgQuit:                    "Quit",
	MsgAddTaskBegin:            "AddTaskBegin",
	MsgAddSubTaskBegin:         "AddSubTaskBegin",
	MsgAddSiblingTaskBegin:     "AddSiblingTaskBegin",
	MsgAddTaskCommit:           "AddTaskCommit",
	MsgAddTaskAbort:            "AddTaskAbort",
	MsgFocusTask:               "FocusTask",
	MsgFocusAddTaskTitle:       "FocusAddTaskTitle",
	MsgFocusAddTaskDescription: "FocusAddTaskDescription",
	MsgTaskOp:                  "TaskOp",
	MsgReloadTask:              "ReloadTask",
	MsgDeleteTask:              "DeleteTask",
	MsgToggleTaskStatus:        "ToggleTaskStatus",
	MsgCopyTask:                "CopyTask",
	MsgSelectNextTask:          "SelectNextTask",
	MsgSelectPrevTask:          "SelectPrevTask",
	MsgSelectFirstTask:         "SelectFirstTask",
	MsgSelectLastTask:          "SelectLastTask",
	MsgFocusProject:            "FocusProject",
	MsgSelectNextProject:       "SelectNextProject",
	MsgSelectPrevProject:       "SelectPrevProject",
	MsgSelectFirstProject:      "SelectFirstProject",
	MsgSelectLastProject:       "SelectLastProject",
	MsgAddProjectBegin:         "AddProjectBegin",
	MsgAddProjectCommit:        "AddProjectCommit",
	MsgAddProjectAbort:         "AddProjectAbort",
	MsgFocusAddProjectName:     "FocusAddProjectName",
	MsgProjectOp:               "ProjectOp",
	MsgReloadProject:           "ReloadProject",
	MsgDeleteProject:           "DeleteProject",
	MsgInput:                   "Input",
}

func (k MsgKind) String() string {
	if name, ok := msgKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MsgKind(%d)", int(k))
}

// Message is a state-transition request consumed by Model.Update.
// Only the payload matching Kind is meaningful.
type Message struct {
	Kind      MsgKind
	TaskOp    TaskOp
	ProjectOp ProjectOp
	Key       tea.KeyMsg
}

// Noop is the fixed point that ends a chain of messages.
var Noop = Message{Kind: MsgNoop}

// Msg builds a payload-free message.
func Msg(kind MsgKind) Message {
	return Message{Kind: kind}
}

func taskOpMsg(op TaskOp) Message {
	return Message{Kind: MsgTaskOp, TaskOp: op}
}

func projectOpMsg(op ProjectOp) Message {
	return Message{Kind: MsgProjectOp, ProjectOp: op}
}

func (m Message) IsNoop() bool {
	return m.Kind == MsgNoop
}

func (m Message) String() string {
	switch m.Kind {
	case MsgTaskOp:
		return fmt.Sprintf("TaskOp(%s)", m.TaskOp.Kind)
	case MsgProjectOp:
		return fmt.Sprintf("ProjectOp(%s)", m.ProjectOp.Kind)
	case MsgInput:
		return fmt.Sprintf("Input(%q)", m.Key.String())
	default:
		return m.Kind.String()
	}
}
