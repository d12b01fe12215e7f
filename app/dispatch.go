package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Dispatch classifies a key press by the current mode. Unbound keys map to
// Noop in the focus modes and to MsgInput in the add modes.
func (m *Model) Dispatch(k tea.KeyMsg) Message {
	if m.mode == ModeQuit {
		panic("app: dispatch after quit")
	}

	for _, b := range m.tables[m.mode] {
		if key.Matches(k, b.key) {
			return Msg(b.kind)
		}
	}

	switch {
	case m.mode.IsAddTask():
		if key.Matches(k, m.keys.NextField) {
			if m.taskField == FieldTitle {
				return Msg(MsgFocusAddTaskDescription)
			}
			return Msg(MsgFocusAddTaskTitle)
		}
		// Enter submits from the single-line title but is a newline in
		// the description.
		if m.taskField == FieldTitle && key.Matches(k, m.keys.Submit) {
			return Msg(MsgAddTaskCommit)
		}
		return Message{Kind: MsgInput, Key: k}
	case m.mode == ModeAddProject:
		if key.Matches(k, m.keys.NextField) {
			return Msg(MsgFocusAddProjectName)
		}
		return Message{Kind: MsgInput, Key: k}
	case m.mode == ModeFocusTask, m.mode == ModeFocusProject:
		return Noop
	default:
		panic(fmt.Sprintf("app: dispatch in unknown mode %d", int(m.mode)))
	}
}

// Translate maps any loop event to a Message. Only key presses carry
// meaning; resizes, ticks and mouse events are Noop.
func (m *Model) Translate(msg tea.Msg) Message {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return Noop
	}
	return m.Dispatch(k)
}
