package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TaskForm is the add-task popup: a one-line title and a free-form
// description.
type TaskForm struct {
	title       textinput.Model
	description textarea.Model
}

func newTaskForm() TaskForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 256
	title.Cursor.SetMode(cursor.CursorStatic)

	desc := textarea.New()
	desc.Placeholder = "Description (markdown)"
	desc.ShowLineNumbers = false
	desc.CharLimit = 0
	desc.SetHeight(6)
	desc.Cursor.SetMode(cursor.CursorStatic)

	return TaskForm{title: title, description: desc}
}

func (f *TaskForm) Reset() {
	f.title.SetValue("")
	f.description.SetValue("")
	f.Focus(FieldTitle)
}

func (f *TaskForm) Focus(field AddTaskField) {
	switch field {
	case FieldDescription:
		f.title.Blur()
		f.description.Focus()
	default:
		f.description.Blur()
		f.title.Focus()
	}
}

// Update forwards a key to whichever field has focus.
func (f *TaskForm) Update(k tea.KeyMsg) {
	if f.description.Focused() {
		f.description, _ = f.description.Update(k)
		return
	}
	f.title, _ = f.title.Update(k)
}

func (f *TaskForm) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	f.title.Width = w
	f.description.SetWidth(w)
}

func (f TaskForm) Title() string {
	return strings.TrimSpace(f.title.Value())
}

// Description is nil when the description field is blank.
func (f TaskForm) Description() *string {
	d := strings.TrimSpace(f.description.Value())
	if d == "" {
		return nil
	}
	return &d
}

func (f TaskForm) TitleView() string       { return f.title.View() }
func (f TaskForm) DescriptionView() string { return f.description.View() }

// ProjectForm is the add-project popup.
type ProjectForm struct {
	name textinput.Model
}

func newProjectForm() ProjectForm {
	name := textinput.New()
	name.Placeholder = "Project name"
	name.Prompt = ""
	name.CharLimit = 128
	name.Cursor.SetMode(cursor.CursorStatic)
	return ProjectForm{name: name}
}

func (f *ProjectForm) Reset() {
	f.name.SetValue("")
	f.name.Focus()
}

func (f *ProjectForm) Update(k tea.KeyMsg) {
	f.name, _ = f.name.Update(k)
}

func (f *ProjectForm) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	f.name.Width = w
}

func (f ProjectForm) Name() string {
	return strings.TrimSpace(f.name.Value())
}

func (f ProjectForm) View() string { return f.name.View() }
