package app

import (
	"context"
	"fmt"
	"strings"

	"twodo/model"
)

// Update applies one message and returns the follow-up, or Noop when the
// transition is complete. Lookups that can fail run before any state is
// touched, so an error leaves the model as it was.
func (m *Model) Update(ctx context.Context, msg Message) (Message, error) {
	if msg.IsNoop() {
		panic("app: update called with Noop")
	}
	if m.mode == ModeQuit {
		panic("app: update after quit")
	}

	switch msg.Kind {
	case MsgQuit:
		m.mode = ModeQuit
		return Noop, nil

	case MsgFocusTask:
		m.mode = ModeFocusTask
		return Noop, nil
	case MsgFocusProject:
		m.mode = ModeFocusProject
		return Noop, nil

	case MsgSelectNextTask:
		m.taskCursor.Next(len(m.tasks))
		return Noop, nil
	case MsgSelectPrevTask:
		m.taskCursor.Prev(len(m.tasks))
		return Noop, nil
	case MsgSelectFirstTask:
		m.taskCursor.First(len(m.tasks))
		return Noop, nil
	case MsgSelectLastTask:
		m.taskCursor.Last(len(m.tasks))
		return Noop, nil

	case MsgAddTaskBegin:
		m.beginAddTask(ModeAddTask)
		return Noop, nil
	case MsgAddSubTaskBegin:
		m.beginAddTask(ModeAddSubTask)
		return Noop, nil
	case MsgAddSiblingTaskBegin:
		m.beginAddTask(ModeAddSiblingTask)
		return Noop, nil
	case MsgFocusAddTaskTitle:
		m.taskField = FieldTitle
		m.taskForm.Focus(FieldTitle)
		return Noop, nil
	case MsgFocusAddTaskDescription:
		m.taskField = FieldDescription
		m.taskForm.Focus(FieldDescription)
		return Noop, nil
	case MsgAddTaskCommit:
		return m.commitTask()
	case MsgAddTaskAbort:
		m.mode = ModeFocusTask
		m.addParentID = nil
		m.taskForm.Reset()
		return Noop, nil

	case MsgInput:
		switch {
		case m.mode.IsAddTask():
			m.taskForm.Update(msg.Key)
		case m.mode == ModeAddProject:
			m.projectForm.Update(msg.Key)
		}
		return Noop, nil

	case MsgTaskOp:
		id, err := ApplyTaskOp(ctx, m.gw, msg.TaskOp)
		if err != nil {
			return Noop, err
		}
		if msg.TaskOp.Kind == TaskAdd {
			m.focusTaskID = model.Int64(id)
			if m.mode.IsAddTask() {
				m.mode = ModeFocusTask
				m.addParentID = nil
				m.taskForm.Reset()
			}
		}
		return Msg(MsgReloadTask), nil
	case MsgReloadTask:
		prev := m.switchFrom
		m.switchFrom = nil
		if err := m.reloadTasks(ctx); err != nil {
			if prev != nil {
				m.projectCursor, m.taskCursor = prev.project, prev.task
			}
			return Noop, err
		}
		return Noop, nil
	case MsgDeleteTask:
		i, err := m.selectedTaskIndex()
		if err != nil {
			return Noop, err
		}
		return taskOpMsg(TaskOp{Kind: TaskDelete, ID: m.tasks[i].ID}), nil
	case MsgToggleTaskStatus:
		i, err := m.selectedTaskIndex()
		if err != nil {
			return Noop, err
		}
		t := m.tasks[i]
		kind := TaskDone
		if t.Done {
			kind = TaskUndone
		}
		return taskOpMsg(TaskOp{Kind: kind, ID: t.ID}), nil
	case MsgCopyTask:
		i, err := m.selectedTaskIndex()
		if err != nil {
			return Noop, err
		}
		if err := m.clip(SubtreeMarkdown(m.tasks, m.depths, i)); err != nil {
			return Noop, fmt.Errorf("copy to clipboard: %w", err)
		}
		return Noop, nil

	case MsgSelectNextProject:
		m.rememberSelection()
		m.projectCursor.Next(len(m.projects))
		m.taskCursor.Reset()
		return Msg(MsgReloadTask), nil
	case MsgSelectPrevProject:
		m.rememberSelection()
		m.projectCursor.Prev(len(m.projects))
		m.taskCursor.Reset()
		return Msg(MsgReloadTask), nil
	case MsgSelectFirstProject:
		m.rememberSelection()
		m.projectCursor.First(len(m.projects))
		m.taskCursor.Reset()
		return Msg(MsgReloadTask), nil
	case MsgSelectLastProject:
		m.rememberSelection()
		m.projectCursor.Last(len(m.projects))
		m.taskCursor.Reset()
		return Msg(MsgReloadTask), nil

	case MsgAddProjectBegin:
		m.mode = ModeAddProject
		m.projectField = FieldName
		m.projectForm.Reset()
		return Noop, nil
	case MsgFocusAddProjectName:
		m.projectField = FieldName
		return Noop, nil
	case MsgAddProjectCommit:
		name := m.projectForm.Name()
		if name == "" {
			return Noop, nil
		}
		return projectOpMsg(ProjectOp{Kind: ProjectAdd, Name: name}), nil
	case MsgAddProjectAbort:
		m.mode = ModeFocusProject
		m.projectForm.Reset()
		return Noop, nil
	case MsgProjectOp:
		id, err := ApplyProjectOp(ctx, m.gw, msg.ProjectOp)
		if err != nil {
			return Noop, err
		}
		if msg.ProjectOp.Kind == ProjectAdd {
			m.focusProjectID = model.Int64(id)
			if m.mode == ModeAddProject {
				m.mode = ModeFocusProject
				m.projectForm.Reset()
			}
		}
		return Msg(MsgReloadProject), nil
	case MsgReloadProject:
		if err := m.reloadProjects(ctx); err != nil {
			return Noop, err
		}
		return Msg(MsgReloadTask), nil
	case MsgDeleteProject:
		id, err := m.selectedProjectID()
		if err != nil {
			return Noop, err
		}
		return projectOpMsg(ProjectOp{Kind: ProjectDelete, ID: id}), nil

	default:
		panic(fmt.Sprintf("app: unhandled message %s", msg))
	}
}

func (m *Model) beginAddTask(mode Mode) {
	m.addParentID = ParentIDFor(mode, m.SelectedTask())
	m.mode = mode
	m.taskField = FieldTitle
	m.taskForm.Reset()
}

func (m *Model) commitTask() (Message, error) {
	projectID, err := m.selectedProjectID()
	if err != nil {
		return Noop, err
	}
	title := m.taskForm.Title()
	if title == "" {
		return Noop, nil
	}

	op := TaskOp{
		Kind:        TaskAdd,
		Title:       model.String(title),
		Description: m.taskForm.Description(),
		ProjectID:   projectID,
		ParentID:    m.addParentID,
	}
	return taskOpMsg(op), nil
}

// rememberSelection keeps the cursors from before a project switch so a
// failed task reload can put them back.
func (m *Model) rememberSelection() {
	m.switchFrom = &selection{project: m.projectCursor, task: m.taskCursor}
}

func (m *Model) reloadTasks(ctx context.Context) error {
	p := m.SelectedProject()
	if p == nil {
		m.tasks, m.depths = nil, nil
		m.taskCursor.Reset()
		return nil
	}

	tasks, err := m.gw.ListTasks(ctx, p.ID)
	if err != nil {
		return err
	}
	m.tasks, m.depths = ReorderTasks(tasks)

	n := len(m.tasks)
	if m.focusTaskID != nil {
		want := *m.focusTaskID
		m.focusTaskID = nil
		for i, t := range m.tasks {
			if t.ID == want {
				m.taskCursor.Select(i, n)
				return nil
			}
		}
	}
	m.taskCursor.Clamp(n)
	if _, ok := m.taskCursor.Selected(); !ok && n > 0 {
		m.taskCursor.First(n)
	}
	return nil
}

func (m *Model) reloadProjects(ctx context.Context) error {
	projects, err := m.gw.ListProjects(ctx)
	if err != nil {
		return err
	}

	var prevID *int64
	if p := m.SelectedProject(); p != nil {
		prevID = model.Int64(p.ID)
	}
	m.projects = projects
	n := len(projects)

	want := prevID
	if m.focusProjectID != nil {
		want = m.focusProjectID
		m.focusProjectID = nil
	}
	if want == nil && !m.hasProjectSelection() {
		want = model.Int64(model.InboxProjectID)
	}

	selected := false
	if want != nil {
		for i, p := range projects {
			if p.ID == *want {
				m.projectCursor.Select(i, n)
				selected = true
				break
			}
		}
	}
	if !selected {
		m.projectCursor.Clamp(n)
		if _, ok := m.projectCursor.Selected(); !ok && n > 0 {
			m.projectCursor.First(n)
		}
	}

	cur := m.SelectedProject()
	if cur == nil || prevID == nil || cur.ID != *prevID {
		m.taskCursor.Reset()
	}
	return nil
}

func (m *Model) hasProjectSelection() bool {
	_, ok := m.projectCursor.Selected()
	return ok
}

// SubtreeMarkdown renders the task at index i and its descendants as an
// indented markdown checklist. depths must be parallel to tasks.
func SubtreeMarkdown(tasks []model.Task, depths []int, i int) string {
	var b strings.Builder
	base := depths[i]
	for j := i; j < len(tasks); j++ {
		if j > i && depths[j] <= base {
			break
		}
		box := "[ ]"
		if tasks[j].Done {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%s- %s %s\n", strings.Repeat("  ", depths[j]-base), box, tasks[j].Title)
	}
	return b.String()
}
