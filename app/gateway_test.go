package app

import (
	"context"
	"errors"

	"twodo/model"
)

var errNotFound = errors.New("not found")

// memGateway is an in-memory Gateway that counts calls and can be told to
// fail a named method.
type memGateway struct {
	projects []model.Project
	tasks    []model.Task
	nextID   int64
	calls    map[string]int
	fail     map[string]error
}

func newMemGateway() *memGateway {
	return &memGateway{
		projects: []model.Project{{ID: model.InboxProjectID, Name: model.InboxProjectName}},
		nextID:   100,
		calls:    map[string]int{},
		fail:     map[string]error{},
	}
}

func (g *memGateway) call(name string) error {
	g.calls[name]++
	return g.fail[name]
}

func (g *memGateway) totalCalls() int {
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

func (g *memGateway) ListTasks(_ context.Context, projectID int64) ([]model.Task, error) {
	if err := g.call("ListTasks"); err != nil {
		return nil, err
	}
	out := []model.Task{}
	for _, t := range g.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (g *memGateway) ListProjects(context.Context) ([]model.Project, error) {
	if err := g.call("ListProjects"); err != nil {
		return nil, err
	}
	out := make([]model.Project, len(g.projects))
	copy(out, g.projects)
	return out, nil
}

func (g *memGateway) CreateTask(_ context.Context, title string, description *string, projectID int64, parentID *int64) (int64, error) {
	if err := g.call("CreateTask"); err != nil {
		return 0, err
	}
	g.nextID++
	g.tasks = append(g.tasks, model.Task{
		ID:          g.nextID,
		Title:       title,
		Description: description,
		ProjectID:   projectID,
		ParentID:    parentID,
	})
	return g.nextID, nil
}

func (g *memGateway) EditTask(_ context.Context, id int64, title, description *string) error {
	if err := g.call("EditTask"); err != nil {
		return err
	}
	for i := range g.tasks {
		if g.tasks[i].ID == id {
			if title != nil {
				g.tasks[i].Title = *title
			}
			if description != nil {
				g.tasks[i].Description = description
			}
			return nil
		}
	}
	return errNotFound
}

func (g *memGateway) SetTaskDone(_ context.Context, id int64, done bool) error {
	if err := g.call("SetTaskDone"); err != nil {
		return err
	}
	for i := range g.tasks {
		if g.tasks[i].ID == id {
			g.tasks[i].Done = done
			return nil
		}
	}
	return errNotFound
}

func (g *memGateway) DeleteTask(_ context.Context, id int64) error {
	if err := g.call("DeleteTask"); err != nil {
		return err
	}
	doomed := map[int64]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, t := range g.tasks {
			if t.ParentID != nil && doomed[*t.ParentID] && !doomed[t.ID] {
				doomed[t.ID] = true
				changed = true
			}
		}
	}
	kept := g.tasks[:0]
	for _, t := range g.tasks {
		if !doomed[t.ID] {
			kept = append(kept, t)
		}
	}
	g.tasks = kept
	return nil
}

func (g *memGateway) CreateProject(_ context.Context, name string) (int64, error) {
	if err := g.call("CreateProject"); err != nil {
		return 0, err
	}
	g.nextID++
	g.projects = append(g.projects, model.Project{ID: g.nextID, Name: name})
	return g.nextID, nil
}

func (g *memGateway) RenameProject(_ context.Context, id int64, name string) error {
	if err := g.call("RenameProject"); err != nil {
		return err
	}
	for i := range g.projects {
		if g.projects[i].ID == id {
			g.projects[i].Name = name
			return nil
		}
	}
	return errNotFound
}

func (g *memGateway) DeleteProject(_ context.Context, id int64) error {
	if err := g.call("DeleteProject"); err != nil {
		return err
	}
	for i, p := range g.projects {
		if p.ID == id {
			g.projects = append(g.projects[:i], g.projects[i+1:]...)
			return nil
		}
	}
	return errNotFound
}
