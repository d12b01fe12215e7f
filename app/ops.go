package app

import (
	"context"
	"fmt"

	"twodo/model"
)

// Gateway is the persistence boundary of the core. Calls are synchronous and
// their errors are returned to the caller unchanged.
type Gateway interface {
	ListTasks(ctx context.Context, projectID int64) ([]model.Task, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateTask(ctx context.Context, title string, description *string, projectID int64, parentID *int64) (int64, error)
	EditTask(ctx context.Context, id int64, title, description *string) error
	SetTaskDone(ctx context.Context, id int64, done bool) error
	DeleteTask(ctx context.Context, id int64) error
	CreateProject(ctx context.Context, name string) (int64, error)
	RenameProject(ctx context.Context, id int64, name string) error
	DeleteProject(ctx context.Context, id int64) error
}

type TaskOpKind int

const (
	TaskAdd TaskOpKind = iota
	TaskEdit
	TaskDone
	TaskUndone
	TaskDelete
)

func (k TaskOpKind) String() string {
	switch k {
	case TaskAdd:
		return "add"
	case TaskEdit:
		return "edit"
	case TaskDone:
		return "done"
	case TaskUndone:
		return "undone"
	case TaskDelete:
		return "delete"
	default:
		return fmt.Sprintf("TaskOpKind(%d)", int(k))
	}
}

// TaskOp is a task mutation shared by the TUI and the command line.
//
// For TaskEdit, a nil Title or Description leaves that field untouched.
type TaskOp struct {
	Kind        TaskOpKind
	ID          int64
	Title       *string
	Description *string
	ProjectID   int64
	ParentID    *int64
}

type ProjectOpKind int

const (
	ProjectAdd ProjectOpKind = iota
	ProjectRename
	ProjectDelete
)

func (k ProjectOpKind) String() string {
	switch k {
	case ProjectAdd:
		return "add"
	case ProjectRename:
		return "rename"
	case ProjectDelete:
		return "delete"
	default:
		return fmt.Sprintf("ProjectOpKind(%d)", int(k))
	}
}

// ProjectOp is a project mutation shared by the TUI and the command line.
type ProjectOp struct {
	Kind ProjectOpKind
	ID   int64
	Name string
}

// ApplyTaskOp runs op against gw. It returns the id of the created task for
// TaskAdd and op.ID otherwise.
func ApplyTaskOp(ctx context.Context, gw Gateway, op TaskOp) (int64, error) {
	switch op.Kind {
	case TaskAdd:
		title := ""
		if op.Title != nil {
			title = *op.Title
		}
		return gw.CreateTask(ctx, title, op.Description, op.ProjectID, op.ParentID)
	case TaskEdit:
		return op.ID, gw.EditTask(ctx, op.ID, op.Title, op.Description)
	case TaskDone:
		return op.ID, gw.SetTaskDone(ctx, op.ID, true)
	case TaskUndone:
		return op.ID, gw.SetTaskDone(ctx, op.ID, false)
	case TaskDelete:
		return op.ID, gw.DeleteTask(ctx, op.ID)
	default:
		panic(fmt.Sprintf("app: unknown task op %d", int(op.Kind)))
	}
}

// ApplyProjectOp runs op against gw. It returns the id of the created project
// for ProjectAdd and op.ID otherwise.
func ApplyProjectOp(ctx context.Context, gw Gateway, op ProjectOp) (int64, error) {
	switch op.Kind {
	case ProjectAdd:
		return gw.CreateProject(ctx, op.Name)
	case ProjectRename:
		return op.ID, gw.RenameProject(ctx, op.ID, op.Name)
	case ProjectDelete:
		return op.ID, gw.DeleteProject(ctx, op.ID)
	default:
		panic(fmt.Sprintf("app: unknown project op %d", int(op.Kind)))
	}
}
