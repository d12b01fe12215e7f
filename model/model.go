package model

// InboxProjectID is the fixed id of the default project.
// New tasks land here unless a project is given, and it cannot be deleted.
const InboxProjectID int64 = 1

// InboxProjectName is the name the Inbox is seeded with.
const InboxProjectName = "Inbox"

// Project is a named grouping of tasks.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task is an individual todo item, optionally nested under a parent task.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Done        bool    `json:"done"`
	ProjectID   int64   `json:"projectId"`
	ParentID    *int64  `json:"parentId,omitempty"`

	// Depth is the distance from the nearest ancestor without a parent.
	// It is derived when tasks are reordered and never persisted.
	Depth int `json:"depth"`
}

// IsRoot reports whether the task has no parent reference at all.
func (t Task) IsRoot() bool {
	return t.ParentID == nil
}

// DescriptionText returns the description or "" when unset.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// Int64 returns a pointer to v. Handy for optional ids in literals.
func Int64(v int64) *int64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
