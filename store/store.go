package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"

	"twodo/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInboxProtected = errors.New("the Inbox project cannot be deleted")
	ErrEmptyTitle     = errors.New("task title must not be empty")
	ErrEmptyName      = errors.New("project name must not be empty")
)

// Options tune Open.
type Options struct {
	// Backups is how many rotating copies of the database file to keep.
	// Zero disables backups.
	Backups int
	Logger  *slog.Logger
}

// Store is the SQLite persistence gateway.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// Open backs up the database at path, opens it and brings its schema up to
// date. The directory is created when missing.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if opts.Backups > 0 {
		saved, err := backup(path, opts.Backups)
		if err != nil {
			return nil, fmt.Errorf("backup database: %w", err)
		}
		if saved != "" {
			if fi, err := os.Stat(saved); err == nil {
				log.Info("database backed up", "path", saved, "size", humanize.Bytes(uint64(fi.Size())))
			}
		}
	}

	db, err := openDB(ctx, path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, path: path, log: log}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return s, nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection keeps the per-connection pragmas in force for every
	// statement.
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}
	return db, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, done, project_id, parent_id
		   FROM tasks WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var (
			t      model.Task
			desc   sql.NullString
			parent sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Title, &desc, &t.Done, &t.ProjectID, &parent); err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		if desc.Valid {
			t.Description = model.String(desc.String)
		}
		if parent.Valid {
			t.ParentID = model.Int64(parent.Int64)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateTask inserts a task. The project and the parent, when given, must
// exist.
func (s *Store) CreateTask(ctx context.Context, title string, description *string, projectID int64, parentID *int64) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}
	if err := s.exists(ctx, "projects", projectID); err != nil {
		return 0, fmt.Errorf("project %d: %w", projectID, err)
	}
	if parentID != nil {
		if err := s.exists(ctx, "tasks", *parentID); err != nil {
			return 0, fmt.Errorf("parent task %d: %w", *parentID, err)
		}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, done, project_id, parent_id) VALUES (?, ?, 0, ?, ?)`,
		title, nullString(description), projectID, nullInt64(parentID))
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	return res.LastInsertId()
}

// EditTask updates the fields that are non-nil. An empty description clears
// it.
func (s *Store) EditTask(ctx context.Context, id int64, title, description *string) error {
	sets := []string{}
	args := []any{}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return ErrEmptyTitle
		}
		sets = append(sets, "title = ?")
		args = append(args, t)
	}
	if description != nil {
		sets = append(sets, "description = ?")
		d := strings.TrimSpace(*description)
		if d == "" {
			args = append(args, nil)
		} else {
			args = append(args, d)
		}
	}
	if len(sets) == 0 {
		if err := s.exists(ctx, "tasks", id); err != nil {
			return fmt.Errorf("task %d: %w", id, err)
		}
		return nil
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx, "UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("edit task %d: %w", id, err)
	}
	return expectOne(res, "task", id)
}

func (s *Store) SetTaskDone(ctx context.Context, id int64, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET done = ? WHERE id = ?`, done, id)
	if err != nil {
		return fmt.Errorf("set task %d done: %w", id, err)
	}
	return expectOne(res, "task", id)
}

// DeleteTask removes a task and, through the parent foreign key, its whole
// subtree.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return expectOne(res, "task", id)
}

func (s *Store) CreateProject(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO projects (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) RenameProject(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	res, err := s.db.ExecContext(ctx, `UPDATE projects SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename project %d: %w", id, err)
	}
	return expectOne(res, "project", id)
}

// DeleteProject removes a project with all of its tasks. The Inbox is
// refused.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	if id == model.InboxProjectID {
		return ErrInboxProtected
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return expectOne(res, "project", id)
}

func (s *Store) exists(ctx context.Context, table string, id int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func expectOne(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil || strings.TrimSpace(*s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.TrimSpace(*s), Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
