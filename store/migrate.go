package store

import (
	"context"
	"fmt"

	"twodo/model"
)

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT,
		done        INTEGER NOT NULL DEFAULT 0,
		project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id   INTEGER REFERENCES tasks(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id);`,
	fmt.Sprintf(`INSERT OR IGNORE INTO projects (id, name) VALUES (%d, '%s');`, model.InboxProjectID, model.InboxProjectName),
}

func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		s.log.Info("schema migrated", "version", i+1, "path", s.path)
	}
	return nil
}
