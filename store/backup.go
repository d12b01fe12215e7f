package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var errNoValidBackup = errors.New("no valid backup found")

// OpenWithRecovery opens the database like Open. When the file is not a
// usable SQLite database it is moved aside and the newest backup that passes
// an integrity check takes its place; without one a fresh database is
// created. The returned message describes any recovery for the user.
func OpenWithRecovery(ctx context.Context, path string, opts Options) (*Store, string, error) {
	s, err := Open(ctx, path, Options{Logger: opts.Logger})
	if err == nil {
		if err := s.check(ctx); err == nil {
			_ = s.Close()
			// Reopen with backups now that the file is known to be good.
			s, err = Open(ctx, path, opts)
			return s, "", err
		}
		_ = s.Close()
	} else if !isCorruptDBError(err) {
		return nil, "", err
	}

	corruptPath, err := moveCorruptFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("move corrupt database aside: %w", err)
	}

	msg := "Database was corrupt; started empty"
	backupPath, err := restoreLatestValidBackup(ctx, path)
	switch {
	case err == nil:
		msg = fmt.Sprintf("Database recovered from %s", filepath.Base(backupPath))
	case !errors.Is(err, errNoValidBackup):
		return nil, "", fmt.Errorf("inspect backups: %w", err)
	}
	if corruptPath != "" {
		msg += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
	}

	s, err = Open(ctx, path, Options{Logger: opts.Logger})
	if err != nil {
		return nil, "", err
	}
	s.log.Warn("database recovered", "path", path, "backup", backupPath, "corrupt", corruptPath)
	return s, msg, nil
}

func (s *Store) check(ctx context.Context) error {
	var result string
	if err := s.db.QueryRowContext(ctx, `PRAGMA quick_check`).Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check: %s", result)
	}
	return nil
}

// backup copies the database to path.bak and to a timestamped rotating copy,
// keeping the newest keep rotating copies. It returns the rotating copy's
// path, or "" when there is no database yet.
func backup(path string, keep int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}

	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return "", err
	}

	timestamp := time.Now().UTC().Format("20060102-150405.000000000")
	rotatingPath := fmt.Sprintf("%s.bak.%s", path, timestamp)
	if err := os.WriteFile(rotatingPath, data, 0o644); err != nil {
		return "", err
	}

	return rotatingPath, pruneRotatingBackups(path, keep)
}

func pruneRotatingBackups(path string, keep int) error {
	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}

	// Timestamps sort lexically.
	sort.Strings(files)
	for _, old := range files[:len(files)-keep] {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// restoreLatestValidBackup copies the newest backup that opens and passes
// an integrity check over path.
func restoreLatestValidBackup(ctx context.Context, path string) (string, error) {
	candidates, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return "", err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))
	if _, err := os.Stat(path + ".bak"); err == nil {
		candidates = append([]string{path + ".bak"}, candidates...)
	}

	for _, candidate := range candidates {
		if !validBackup(ctx, candidate) {
			continue
		}
		if err := copyFile(candidate, path); err != nil {
			return "", err
		}
		return candidate, nil
	}
	return "", errNoValidBackup
}

func validBackup(ctx context.Context, path string) bool {
	db, err := openDB(ctx, path)
	if err != nil {
		return false
	}
	defer db.Close()
	var result string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check`).Scan(&result); err != nil {
		return false
	}
	return result == "ok"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

// moveCorruptFile renames path and its WAL side files out of the way.
func moveCorruptFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	timestamp := time.Now().UTC().Format("20060102-150405")
	corruptPath := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s.corrupt-%s%s", name, timestamp, ext))
	if err := os.Rename(path, corruptPath); err != nil {
		return "", err
	}
	for _, side := range []string{"-wal", "-shm"} {
		if err := os.Rename(path+side, corruptPath+side); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return corruptPath, nil
}

func isCorruptDBError(err error) bool {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	switch sqlErr.Code() & 0xff {
	case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
		return true
	}
	return false
}
