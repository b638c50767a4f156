// Package store is the SQLite-backed task store. Besides the mutation
// methods it keeps a registry of feed subscribers and pushes a fresh
// full snapshot to them after every applied mutation, so the rest of
// the program only ever reacts to snapshots.
package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"wuttodo/internal/task"
)

type Store struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]*subscriber
	nextSub int
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, subs: make(map[int]*subscriber)}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	due_date TEXT NOT NULL,
	due_time TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	priority INTEGER NOT NULL DEFAULT 1,
	complete INTEGER NOT NULL DEFAULT 0,
	completed_at TEXT DEFAULT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);`
	_, err := s.db.Exec(ddl)
	return err
}

// Insert creates a task from a validated draft. The store assigns the
// id; new records start incomplete.
func (s *Store) Insert(ctx context.Context, userID string, d task.Draft) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, due_date, due_time, location, priority, complete, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?);`,
		id, userID, d.Title, d.Date, d.Time, d.Location, int(task.CoercePriority(d.Priority)), now)
	if err != nil {
		return "", err
	}
	s.notify(userID)
	return id, nil
}

// UpdateFields replaces the mutable fields only; completion state is
// never touched here.
func (s *Store) UpdateFields(ctx context.Context, userID, id string, d task.Draft) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, due_date = ?, due_time = ?, location = ?, priority = ?
		 WHERE user_id = ? AND id = ?;`,
		d.Title, d.Date, d.Time, d.Location, int(task.CoercePriority(d.Priority)), userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	s.notify(userID)
	return nil
}

// SetCompletion marks a task complete when completedAt is non-nil and
// recovers it when nil.
func (s *Store) SetCompletion(ctx context.Context, userID, id string, completedAt *time.Time) error {
	var (
		res sql.Result
		err error
	)
	if completedAt != nil {
		res, err = s.db.ExecContext(ctx,
			`UPDATE tasks SET complete = 1, completed_at = ? WHERE user_id = ? AND id = ?;`,
			completedAt.UTC().Format(time.RFC3339Nano), userID, id)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE tasks SET complete = 0, completed_at = NULL WHERE user_id = ? AND id = ?;`,
			userID, id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	s.notify(userID)
	return nil
}

// Delete removes a task. A missing id is a no-op: concurrent sweepers
// may have retired the record already.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?;`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.notify(userID)
	}
	return nil
}

// FetchTasks returns the user's full task collection in creation order.
func (s *Store) FetchTasks(userID string) ([]task.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, due_date, due_time, location, priority, complete, completed_at, created_at
		 FROM tasks WHERE user_id = ? ORDER BY created_at, id;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			t            task.Task
			priority     int
			completeInt  int
			completedStr sql.NullString
			createdStr   string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Date, &t.Time, &t.Location,
			&priority, &completeInt, &completedStr, &createdStr); err != nil {
			return nil, err
		}
		t.Priority = task.CoercePriority(priority)
		t.Complete = completeInt == 1
		if completedStr.Valid {
			if parsed, err := time.Parse(time.RFC3339Nano, completedStr.String); err == nil {
				t.CompletedAt = &parsed
			}
		}
		if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
			t.CreatedAt = created
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
