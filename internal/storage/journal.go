package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration

	"worktimer/internal/core/clock"
	"worktimer/internal/core/model"
)

const journalFileName = "journal.db"

// Journal errors.
var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrEmptyTitle   = errors.New("todo title is empty")
)

// Journal stores the todo list and the history of timed work segments.
type Journal struct {
	db    *sql.DB
	mu    sync.Mutex
	clock clock.Clock
}

// JournalPath returns the database location inside dir.
func JournalPath(dir string) string {
	return filepath.Join(dir, journalFileName)
}

// OpenJournal opens or creates the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db, clock: clock.System}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			done       INTEGER NOT NULL DEFAULT 0,
			created_ms INTEGER NOT NULL,
			updated_ms INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS segments (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			started_ms  INTEGER NOT NULL,
			ended_ms    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_segments_started ON segments(started_ms);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (journal *Journal) Close() error {
	return journal.db.Close()
}

// AddTodo appends a todo with the given title.
func (journal *Journal) AddTodo(title string) (model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Todo{}, ErrEmptyTitle
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()

	now := journal.clock.Now()
	result, err := journal.db.Exec(`
		INSERT INTO todos (title, done, created_ms, updated_ms) VALUES (?, 0, ?, ?)
	`, title, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return model.Todo{}, fmt.Errorf("inserting todo: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("reading todo id: %w", err)
	}

	created := time.UnixMilli(now.UnixMilli())
	return model.Todo{ID: id, Title: title, CreatedAt: created, UpdatedAt: created}, nil
}

// ListTodos returns open todos first, each group in creation order.
func (journal *Journal) ListTodos() ([]model.Todo, error) {
	journal.mu.Lock()
	defer journal.mu.Unlock()

	rows, err := journal.db.Query(`
		SELECT id, title, done, created_ms, updated_ms FROM todos ORDER BY done, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var (
			todo               model.Todo
			done               int
			createdMs, updated int64
		)
		if err := rows.Scan(&todo.ID, &todo.Title, &done, &createdMs, &updated); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		todo.Done = done != 0
		todo.CreatedAt = time.UnixMilli(createdMs)
		todo.UpdatedAt = time.UnixMilli(updated)
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

// SetTodoDone marks a todo as done or open.
func (journal *Journal) SetTodoDone(id int64, done bool) error {
	doneValue := 0
	if done {
		doneValue = 1
	}
	return journal.updateTodo(`UPDATE todos SET done = ?, updated_ms = ? WHERE id = ?`, doneValue, id)
}

// RenameTodo replaces the title of a todo.
func (journal *Journal) RenameTodo(id int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	return journal.updateTodo(`UPDATE todos SET title = ?, updated_ms = ? WHERE id = ?`, title, id)
}

// DeleteTodo removes a todo.
func (journal *Journal) DeleteTodo(id int64) error {
	journal.mu.Lock()
	defer journal.mu.Unlock()

	result, err := journal.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return requireAffected(result, id)
}

func (journal *Journal) updateTodo(query string, value any, id int64) error {
	journal.mu.Lock()
	defer journal.mu.Unlock()

	result, err := journal.db.Exec(query, value, journal.clock.Now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	return requireAffected(result, id)
}

func requireAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrTodoNotFound, id)
	}
	return nil
}

// RecordSegment stores one running interval of the work timer.
func (journal *Journal) RecordSegment(start, end time.Time) error {
	if !end.After(start) {
		return nil
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()

	_, err := journal.db.Exec(`
		INSERT INTO segments (started_ms, ended_ms) VALUES (?, ?)
	`, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting segment: %w", err)
	}
	return nil
}

// DailyTotals returns the tracked time of the `days` calendar days ending with
// the day containing `until`, oldest first. A segment counts toward the day it
// started on, in until's location.
func (journal *Journal) DailyTotals(until time.Time, days int) ([]model.DailyTotal, error) {
	if days <= 0 {
		return nil, nil
	}

	location := until.Location()
	lastDay := startOfDay(until)
	firstDay := lastDay.AddDate(0, 0, -(days - 1))
	end := lastDay.AddDate(0, 0, 1)

	totals := make([]model.DailyTotal, days)
	index := make(map[int64]int, days)
	for i := range totals {
		day := firstDay.AddDate(0, 0, i)
		totals[i].Day = day
		index[day.Unix()] = i
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()

	rows, err := journal.db.Query(`
		SELECT started_ms, ended_ms FROM segments
		WHERE started_ms >= ? AND started_ms < ?
	`, firstDay.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("querying segments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var startedMs, endedMs int64
		if err := rows.Scan(&startedMs, &endedMs); err != nil {
			return nil, fmt.Errorf("scanning segment: %w", err)
		}
		started := time.UnixMilli(startedMs).In(location)
		if i, ok := index[startOfDay(started).Unix()]; ok {
			totals[i].Total += time.Duration(endedMs-startedMs) * time.Millisecond
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}
	return totals, nil
}

func startOfDay(instant time.Time) time.Time {
	year, month, day := instant.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, instant.Location())
}
