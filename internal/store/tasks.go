package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) CreateTask(name, description, color string) (*Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (name, description, created_at, color) VALUES (?, ?, ?, ?)`,
		name, description, now, color,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

// GetTask returns nil (with a nil error) when no task has the given id.
func (s *Store) GetTask(id int64) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, created_at, completed_at, color, pomodoro_count
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// ListTasks returns tasks ordered newest-created-first.
func (s *Store) ListTasks(includeCompleted bool) ([]Task, error) {
	query := `SELECT id, name, description, created_at, completed_at, color, pomodoro_count FROM tasks`
	if !includeCompleted {
		query += ` WHERE completed_at IS NULL`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTask overwrites all mutable fields of the task by id. Updating a
// task that was never persisted is a programming error.
func (s *Store) UpdateTask(t *Task) error {
	if t.ID == 0 {
		return errors.New("cannot update task without id")
	}
	var completedAt any
	if t.CompletedAt != nil {
		completedAt = t.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`UPDATE tasks SET name = ?, description = ?, completed_at = ?, color = ?, pomodoro_count = ? WHERE id = ?`,
		t.Name, t.Description, completedAt, t.Color, t.PomodoroCount, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return nil
}

// DeleteTask removes the task; its sessions go with it via the cascade.
func (s *Store) DeleteTask(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func (s *Store) IncrementTaskPomodoro(id int64) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET pomodoro_count = pomodoro_count + 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("increment task %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var createdAt string
	var completedAt sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &createdAt, &completedAt, &t.Color, &t.PomodoroCount); err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if completedAt.Valid {
		ts, _ := time.Parse(time.RFC3339, completedAt.String)
		t.CompletedAt = &ts
	}
	return t, nil
}
