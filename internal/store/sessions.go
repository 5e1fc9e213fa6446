package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateSession records a finished interval. The end time is set only for
// completed sessions; duration is the intended length in seconds either way.
func (s *Store) CreateSession(taskID *int64, duration int, sessionType string, completed bool) (*Session, error) {
	now := time.Now().UTC()
	var endTime any
	if completed {
		endTime = now.Format(time.RFC3339)
	}
	completedInt := 0
	if completed {
		completedInt = 1
	}

	res, err := s.db.Exec(
		`INSERT INTO sessions (task_id, start_time, end_time, duration, completed, session_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		taskID, now.Format(time.RFC3339), endTime, duration, completedInt, sessionType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

// GetSession returns nil (with a nil error) when no session has the given id.
func (s *Store) GetSession(id int64) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, task_id, start_time, end_time, duration, completed, session_type
		 FROM sessions WHERE id = ?`, id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return sess, nil
}

func (s *Store) ListSessionsForTask(taskID int64) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, task_id, start_time, end_time, duration, completed, session_type
		 FROM sessions WHERE task_id = ? ORDER BY start_time DESC`, taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions for task %d: %w", taskID, err)
	}
	return collectSessions(rows)
}

// ListAllSessions returns sessions newest-start-first. A limit of 0 means
// no limit.
func (s *Store) ListAllSessions(limit int) ([]Session, error) {
	query := `SELECT id, task_id, start_time, end_time, duration, completed, session_type
	 FROM sessions ORDER BY start_time DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return collectSessions(rows)
}

// GetSessionTotals returns all-time aggregate counts over the sessions table.
func (s *Store) GetSessionTotals() (SessionTotals, error) {
	var t SessionTotals
	var totalDuration sql.NullInt64
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN session_type = 'work' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(duration), 0)
		FROM sessions`,
	).Scan(&t.TotalSessions, &t.WorkSessions, &t.CompletedSessions, &totalDuration)
	if err != nil {
		return SessionTotals{}, fmt.Errorf("session totals: %w", err)
	}
	t.TotalDuration = totalDuration.Int64
	return t, nil
}

func collectSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (*Session, error) {
	sess := &Session{}
	var taskID sql.NullInt64
	var startTime string
	var endTime sql.NullString
	var completed int
	if err := row.Scan(&sess.ID, &taskID, &startTime, &endTime, &sess.Duration, &completed, &sess.SessionType); err != nil {
		return nil, err
	}
	if taskID.Valid {
		sess.TaskID = &taskID.Int64
	}
	sess.StartTime, _ = time.Parse(time.RFC3339, startTime)
	if endTime.Valid {
		ts, _ := time.Parse(time.RFC3339, endTime.String)
		sess.EndTime = &ts
	}
	sess.Completed = completed == 1
	return sess, nil
}
