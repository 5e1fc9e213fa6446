package store

import "time"

// Session type values, as persisted in sessions.session_type.
const (
	SessionWork       = "work"
	SessionShortBreak = "short_break"
	SessionLongBreak  = "long_break"
)

// Task is a unit of work the user tracks pomodoros against.
type Task struct {
	ID            int64
	Name          string
	Description   string
	CreatedAt     time.Time
	CompletedAt   *time.Time
	Color         string
	PomodoroCount int
}

// IsCompleted reports whether the task has a completion timestamp.
func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// Complete marks the task completed. Completing an already-completed task
// is a no-op, so the original completion time is preserved.
func (t *Task) Complete() {
	if t.CompletedAt == nil {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}
}

// Uncomplete clears the completion timestamp.
func (t *Task) Uncomplete() {
	t.CompletedAt = nil
}

// Session is one finished (or abandoned) timer interval. Sessions are
// written once and never updated; Duration is the intended length, not
// necessarily EndTime - StartTime.
type Session struct {
	ID          int64
	TaskID      *int64
	StartTime   time.Time
	EndTime     *time.Time
	Duration    int // seconds
	Completed   bool
	SessionType string
}

// ActualDuration returns the elapsed wall-clock seconds when the session
// has an end time, falling back to the intended duration otherwise.
func (s *Session) ActualDuration() int {
	if s.EndTime != nil {
		return int(s.EndTime.Sub(s.StartTime).Seconds())
	}
	return s.Duration
}

type Setting struct {
	Key   string
	Value string
}

// SessionTotals is a coarse all-time aggregate over the sessions table.
type SessionTotals struct {
	TotalSessions     int
	WorkSessions      int
	CompletedSessions int
	TotalDuration     int64
}
