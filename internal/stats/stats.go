// Package stats derives usage summaries from persisted sessions and tasks.
// Everything here is a pure function over caller-supplied slices; nothing
// touches storage, which keeps the package testable with literal fixtures.
package stats

import (
	"sort"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

// DailyStats summarizes one calendar day.
type DailyStats struct {
	Date              time.Time
	TotalPomodoros    int
	TotalDuration     int // seconds
	WorkSessions      int
	BreakSessions     int
	CompletedSessions int
	TasksWorkedOn     int
}

func (d DailyStats) TotalMinutes() int {
	return d.TotalDuration / 60
}

func (d DailyStats) TotalHours() float64 {
	return float64(d.TotalDuration) / 3600
}

// TaskStats summarizes one task over a session subset.
type TaskStats struct {
	Task          store.Task
	TotalSessions int
	TotalDuration int // seconds
	FirstSession  time.Time
	LastSession   time.Time
}

func (t TaskStats) TotalMinutes() int {
	return t.TotalDuration / 60
}

func (t TaskStats) AverageSessionDuration() int {
	if t.TotalSessions == 0 {
		return 0
	}
	return t.TotalDuration / t.TotalSessions
}

// PeriodStats summarizes an inclusive date range, with one DailyStats per
// calendar day in the range and one TaskStats per task that has at least
// one qualifying work session.
type PeriodStats struct {
	StartDate         time.Time
	EndDate           time.Time
	TotalPomodoros    int
	TotalDuration     int // seconds
	WorkSessions      int
	BreakSessions     int
	CompletedSessions int
	DailyStats        []DailyStats
	TaskStats         []TaskStats
}

func (p PeriodStats) TotalMinutes() int {
	return p.TotalDuration / 60
}

func (p PeriodStats) TotalHours() float64 {
	return float64(p.TotalDuration) / 3600
}

func (p PeriodStats) AveragePomodorosPerDay() float64 {
	days := int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
	if days <= 0 {
		return 0
	}
	return float64(p.TotalPomodoros) / float64(days)
}

// MostProductiveDay returns the daily entry with the most pomodoros, the
// first in date order on a tie, or nil when the period has no daily entries.
func (p PeriodStats) MostProductiveDay() *DailyStats {
	var best *DailyStats
	for i := range p.DailyStats {
		if best == nil || p.DailyStats[i].TotalPomodoros > best.TotalPomodoros {
			best = &p.DailyStats[i]
		}
	}
	return best
}

// TopTasks returns up to five task entries ordered by the task's persisted
// all-time pomodoro counter, not the period-local session count, so globally
// important tasks surface even in a narrow period.
func (p PeriodStats) TopTasks() []TaskStats {
	top := make([]TaskStats, len(p.TaskStats))
	copy(top, p.TaskStats)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Task.PomodoroCount > top[j].Task.PomodoroCount
	})
	if len(top) > 5 {
		top = top[:5]
	}
	return top
}

// Daily folds sessions whose start time falls within the calendar day of
// date, inclusive of both midnight and 23:59:59.
func Daily(sessions []store.Session, date time.Time) DailyStats {
	stats := DailyStats{Date: date}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, date.Location())

	taskIDs := make(map[int64]struct{})
	for _, s := range sessions {
		if s.StartTime.Before(dayStart) || s.StartTime.After(dayEnd) {
			continue
		}
		stats.TotalDuration += s.Duration

		if s.SessionType == store.SessionWork {
			stats.WorkSessions++
			// Interrupted work sessions still count as attempted pomodoros.
			stats.TotalPomodoros++
			if s.TaskID != nil {
				taskIDs[*s.TaskID] = struct{}{}
			}
		} else {
			stats.BreakSessions++
		}

		if s.Completed {
			stats.CompletedSessions++
		}
	}

	stats.TasksWorkedOn = len(taskIDs)
	return stats
}

// Period folds sessions whose start time falls within [start, end]
// inclusive. A 7-day range always yields exactly 7 daily entries, zero
// sessions or not.
func Period(sessions []store.Session, tasks []store.Task, start, end time.Time) PeriodStats {
	stats := PeriodStats{StartDate: start, EndDate: end}

	var inRange []store.Session
	for _, s := range sessions {
		if s.StartTime.Before(start) || s.StartTime.After(end) {
			continue
		}
		inRange = append(inRange, s)
	}

	for _, s := range inRange {
		stats.TotalDuration += s.Duration
		if s.SessionType == store.SessionWork {
			stats.WorkSessions++
			stats.TotalPomodoros++
		} else {
			stats.BreakSessions++
		}
		if s.Completed {
			stats.CompletedSessions++
		}
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		stats.DailyStats = append(stats.DailyStats, Daily(inRange, day))
	}

	// Group qualifying work sessions by task.
	byTask := make(map[int64][]store.Session)
	for _, s := range inRange {
		if s.TaskID != nil && s.SessionType == store.SessionWork {
			byTask[*s.TaskID] = append(byTask[*s.TaskID], s)
		}
	}

	for _, task := range tasks {
		taskSessions, ok := byTask[task.ID]
		if !ok {
			continue
		}
		ts := TaskStats{
			Task:          task,
			TotalSessions: len(taskSessions),
			FirstSession:  taskSessions[0].StartTime,
			LastSession:   taskSessions[0].StartTime,
		}
		for _, s := range taskSessions {
			ts.TotalDuration += s.Duration
			if s.StartTime.Before(ts.FirstSession) {
				ts.FirstSession = s.StartTime
			}
			if s.StartTime.After(ts.LastSession) {
				ts.LastSession = s.StartTime
			}
		}
		stats.TaskStats = append(stats.TaskStats, ts)
	}

	return stats
}

// Today returns daily stats for the current day.
func Today(sessions []store.Session) DailyStats {
	return Daily(sessions, time.Now())
}

// ThisWeek returns period stats for the current week, Monday through Sunday.
func ThisWeek(sessions []store.Session, tasks []store.Task) PeriodStats {
	now := time.Now()
	weekday := int(now.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	monday := now.AddDate(0, 0, -(weekday - 1))
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return Period(sessions, tasks, start, end)
}

// ThisMonth returns period stats for the current calendar month.
func ThisMonth(sessions []store.Session, tasks []store.Task) PeriodStats {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Period(sessions, tasks, start, end)
}
