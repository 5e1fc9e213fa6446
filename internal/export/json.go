package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/stats"
	"github.com/sadopc/pomo/internal/store"
)

type jsonExport struct {
	ExportDate string        `json:"export_date"`
	Summary    jsonSummary   `json:"summary"`
	Tasks      []jsonTask    `json:"tasks"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSummary struct {
	TotalTasks     int `json:"total_tasks"`
	TotalSessions  int `json:"total_sessions"`
	WeekPomodoros  int `json:"week_pomodoros"`
	MonthPomodoros int `json:"month_pomodoros"`
}

type jsonTask struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Pomodoros   int    `json:"pomodoros"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

type jsonSession struct {
	ID          int64  `json:"id"`
	TaskID      *int64 `json:"task_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time,omitempty"`
	Duration    int    `json:"duration"`
	Completed   bool   `json:"completed"`
	SessionType string `json:"session_type"`
}

// ToJSON writes the full task and session lists plus summary counts for the
// current week and month.
func ToJSON(sessions []store.Session, tasks []store.Task, path string) error {
	week := stats.ThisWeek(sessions, tasks)
	month := stats.ThisMonth(sessions, tasks)

	doc := jsonExport{
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Summary: jsonSummary{
			TotalTasks:     len(tasks),
			TotalSessions:  len(sessions),
			WeekPomodoros:  week.TotalPomodoros,
			MonthPomodoros: month.TotalPomodoros,
		},
	}

	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, jsonTask{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Pomodoros:   t.PomodoroCount,
			Completed:   t.IsCompleted(),
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
	}

	for _, s := range sessions {
		endStr := ""
		if s.EndTime != nil {
			endStr = s.EndTime.Format(time.RFC3339)
		}
		doc.Sessions = append(doc.Sessions, jsonSession{
			ID:          s.ID,
			TaskID:      s.TaskID,
			StartTime:   s.StartTime.Format(time.RFC3339),
			EndTime:     endStr,
			Duration:    s.Duration,
			Completed:   s.Completed,
			SessionType: s.SessionType,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
