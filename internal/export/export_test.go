package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

func sampleData() ([]store.Session, []store.Task) {
	now := time.Now()
	end := now
	tid := int64(1)

	sessions := []store.Session{
		{
			ID:          1,
			TaskID:      &tid,
			StartTime:   time.Date(2024, 4, 10, 9, 30, 0, 0, time.UTC),
			EndTime:     &end,
			Duration:    1500,
			Completed:   true,
			SessionType: store.SessionWork,
		},
		{
			ID:          2,
			TaskID:      nil, // break, no task
			StartTime:   time.Date(2024, 4, 10, 9, 55, 0, 0, time.UTC),
			EndTime:     &end,
			Duration:    300,
			Completed:   true,
			SessionType: store.SessionShortBreak,
		},
		{
			ID:          3,
			TaskID:      &tid,
			StartTime:   time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC),
			EndTime:     nil, // interrupted
			Duration:    1500,
			Completed:   false,
			SessionType: store.SessionWork,
		},
	}

	tasks := []store.Task{
		{ID: 1, Name: "Deep work", Description: "morning block", Color: "red", PomodoroCount: 12, CreatedAt: now},
	}

	return sessions, tasks
}

func taskLookup(tasks []store.Task) map[int64]*store.Task {
	m := make(map[int64]*store.Task, len(tasks))
	for i := range tasks {
		m[tasks[i].ID] = &tasks[i]
	}
	return m
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	sessions, tasks := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sessions, taskLookup(tasks), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Session ID", "Task", "Start Time", "Duration (min)", "Type", "Completed"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "1" {
		t.Fatalf("Session ID = %q, want 1", row[0])
	}
	if row[1] != "Deep work" {
		t.Fatalf("Task = %q, want Deep work", row[1])
	}
	if row[2] != "2024-04-10 09:30:00" {
		t.Fatalf("Start Time = %q", row[2])
	}
	if row[3] != "25" {
		t.Fatalf("Duration (min) = %q, want 25", row[3])
	}
	if row[4] != "work" {
		t.Fatalf("Type = %q, want work", row[4])
	}
	if row[5] != "Yes" {
		t.Fatalf("Completed = %q, want Yes", row[5])
	}

	// Break session has an empty task column.
	if records[2][1] != "" {
		t.Fatalf("break task column = %q, want empty", records[2][1])
	}

	// Interrupted session is marked No.
	if records[3][5] != "No" {
		t.Fatalf("interrupted Completed = %q, want No", records[3][5])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	sessions, tasks := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sessions, tasks, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		ExportDate string `json:"export_date"`
		Summary    struct {
			TotalTasks     int `json:"total_tasks"`
			TotalSessions  int `json:"total_sessions"`
			WeekPomodoros  int `json:"week_pomodoros"`
			MonthPomodoros int `json:"month_pomodoros"`
		} `json:"summary"`
		Tasks []struct {
			ID        int64  `json:"id"`
			Name      string `json:"name"`
			Pomodoros int    `json:"pomodoros"`
			Completed bool   `json:"completed"`
		} `json:"tasks"`
		Sessions []struct {
			ID          int64  `json:"id"`
			TaskID      *int64 `json:"task_id"`
			Duration    int    `json:"duration"`
			Completed   bool   `json:"completed"`
			SessionType string `json:"session_type"`
		} `json:"sessions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}

	if doc.ExportDate == "" {
		t.Fatal("export_date should be set")
	}
	if doc.Summary.TotalTasks != 1 || doc.Summary.TotalSessions != 3 {
		t.Fatalf("summary = %+v", doc.Summary)
	}

	if len(doc.Tasks) != 1 || doc.Tasks[0].Name != "Deep work" || doc.Tasks[0].Pomodoros != 12 {
		t.Fatalf("tasks = %+v", doc.Tasks)
	}

	if len(doc.Sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(doc.Sessions))
	}
	if doc.Sessions[1].TaskID != nil {
		t.Fatal("break session task_id should be null")
	}
	if doc.Sessions[2].Completed {
		t.Fatal("interrupted session should not be completed")
	}
	if doc.Sessions[0].SessionType != "work" {
		t.Fatalf("session type = %q", doc.Sessions[0].SessionType)
	}
}

func TestToCSVEmptySessionList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}
