package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/pomo/internal/store"
)

// ToCSV writes one row per session. The task column is the task name, empty
// for sessions without a task.
func ToCSV(sessions []store.Session, tasks map[int64]*store.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Session ID", "Task", "Start Time", "Duration (min)", "Type", "Completed"}); err != nil {
		return err
	}

	for _, s := range sessions {
		taskName := ""
		if s.TaskID != nil {
			if t, ok := tasks[*s.TaskID]; ok {
				taskName = t.Name
			}
		}
		completed := "No"
		if s.Completed {
			completed = "Yes"
		}

		row := []string{
			fmt.Sprintf("%d", s.ID),
			taskName,
			s.StartTime.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", s.Duration/60),
			s.SessionType,
			completed,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
