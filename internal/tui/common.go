package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/pomo/internal/timer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// currentTaskMsg selects the task attributed to subsequent work sessions.
// A nil taskID clears the selection.
type currentTaskMsg struct {
	taskID *int64
	name   string
}

// configChangedMsg carries freshly saved settings back to the app so the
// engine can be rebuilt.
type configChangedMsg struct {
	cfg          timer.Config
	soundEnabled bool
	theme        string
}

type taskCreatedMsg struct {
	taskID int64
	name   string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(secs int) string {
	return fmt.Sprintf("%.1fh", float64(secs)/3600)
}

// formatFocus renders a duration as "2h 05m" (or "45m" under an hour).
func formatFocus(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func stateLabel(s timer.State) string {
	switch s {
	case timer.StateWorking:
		return "WORK"
	case timer.StateShortBreak:
		return "SHORT BREAK"
	case timer.StateLongBreak:
		return "LONG BREAK"
	case timer.StatePaused:
		return "PAUSED"
	}
	return "READY"
}
