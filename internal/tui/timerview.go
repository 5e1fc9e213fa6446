package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/timer"
)

// timerModel renders the countdown view. All timer state lives in the shared
// engine; this model only holds presentation concerns.
type timerModel struct {
	engine *timer.Timer
	cfg    timer.Config
	width  int
	height int

	currentTaskName string
}

func newTimerModel(engine *timer.Timer, cfg timer.Config) timerModel {
	return timerModel{engine: engine, cfg: cfg}
}

func (m *timerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m timerModel) view() string {
	w := m.width - 4

	state := m.engine.State()

	var timeDisplay, label string
	display := timer.FormatTime(m.engine.TimeRemaining())

	switch state {
	case timer.StateWorking:
		timeDisplay = timerWorkStyle.Width(w - 6).Render(display)
		label = timerWorkStyle.Render(stateLabel(state))
	case timer.StateShortBreak, timer.StateLongBreak:
		timeDisplay = timerBreakStyle.Width(w - 6).Render(display)
		label = timerBreakStyle.Render(stateLabel(state))
	case timer.StatePaused:
		timeDisplay = timerPausedStyle.Width(w - 6).Render(display)
		label = timerPausedStyle.Render(stateLabel(state))
	default:
		// Idle shows the configured work duration as a preview.
		timeDisplay = timerIdleStyle.Width(w - 6).Render(timer.FormatTime(m.cfg.WorkDuration * 60))
		label = mutedStyle.Render(stateLabel(state))
	}

	task := mutedStyle.Render("No task selected")
	if m.currentTaskName != "" {
		task = highlightStyle.Render("Task: " + m.currentTaskName)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Pomodoro"),
		"",
		timeDisplay,
		label,
		"",
		m.renderProgress(),
		"",
		task,
	)

	var controls string
	switch state {
	case timer.StateIdle:
		controls = mutedStyle.Render("space: start  n: next  t: new task")
	case timer.StatePaused:
		controls = mutedStyle.Render("space: resume  x: stop  r: reset")
	default:
		controls = mutedStyle.Render("space: pause  n: skip ahead  x: stop")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

// renderProgress draws one dot per pomodoro in the current cycle, plus the
// running total for the session.
func (m timerModel) renderProgress() string {
	target := m.cfg.PomodorosUntilLongBreak
	completed := m.engine.CompletedPomodoros()
	inCycle := completed % target

	var parts []string
	for i := 0; i < target; i++ {
		switch {
		case i < inCycle:
			parts = append(parts, successStyle.Render("●"))
		case i == inCycle && m.engine.State() == timer.StateWorking:
			parts = append(parts, timerWorkStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d completed", completed))
	return progress + counter
}
