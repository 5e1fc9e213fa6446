package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/export"
	"github.com/sadopc/pomo/internal/sound"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/timer"
)

// sessionEvent captures a completed session until the next Update persists
// it. The engine callback fires inside Tick, outside the Elm loop, so the
// payload is parked in a shared inbox rather than sent as a message.
type sessionEvent struct {
	sessionType timer.SessionType
	duration    int
	taskID      *int64
}

type completionInbox struct {
	event *sessionEvent
}

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	engine   *timer.Timer
	notifier *sound.Notifier
	inbox    *completionInbox
	cfg      timer.Config

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timerView timerModel
	tasks     tasksModel
	stats     statsModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	cfg := loadConfig(s)
	engine := timer.New(cfg)

	inbox := &completionInbox{}
	engine.OnSessionComplete = func(st timer.SessionType, duration int, taskID *int64) {
		inbox.event = &sessionEvent{sessionType: st, duration: duration, taskID: taskID}
	}

	notifier := sound.NewNotifier(os.Stdout)
	if v, ok, _ := s.GetSetting("sound_enabled"); ok {
		notifier.SetEnabled(v == "true")
	}
	if v, ok, _ := s.GetSetting("theme"); ok {
		applyTheme(v)
	}

	app := App{
		store:      s,
		engine:     engine,
		notifier:   notifier,
		inbox:      inbox,
		cfg:        cfg,
		activeView: viewTimer,
		timerView:  newTimerModel(engine, cfg),
		tasks:      newTasksModel(s),
		stats:      newStatsModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
	app.restoreCurrentTask()
	return app
}

// loadConfig reads the timer durations from settings, falling back to the
// defaults when a value is missing, unparsable, or invalid as a whole.
func loadConfig(s *store.Store) timer.Config {
	def := timer.DefaultConfig()
	cfg := timer.Config{
		WorkDuration:            settingInt(s, "work_duration", def.WorkDuration),
		ShortBreakDuration:      settingInt(s, "short_break_duration", def.ShortBreakDuration),
		LongBreakDuration:       settingInt(s, "long_break_duration", def.LongBreakDuration),
		PomodorosUntilLongBreak: settingInt(s, "pomodoros_until_long_break", def.PomodorosUntilLongBreak),
	}
	if err := cfg.Validate(); err != nil {
		return def
	}
	return cfg
}

func settingInt(s *store.Store, key string, fallback int) int {
	v, ok, err := s.GetSetting(key)
	if err != nil || !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// restoreCurrentTask re-selects the task that was current when the app last
// ran. A stale id (task deleted since) clears the setting.
func (a *App) restoreCurrentTask() {
	v, ok, _ := a.store.GetSetting("current_task_id")
	if !ok || v == "" {
		return
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return
	}
	task, err := a.store.GetTask(id)
	if err != nil || task == nil {
		a.store.SetSetting("current_task_id", "")
		return
	}
	a.engine.SetCurrentTask(&task.ID)
	a.timerView.currentTaskName = task.Name
	a.tasks.currentTaskID = &task.ID
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.tasks.refresh(),
		a.stats.refresh(),
		a.settings.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timerView.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form, confirm), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Start):
			return a.toggleTimer()
		case key.Matches(msg, keys.Next):
			a.engine.StartNextSession()
			a.notifier.PlaySessionStart()
			a.status = stateLabel(a.engine.State()) + " session started"
			return a, nil
		case key.Matches(msg, keys.Stop):
			if a.engine.State() != timer.StateIdle {
				a.engine.Stop()
				a.status = "Timer stopped"
			}
			return a, nil
		case key.Matches(msg, keys.Reset):
			a.engine.Reset()
			a.status = "Timer reset"
			return a, nil
		case key.Matches(msg, keys.NewTask):
			a.activeView = viewTasks
			var cmd tea.Cmd
			a.tasks, cmd = a.tasks.showNewForm()
			return a, cmd
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, a.tasks.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		if a.engine.Tick() {
			if cmd := a.handleSessionComplete(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case currentTaskMsg:
		a.engine.SetCurrentTask(msg.taskID)
		a.timerView.currentTaskName = msg.name
		if msg.taskID == nil {
			a.status = "Task selection cleared"
		} else {
			a.status = "Working on: " + msg.name
		}
		return a, nil

	case taskCreatedMsg:
		a.status = fmt.Sprintf("Task %q created", msg.name)
		return a, nil

	case configChangedMsg:
		a.cfg = msg.cfg
		a.engine.SetConfig(msg.cfg)
		a.timerView.cfg = msg.cfg
		a.notifier.SetEnabled(msg.soundEnabled)
		applyTheme(msg.theme)
		a.status = "Settings saved"
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// toggleTimer starts a work session from idle, otherwise pauses or resumes.
func (a App) toggleTimer() (tea.Model, tea.Cmd) {
	switch a.engine.State() {
	case timer.StateIdle:
		a.engine.StartWorkSession()
		a.notifier.PlaySessionStart()
		a.status = "Work session started"
	case timer.StatePaused:
		a.engine.Resume()
		a.status = "Resumed"
	default:
		a.engine.Pause()
		a.status = "Paused"
	}
	return a, nil
}

// handleSessionComplete persists the finished session, bumps the task
// counter for attributed work, and rings the bell. Persistence happens
// synchronously so the record exists before the next frame renders.
func (a *App) handleSessionComplete() tea.Cmd {
	ev := a.inbox.event
	a.inbox.event = nil
	if ev == nil {
		return nil
	}

	if _, err := a.store.CreateSession(ev.taskID, ev.duration, string(ev.sessionType), true); err != nil {
		a.status = fmt.Sprintf("Error saving session: %v", err)
		return nil
	}

	if ev.sessionType == timer.SessionWork {
		if ev.taskID != nil {
			if err := a.store.IncrementTaskPomodoro(*ev.taskID); err != nil {
				a.status = fmt.Sprintf("Error updating task: %v", err)
				return a.tasks.refresh()
			}
		}
		a.notifier.PlayWorkComplete()
		a.status = "Work session complete — time for a break"
	} else {
		a.notifier.PlayBreakComplete()
		a.status = "Break over — back to work"
	}

	return tea.Batch(a.tasks.refresh(), a.stats.refresh())
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive || a.tasks.confirming
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTasks:
		return a.tasks.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timerView.view()
	case viewTasks:
		content = a.tasks.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("pomo")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator, visible from any view.
	timerInfo := ""
	switch state := a.engine.State(); {
	case state == timer.StatePaused:
		timerInfo = warningStyle.Render(" ⏸ " + timer.FormatTime(a.engine.TimeRemaining()))
	case state.IsActive():
		style := successStyle
		if state == timer.StateWorking {
			style = timerWorkStyle
		}
		timerInfo = style.Render(" ● " + timer.FormatTime(a.engine.TimeRemaining()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		sessions, err := a.store.ListAllSessions(0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		tasks, err := a.store.ListTasks(true)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			lookup := make(map[int64]*store.Task, len(tasks))
			for i := range tasks {
				lookup[tasks[i].ID] = &tasks[i]
			}
			path = filepath.Join(home, fmt.Sprintf("pomo-export-%s.csv", dateStr))
			if err := export.ToCSV(sessions, lookup, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("pomo-export-%s.json", dateStr))
			if err := export.ToJSON(sessions, tasks, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
