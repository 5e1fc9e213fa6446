package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/stats"
	"github.com/sadopc/pomo/internal/store"
)

type statsMode int

const (
	statsToday statsMode = iota
	statsWeek
	statsMonth
)

var statsModeNames = []string{"Today", "This Week", "This Month"}

type statsModel struct {
	store  *store.Store
	width  int
	height int

	mode     statsMode
	sessions []store.Session
	tasks    []store.Task
	daily    stats.DailyStats
	period   stats.PeriodStats

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	sessions []store.Session
	tasks    []store.Task
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		sessions, _ := m.store.ListAllSessions(0)
		tasks, _ := m.store.ListTasks(true)
		return statsDataMsg{sessions: sessions, tasks: tasks}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.sessions = msg.sessions
		m.tasks = msg.tasks
		m.recompute()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if m.mode > statsToday {
				m.mode--
				m.recompute()
			}
			return m, nil
		case key.Matches(msg, keys.Right):
			if m.mode < statsMonth {
				m.mode++
				m.recompute()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *statsModel) recompute() {
	switch m.mode {
	case statsToday:
		m.daily = stats.Today(m.sessions)
	case statsWeek:
		m.period = stats.ThisWeek(m.sessions, m.tasks)
		m.buildChart()
	case statsMonth:
		m.period = stats.ThisMonth(m.sessions, m.tasks)
		m.buildChart()
	}
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	labelFormat := "Mon 02"
	if m.mode == statsMonth {
		labelFormat = "02"
	}

	var bars []barchart.BarData
	for _, day := range m.period.DailyStats {
		style := timerWorkStyle
		if day.TotalPomodoros == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Date.Format(labelFormat),
			Values: []barchart.BarValue{
				{Name: "pomodoros", Value: float64(day.TotalPomodoros), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	var tabs []string
	for i, name := range statsModeNames {
		if statsMode(i) == m.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistics"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...), "  ",
		mutedStyle.Render(m.dateRangeLabel()),
	)

	var body string
	if m.mode == statsToday {
		body = m.renderToday()
	} else {
		body = m.renderPeriod()
	}

	nav := mutedStyle.Render("  ←/→: change period")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (m statsModel) renderToday() string {
	d := m.daily
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Pomodoros", fmt.Sprintf("%d", d.TotalPomodoros)),
		statCard("Focus Time", formatFocus(d.TotalDuration)),
		statCard("Work / Breaks", fmt.Sprintf("%d / %d", d.WorkSessions, d.BreakSessions)),
		statCard("Tasks", fmt.Sprintf("%d", d.TasksWorkedOn)),
	)

	detail := mutedStyle.Render(fmt.Sprintf("  %d of %d sessions completed",
		d.CompletedSessions, d.WorkSessions+d.BreakSessions))

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", detail)
}

func (m statsModel) renderPeriod() string {
	p := m.period

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Pomodoros", fmt.Sprintf("%d", p.TotalPomodoros)),
		statCard("Focus Time", formatFocus(p.TotalDuration)),
		statCard("Avg / Day", fmt.Sprintf("%.1f", p.AveragePomodorosPerDay())),
	)

	best := ""
	if day := p.MostProductiveDay(); day != nil && day.TotalPomodoros > 0 {
		best = highlightStyle.Render(fmt.Sprintf("  Most productive: %s (%d pomodoros)",
			day.Date.Format("Mon Jan 02"), day.TotalPomodoros))
	}

	sections := []string{cards, "", m.chart.View()}
	if best != "" {
		sections = append(sections, best)
	}
	if table := m.renderTopTasks(); table != "" {
		sections = append(sections, "", table)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m statsModel) renderTopTasks() string {
	top := m.period.TopTasks()
	if len(top) == 0 {
		return mutedStyle.Render("  No task activity in this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %10s %10s %8s", "Task", "Sessions", "Time", "Total")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(m.width-10, 58))))

	for _, ts := range top {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(taskColorCodes[ts.Task.Color])).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-26s %10d %10s %8d",
			colorDot, ts.Task.Name, ts.TotalSessions, formatFocus(ts.TotalDuration), ts.Task.PomodoroCount,
		))
	}

	return strings.Join(rows, "\n")
}

func statCard(label, value string) string {
	return panelStyle.Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			highlightStyle.Bold(true).Render(value),
			mutedStyle.Render(label),
		),
	)
}

func (m statsModel) dateRangeLabel() string {
	if m.mode == statsToday {
		return time.Now().Format("Mon Jan 02")
	}
	return fmt.Sprintf("%s — %s",
		m.period.StartDate.Format("Jan 02"),
		m.period.EndDate.Format("Jan 02, 2006"))
}
