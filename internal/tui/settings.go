package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/timer"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	workDuration  *string
	shortBreak    *string
	longBreak     *string
	pomodoroCount *string
	soundEnabled  *bool
	theme         *string
}

func newSettingsModel(s *store.Store) settingsModel {
	wd, sb, lb, pc, th := "", "", "", "", ""
	snd := true
	return settingsModel{
		store:         s,
		workDuration:  &wd,
		shortBreak:    &sb,
		longBreak:     &lb,
		pomodoroCount: &pc,
		soundEnabled:  &snd,
		theme:         &th,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.ListSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func validateMinutes(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.New("enter a whole number of minutes")
	}
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func validateCount(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.workDuration = s.getVal("work_duration", "25")
	*s.shortBreak = s.getVal("short_break_duration", "5")
	*s.longBreak = s.getVal("long_break_duration", "15")
	*s.pomodoroCount = s.getVal("pomodoros_until_long_break", "4")
	*s.soundEnabled = s.getVal("sound_enabled", "true") == "true"
	*s.theme = s.getVal("theme", "default")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work duration (min)").Value(s.workDuration).Validate(validateMinutes),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(validateMinutes),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(validateMinutes),
			huh.NewInput().Title("Pomodoros before long break").Value(s.pomodoroCount).Validate(validateCount),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewConfirm().Title("Sound notifications").Value(s.soundEnabled),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Default (dark)", "default"),
					huh.NewOption("Light", "light"),
				).Value(s.theme),
		).Title("Appearance"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveSettings()
	}

	return s, cmd
}

// saveSettings validates the collected values as a whole config before
// persisting anything, so a bad form leaves the stored settings untouched.
func (s settingsModel) saveSettings() tea.Cmd {
	cfg := timer.Config{
		WorkDuration:            atoiOr(*s.workDuration, 0),
		ShortBreakDuration:      atoiOr(*s.shortBreak, 0),
		LongBreakDuration:       atoiOr(*s.longBreak, 0),
		PomodorosUntilLongBreak: atoiOr(*s.pomodoroCount, 0),
	}
	if err := cfg.Validate(); err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Invalid settings: %v", err), isError: true}
		}
	}

	s.store.SetSetting("work_duration", strconv.Itoa(cfg.WorkDuration))
	s.store.SetSetting("short_break_duration", strconv.Itoa(cfg.ShortBreakDuration))
	s.store.SetSetting("long_break_duration", strconv.Itoa(cfg.LongBreakDuration))
	s.store.SetSetting("pomodoros_until_long_break", strconv.Itoa(cfg.PomodorosUntilLongBreak))
	s.store.SetSetting("sound_enabled", strconv.FormatBool(*s.soundEnabled))
	s.store.SetSetting("theme", *s.theme)

	sound := *s.soundEnabled
	theme := *s.theme
	return tea.Batch(s.refresh(), func() tea.Msg {
		return configChangedMsg{cfg: cfg, soundEnabled: sound, theme: theme}
	})
}

func (s settingsModel) getVal(k, fallback string) string {
	v, ok, err := s.store.GetSetting(k)
	if err != nil || !ok {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		if setting.Key == "current_task_id" {
			continue
		}
		label := lipgloss.NewStyle().Width(28).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "work_duration", "short_break_duration", "long_break_duration":
		if _, err := strconv.Atoi(v); err == nil {
			return v + " min"
		}
	case "sound_enabled":
		if v == "true" {
			return "on"
		}
		return "off"
	}
	return v
}

func atoiOr(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}
