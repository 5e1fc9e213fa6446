package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/store"
)

var taskColors = []string{"red", "blue", "green", "yellow", "magenta", "cyan"}

// taskColorCodes maps the stored color names to terminal colors.
var taskColorCodes = map[string]string{
	"red":     "#E94F37",
	"blue":    "#3498DB",
	"green":   "#2ECC71",
	"yellow":  "#F39C12",
	"magenta": "#9B59B6",
	"cyan":    "#2EC4B6",
}

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks         []store.Task
	cursor        int
	showCompleted bool
	confirming    bool // delete confirmation overlay

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formName  *string
	formDesc  *string
	formColor *string

	editingID int64

	currentTaskID *int64
}

func newTasksModel(s *store.Store) tasksModel {
	name, desc, color := "", "", taskColors[0]
	return tasksModel{
		store:     s,
		formName:  &name,
		formDesc:  &desc,
		formColor: &color,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type tasksDataMsg struct {
	tasks []store.Task
}

func (t tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, _ := t.store.ListTasks(t.showCompleted)
		return tasksDataMsg{tasks: tasks}
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		t.tasks = msg.tasks
		if t.cursor >= len(t.tasks) {
			t.cursor = max(0, len(t.tasks)-1)
		}
		return t, nil

	case tea.KeyMsg:
		if t.confirming {
			return t.updateConfirm(msg)
		}
		return t.updateList(msg)
	}
	return t, nil
}

func (t tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		if t.cursor < len(t.tasks)-1 {
			t.cursor++
		}
	case key.Matches(msg, keys.Enter):
		return t.selectCurrent()
	case key.Matches(msg, keys.Edit):
		if len(t.tasks) > 0 {
			return t.showEditForm()
		}
	case key.Matches(msg, keys.Complete):
		return t.toggleComplete()
	case key.Matches(msg, keys.Delete):
		if len(t.tasks) > 0 {
			t.confirming = true
		}
	case key.Matches(msg, keys.ShowAll):
		t.showCompleted = !t.showCompleted
		return t, t.refresh()
	}
	return t, nil
}

// selectCurrent marks the task under the cursor as the one work sessions are
// attributed to. Selecting the already-current task clears the selection.
func (t tasksModel) selectCurrent() (tasksModel, tea.Cmd) {
	if len(t.tasks) == 0 {
		return t, nil
	}
	task := t.tasks[t.cursor]

	if t.currentTaskID != nil && *t.currentTaskID == task.ID {
		t.currentTaskID = nil
		t.store.SetSetting("current_task_id", "")
		return t, func() tea.Msg {
			return currentTaskMsg{taskID: nil}
		}
	}

	id := task.ID
	t.currentTaskID = &id
	t.store.SetSetting("current_task_id", strconv.FormatInt(id, 10))
	return t, func() tea.Msg {
		return currentTaskMsg{taskID: &id, name: task.Name}
	}
}

func (t tasksModel) toggleComplete() (tasksModel, tea.Cmd) {
	if len(t.tasks) == 0 {
		return t, nil
	}
	task := t.tasks[t.cursor]
	if task.IsCompleted() {
		task.Uncomplete()
	} else {
		task.Complete()
	}
	if err := t.store.UpdateTask(&task); err != nil {
		return t, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return t, t.refresh()
}

func (t tasksModel) updateConfirm(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		t.confirming = false
		if t.cursor < len(t.tasks) {
			task := t.tasks[t.cursor]
			if err := t.store.DeleteTask(task.ID); err != nil {
				return t, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
			}
			var cmds []tea.Cmd
			if t.currentTaskID != nil && *t.currentTaskID == task.ID {
				t.currentTaskID = nil
				t.store.SetSetting("current_task_id", "")
				cmds = append(cmds, func() tea.Msg {
					return currentTaskMsg{taskID: nil}
				})
			}
			cmds = append(cmds, t.refresh())
			return t, tea.Batch(cmds...)
		}
	case "esc":
		t.confirming = false
	}
	return t, nil
}

func (t tasksModel) showNewForm() (tasksModel, tea.Cmd) {
	*t.formName = ""
	*t.formDesc = ""
	*t.formColor = taskColors[0]
	t.formType = "new"
	t.form = t.buildForm()
	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) showEditForm() (tasksModel, tea.Cmd) {
	task := t.tasks[t.cursor]
	*t.formName = task.Name
	*t.formDesc = task.Description
	*t.formColor = task.Color
	t.formType = "edit"
	t.editingID = task.ID
	t.form = t.buildForm()
	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) buildForm() *huh.Form {
	colorOptions := make([]huh.Option[string], len(taskColors))
	for i, c := range taskColors {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(taskColorCodes[c])).Render("●")
		colorOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", dot, c), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(t.formName),
			huh.NewInput().Title("Description").Value(t.formDesc),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(t.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		switch t.formType {
		case "new":
			if *t.formName != "" {
				task, err := t.store.CreateTask(*t.formName, *t.formDesc, *t.formColor)
				if err != nil {
					return t, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
				}
				return t, tea.Batch(t.refresh(), func() tea.Msg {
					return taskCreatedMsg{taskID: task.ID, name: task.Name}
				})
			}
		case "edit":
			if *t.formName != "" && t.cursor < len(t.tasks) {
				task := t.tasks[t.cursor]
				task.Name = *t.formName
				task.Description = *t.formDesc
				task.Color = *t.formColor
				t.store.UpdateTask(&task)
			}
		}
		return t, t.refresh()
	}

	return t, cmd
}

func (t tasksModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		if t.formType == "edit" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")
	if t.showCompleted {
		title = titleStyle.Render("Tasks (all)")
	}

	if len(t.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press t to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-28s %-10s %s", "", "Name", "Pomodoros", "Status"))
	rows = append(rows, header)

	for i, task := range t.tasks {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(taskColorCodes[task.Color])).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		status := ""
		if task.IsCompleted() {
			status = successStyle.Render("done")
		}
		marker := " "
		if t.currentTaskID != nil && *t.currentTaskID == task.ID {
			marker = highlightStyle.Render("▸")
		}

		row := style.Render(fmt.Sprintf("%s%s %-28s %-10d", cursor, colorDot, task.Name, task.PomodoroCount))
		rows = append(rows, row+" "+marker+" "+status)
	}

	if t.confirming && t.cursor < len(t.tasks) {
		rows = append(rows, "")
		rows = append(rows, errorStyle.Render(fmt.Sprintf("  Delete %q and its sessions? y: yes  esc: no", t.tasks[t.cursor].Name)))
	} else {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  enter: select  c: complete  m: edit  d: delete  a: show completed"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
