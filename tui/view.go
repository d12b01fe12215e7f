package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"twodo/app"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	viewW := m.viewportWidth()
	title := lipgloss.NewStyle().Bold(true).Render("twodo")
	summary := "focus: " + m.core.Mode().String()
	if p := m.core.SelectedProject(); p != nil {
		summary = "project: " + p.Name + " • " + summary
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		title,
		lipgloss.NewStyle().Foreground(colorMuted).Render("  "+truncate(summary, viewW-7)),
	)

	// Border takes two columns and two rows.
	innerW := viewW - 2
	if innerW < 20 {
		innerW = 20
	}
	panelH := m.height - 4
	if panelH < 8 {
		panelH = 8
	}
	innerH := panelH - 2

	const paneGap = 1
	leftW, rightW := m.paneWidths(innerW, paneGap)
	split := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderProjectsPanel(leftW, innerH),
		lipgloss.NewStyle().Foreground(colorFrame).Render(strings.Repeat("│\n", innerH-1)+"│"),
		m.renderTasksPanel(rightW, innerH),
	)

	frameColor := colorFrame
	if !m.popupOpen() {
		frameColor = colorActive
	}
	panes := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frameColor).
		Width(innerW).
		Height(innerH).
		Render(split)

	if m.popupOpen() {
		panes = lipgloss.Place(viewW, panelH, lipgloss.Center, lipgloss.Center, m.renderPopup())
	}

	statusStyle := lipgloss.NewStyle().Foreground(colorOK)
	if m.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(colorErr)
	}
	footer := m.renderFooter(m.status, statusStyle, fmt.Sprintf("%d tasks", len(m.core.Tasks())))
	helpLine := m.help.ShortHelpView(m.core.Keys().ShortHelp(m.core.Mode()))

	return strings.Join([]string{header, panes, footer, helpLine}, "\n")
}

func (m *Model) popupOpen() bool {
	mode := m.core.Mode()
	return mode.IsAddTask() || mode == app.ModeAddProject
}

func (m *Model) viewportWidth() int {
	if m.width <= 0 {
		return 1
	}
	// One spare column keeps the right border from wrapping in some
	// terminals.
	if m.width > 1 {
		return m.width - 1
	}
	return m.width
}

// paneWidths splits total between the projects pane (a fifth) and the tasks
// pane, keeping both usable on narrow terminals.
func (m *Model) paneWidths(total, gap int) (int, int) {
	if total <= 0 {
		return 14, 30
	}
	if gap < 0 {
		gap = 0
	}

	left := total / 5
	if total < 60 {
		left = total / 3
	}
	if left < 10 {
		left = 10
	}
	right := total - left - gap
	if right < 12 {
		right = 12
		left = total - right - gap
		if left < 10 {
			left = 10
		}
	}
	return left, right
}

func (m *Model) popupWidth() int {
	w := m.viewportWidth() - 10
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) renderProjectsPanel(width, height int) string {
	projects := m.core.Projects()
	active := m.core.Mode() == app.ModeFocusProject || m.core.Mode() == app.ModeAddProject
	cur, hasCur := m.core.ProjectCursor().Selected()

	lines := make([]string, 0, len(projects)+1)
	lines = append(lines, panelTitleStyled("Projects", active))
	if len(projects) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorMuted).Render(truncate("No projects.", width)))
	}
	for i, p := range projects {
		selected := hasCur && i == cur
		cursor := " "
		if selected {
			cursor = "▸"
		}
		line := truncate(cursor+" "+p.Name, width)
		if selected {
			style := lipgloss.NewStyle().Bold(true)
			if active {
				style = style.Foreground(colorSelected)
			}
			line = style.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTasksPanel(width, height int) string {
	tasks := m.core.Tasks()
	depths := m.core.Depths()
	active := m.core.Mode() == app.ModeFocusTask
	cur, hasCur := m.core.TaskCursor().Selected()

	title := "Tasks"
	if p := m.core.SelectedProject(); p != nil {
		title = "Tasks · " + p.Name
	}

	preview := ""
	if t := m.core.SelectedTask(); t != nil && t.DescriptionText() != "" && height >= 12 {
		preview = renderMarkdown(t.DescriptionText(), width-2)
		lines := strings.Split(preview, "\n")
		if limit := height / 3; len(lines) > limit {
			lines = lines[:limit]
		}
		preview = strings.Join(lines, "\n")
	}
	rowsH := height - 1
	if preview != "" {
		rowsH -= lipgloss.Height(preview) + 1
	}
	if rowsH < 1 {
		rowsH = 1
	}

	lines := make([]string, 0, height)
	lines = append(lines, panelTitleStyled(truncate(title, width-2), active))

	if len(tasks) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorMuted).Render(truncate("No tasks. Press 'i' to add one.", width)))
	}

	start := 0
	if hasCur && cur >= rowsH {
		start = cur - rowsH + 1
	}
	for i := start; i < len(tasks) && i < start+rowsH; i++ {
		t := tasks[i]
		selected := hasCur && i == cur
		cursor := " "
		if selected {
			cursor = "▸"
		}
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		text := truncate(fmt.Sprintf("%s %s%s %s", cursor, strings.Repeat("  ", depths[i]), check, t.Title), width)

		style := lipgloss.NewStyle()
		if t.Done {
			style = style.Faint(true)
		}
		if selected {
			style = style.Bold(true)
			if active {
				style = style.Foreground(colorSelected)
			}
		}
		lines = append(lines, style.Render(text))
	}

	body := strings.Join(lines, "\n")
	if preview != "" {
		body = lipgloss.NewStyle().Height(height-lipgloss.Height(preview)-1).Render(body) +
			"\n" + lipgloss.NewStyle().Foreground(colorFrame).Render(strings.Repeat("─", width)) +
			"\n" + preview
	}
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(body)
}

func (m *Model) renderPopup() string {
	w := m.popupWidth()
	label := func(text string, focused bool) string {
		st := lipgloss.NewStyle().Foreground(colorMuted)
		if focused {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorPrompt)
		}
		return st.Render(text)
	}

	var rows []string
	mode := m.core.Mode()
	switch {
	case mode.IsAddTask():
		form := m.core.TaskForm()
		field := m.core.TaskField()
		rows = []string{
			lipgloss.NewStyle().Bold(true).Render(popupTitle(mode, m.core.AddParentID())),
			"",
			label("Title", field == app.FieldTitle),
			form.TitleView(),
			"",
			label("Description", field == app.FieldDescription),
			form.DescriptionView(),
		}
	case mode == app.ModeAddProject:
		rows = []string{
			lipgloss.NewStyle().Bold(true).Render("New project"),
			"",
			label("Name", true),
			m.core.ProjectForm().View(),
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorActive).
		Padding(0, 1).
		Width(w).
		Render(strings.Join(rows, "\n"))
}

func popupTitle(mode app.Mode, parentID *int64) string {
	switch mode {
	case app.ModeAddSubTask:
		if parentID != nil {
			return fmt.Sprintf("New sub-task of #%d", *parentID)
		}
	case app.ModeAddSiblingTask:
		if parentID != nil {
			return fmt.Sprintf("New sibling task under #%d", *parentID)
		}
	}
	return "New task"
}

func (m *Model) renderFooter(statusText string, statusStyle lipgloss.Style, rightHint string) string {
	left := strings.TrimSpace(statusText)
	right := strings.TrimSpace(rightHint)
	if left == "" {
		left = "Ready"
	}

	width := m.viewportWidth()
	leftW := xansi.StringWidth(left)
	rightW := xansi.StringWidth(right)
	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncate(left, maxLeft)
		leftW = xansi.StringWidth(left)
	}

	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}

	rightStyle := lipgloss.NewStyle().Foreground(colorMuted)
	return statusStyle.Render(left) + strings.Repeat(" ", padding) + rightStyle.Render(right)
}

func panelTitleStyled(title string, active bool) string {
	base := lipgloss.NewStyle().Bold(true)
	if !active {
		return base.Render(title)
	}
	text := base.Foreground(colorSelected).Render(title)
	marker := lipgloss.NewStyle().Bold(true).Foreground(colorMarker).Render("*")
	return lipgloss.JoinHorizontal(lipgloss.Left, text, " ", marker)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return xansi.Truncate(s, width, "…")
}
