package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/todo/internal/todo"
)

// renderMain renders the list screen.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with counts, the progress bar and
// the error line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	done, pending := snap.Stats()
	total := done + pending

	parts := []string{
		styles.Title.Render("Todo List"),
		styles.SuccessText.Render(fmt.Sprintf("✔ %d", done)),
		styles.WarningText.Render(fmt.Sprintf("• %d", pending)),
		styles.MutedText.Render(pluralize(total, "item")),
	}
	if m.prefs.HideCompleted {
		parts = append(parts, styles.FaintText.Render("(done hidden)"))
	}
	if snap.Loading {
		parts = append(parts, m.spinner.View()+styles.AccentText.Render(snap.Pending.Progress()+"…"))
	}
	title := strings.Join(parts, "  ")

	errLine := ""
	if snap.Error != "" {
		errLine = styles.DangerText.Render(truncate("Error: "+snap.Error, maxInt(m.width-2, 10)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Header.Width(m.width).Render(title),
		" "+m.renderProgress(done, total),
		" "+errLine,
	)
}

// renderProgress draws the completion bar.
func (m Model) renderProgress(done, total int) string {
	styles := m.theme.Styles()
	filled := 0
	percent := 0
	if total > 0 {
		filled = done * progressBarWidth / total
		percent = done * 100 / total
	}
	bar := styles.SuccessText.Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", progressBarWidth-filled))
	return bar + styles.MutedText.Render(fmt.Sprintf(" %3d%%", percent))
}

// listHeight returns the number of rows available to the list.
func (m Model) listHeight() int {
	return maxInt(m.height-headerHeight-footerHeight-1, minListHeight)
}

// renderList renders the visible items around the cursor.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	items := m.visibleItems()
	height := m.listHeight()

	if len(items) == 0 {
		msg := "No todos yet. Press a to add one."
		switch {
		case m.snapshot.Loading && len(m.snapshot.Items) == 0:
			msg = "Loading todos…"
		case len(m.snapshot.Items) > 0:
			msg = "No todos match."
		}
		return padLines(styles.FaintText.Render("  "+msg), height)
	}

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := minInt(start+height, len(items))

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(items[i], i == m.cursor))
	}
	return padLines(strings.Join(lines, "\n"), height)
}

// renderRow renders one item: cursor, checkbox and title. The row being
// edited shows the edit input in place of the title.
func (m Model) renderRow(item todo.Item, selected bool) string {
	styles := m.theme.Styles()

	cursor := "  "
	if selected {
		cursor = styles.AccentText.Render("> ")
	}
	check := styles.MutedText.Render("[ ]")
	if item.Completed {
		check = styles.SuccessText.Render("[x]")
	}

	if m.mode == modeEdit && item.ID == m.editingID {
		return cursor + check + " " + m.editInput.View()
	}

	width := maxInt(m.width-8, 10)
	title := truncate(item.Title, width)
	switch {
	case selected:
		title = styles.Selected.Render(padRight(title, width))
	case item.Completed:
		title = styles.Done.Render(title)
	default:
		title = styles.Text.Render(title)
	}
	return cursor + check + " " + title
}

// renderFooter renders the add input box and the command bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	box := styles.Input
	if m.mode == modeAdd {
		box = styles.InputFocused
	}
	input := m.addInput.View()
	if m.mode == modeFilter || m.filterInput.Value() != "" {
		input = m.filterInput.View()
		if m.mode == modeFilter {
			box = styles.InputFocused
		}
	}
	boxed := box.Width(maxInt(m.width-2, 10)).Render(input)

	return lipgloss.JoinVertical(lipgloss.Left, boxed, m.renderCommandBar())
}

// renderCommandBar shows, in order of priority: an input validation
// message, a recent log record, or the key help.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	width := maxInt(m.width-2, 10)

	if m.inputErr != "" {
		return styles.Footer.Render(styles.DangerText.Render(truncate(m.inputErr, width)))
	}
	if m.status.text != "" {
		style := styles.InfoText
		switch {
		case m.status.level >= slog.LevelError:
			style = styles.DangerText
		case m.status.level >= slog.LevelWarn:
			style = styles.WarningText
		}
		return styles.Footer.Render(style.Render(truncate(m.status.text, width)))
	}

	h := m.help
	h.Styles.ShortKey = styles.WarningText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	if m.mode != modeBrowse {
		return styles.Footer.Render(h.ShortHelpView(m.keys.inputKeys()))
	}
	return styles.Footer.Render(h.View(m.keys))
}

// padLines pads content with blank lines up to height.
func padLines(content string, height int) string {
	n := strings.Count(content, "\n") + 1
	if n >= height {
		return content
	}
	return content + strings.Repeat("\n", height-n)
}

var _ help.KeyMap = keyMap{}
