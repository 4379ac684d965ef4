package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/todo/internal/logtail"
)

// logOverlay holds the records shown by the log overlay.
type logOverlay struct {
	records []logtail.Record
	err     error
	loading bool
}

type logsLoadedMsg struct {
	records []logtail.Record
	err     error
}

func loadLogsCmd(path string, limit int) tea.Cmd {
	return func() tea.Msg {
		records, err := logtail.Read(path, limit)
		return logsLoadedMsg{records: records, err: err}
	}
}

// renderLogs renders the tail of the log file as a modal, newest last.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	width := maxInt(minInt(m.width-6, 120), 20)
	rows := maxInt(m.height-8, 3)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Log: " + truncate(m.logFile, width-6)))
	b.WriteString("\n\n")

	switch {
	case m.logs.loading:
		b.WriteString(styles.FaintText.Render("Reading…"))
	case m.logs.err != nil:
		b.WriteString(styles.DangerText.Render("Error: " + m.logs.err.Error()))
	case len(m.logs.records) == 0:
		b.WriteString(styles.FaintText.Render("No log records yet."))
	default:
		records := m.logs.records
		if len(records) > rows {
			records = records[len(records)-rows:]
		}
		lines := make([]string, 0, len(records))
		for _, rec := range records {
			style := styles.MutedText
			switch strings.ToUpper(rec.Level) {
			case "ERROR":
				style = styles.DangerText
			case "WARN":
				style = styles.WarningText
			}
			lines = append(lines, style.Render(truncate(rec.Summary(), width-4)))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return m.renderModal(b.String(), width)
}
