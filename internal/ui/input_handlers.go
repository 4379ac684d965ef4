package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/todo/internal/state"
	"github.com/five82/todo/internal/todo"
)

const emptyTitleMessage = "Title cannot be empty"

// handleKey routes keyboard input to the overlay or input with focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes an overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showLogs {
		m.showLogs = false
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.handleAddKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	case modeFilter:
		return m.handleFilterKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleBrowseKey processes keys while the list has focus.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	count := len(m.visibleItems())

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.prefs.Theme = m.theme.Name
		return m, savePrefsCmd(m.prefsPath, m.prefs)

	case key.Matches(msg, keys.HideComplete):
		m.prefs.HideCompleted = !m.prefs.HideCompleted
		m.clampCursor()
		return m, savePrefsCmd(m.prefsPath, m.prefs)

	case key.Matches(msg, keys.Logs):
		if m.logFile == "" {
			return m.flash("No log file configured", slog.LevelInfo)
		}
		m.showLogs = true
		m.logs = logOverlay{loading: true}
		return m, loadLogsCmd(m.logFile, LogOverlayLines)

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Top):
		m.cursor = 0
	case key.Matches(msg, keys.Bottom):
		m.cursor = maxInt(count-1, 0)

	case key.Matches(msg, keys.Add):
		m.mode = modeAdd
		m.inputErr = ""
		cmd := m.addInput.Focus()
		return m, cmd

	case key.Matches(msg, keys.Filter):
		m.mode = modeFilter
		cmd := m.filterInput.Focus()
		return m, cmd

	case key.Matches(msg, keys.Refresh):
		if m.loading() {
			return m, nil
		}
		return m.dispatch(todo.OpFetch, m.store.FetchAll)

	case key.Matches(msg, keys.Toggle):
		item, ok := m.selectedItem()
		if !ok || m.loading() {
			return m, nil
		}
		return m.dispatch(todo.OpUpdate, func(ctx context.Context) (state.Job, error) {
			return m.store.Update(ctx, item.Toggled())
		})

	case key.Matches(msg, keys.Edit):
		item, ok := m.selectedItem()
		if !ok || m.loading() {
			return m, nil
		}
		m.mode = modeEdit
		m.editingID = item.ID
		m.inputErr = ""
		m.editInput.SetValue(item.Title)
		m.editInput.CursorEnd()
		cmd := m.editInput.Focus()
		return m, cmd

	case key.Matches(msg, keys.Delete):
		item, ok := m.selectedItem()
		if !ok || m.loading() {
			return m, nil
		}
		return m.dispatch(todo.OpDelete, func(ctx context.Context) (state.Job, error) {
			return m.store.Delete(ctx, item.ID)
		})

	case key.Matches(msg, keys.Cancel):
		if m.filterInput.Value() != "" {
			m.filterInput.Reset()
			m.clampCursor()
		}
	}

	return m, nil
}

// handleAddKey processes keys while the add input has focus.
func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.addInput.Reset()
		m.addInput.Blur()
		m.inputErr = ""
		m.mode = modeBrowse
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		title := strings.TrimSpace(m.addInput.Value())
		if title == "" {
			m.inputErr = emptyTitleMessage
			return m, nil
		}
		if m.loading() {
			return m, nil
		}
		m.inputErr = ""
		next, cmd := m.dispatch(todo.OpCreate, func(ctx context.Context) (state.Job, error) {
			return m.store.Create(ctx, title)
		})
		if cmd != nil {
			next.addInput.Reset()
		}
		return next, cmd
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	m.inputErr = ""
	return m, cmd
}

// handleEditKey processes keys while an item title is being edited.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancelEdit()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		title := strings.TrimSpace(m.editInput.Value())
		if title == "" {
			m.inputErr = emptyTitleMessage
			return m, nil
		}
		if m.loading() {
			return m, nil
		}
		item, ok := m.snapshot.Find(m.editingID)
		if !ok {
			m.cancelEdit()
			return m, nil
		}
		next, cmd := m.dispatch(todo.OpUpdate, func(ctx context.Context) (state.Job, error) {
			return m.store.Update(ctx, item.Retitled(title))
		})
		if cmd != nil {
			next.cancelEdit()
		}
		return next, cmd
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.inputErr = ""
	return m, cmd
}

// handleFilterKey processes keys while the filter input has focus. The
// list narrows as the query is typed.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.mode = modeBrowse
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.filterInput.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.cursor = 0
	return m, cmd
}

// updateFocusedInput forwards non-key messages (cursor blink) to the
// input with focus.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeAdd:
		m.addInput, cmd = m.addInput.Update(msg)
	case modeEdit:
		m.editInput, cmd = m.editInput.Update(msg)
	case modeFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	}
	return cmd
}

func (m *Model) cancelEdit() {
	m.editInput.Reset()
	m.editInput.Blur()
	m.editingID = 0
	m.inputErr = ""
	m.mode = modeBrowse
}

// flash shows a transient message in the status bar.
func (m Model) flash(text string, level slog.Level) (tea.Model, tea.Cmd) {
	m.status = statusLine{text: text, level: level, seq: m.status.seq + 1}
	return m, fadeCmd(m.status.seq)
}

func (m *Model) resizeInputs() {
	width := maxInt(m.width-8, 10)
	m.addInput.Width = width
	m.filterInput.Width = width
	m.editInput.Width = maxInt(m.width-10, 10)
}
