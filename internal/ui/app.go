package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/todo/internal/prefs"
	"github.com/five82/todo/internal/state"
	"github.com/five82/todo/internal/todo"
)

// mode is what currently receives key input.
type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeFilter
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      *state.Store
	Logger     *slog.Logger
	LogHandler *LogHandler // receives the program once it exists
	LogFile    string      // shown by the log overlay; empty disables it
	PollTick   time.Duration
	Prefs      prefs.Prefs
	PrefsPath  string
	NoColor    bool
}

// statusLine is a transient message shown in place of the key help.
type statusLine struct {
	text  string
	level slog.Level
	seq   int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	logger    *slog.Logger
	prefsPath string
	prefs     prefs.Prefs
	logFile   string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	mode   mode

	// Data state
	snapshot state.Snapshot
	cursor   int

	// Inputs
	addInput    textinput.Model
	editInput   textinput.Model
	editingID   int64
	filterInput textinput.Model
	inputErr    string

	// Feedback
	spinner  spinner.Model
	spinning bool
	help     help.Model
	status   statusLine

	// Overlays
	showHelp bool
	showLogs bool
	logs     logOverlay
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	userPrefs := opts.Prefs
	if userPrefs.Theme == "" {
		userPrefs.Theme = prefs.Defaults().Theme
	}

	theme := GetTheme(userPrefs.Theme)

	add := textinput.New()
	add.Prompt = "> "
	add.Placeholder = "Add new todo"
	add.CharLimit = TitleCharLimit

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = TitleCharLimit

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		logger:      logger,
		prefsPath:   prefsPath,
		prefs:       userPrefs,
		logFile:     opts.LogFile,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       theme,
		addInput:    add,
		editInput:   edit,
		filterInput: filter,
		spinner:     spin,
		help:        help.New(),
	}
}

// Init implements tea.Model. The item list is requested as soon as the
// program starts.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store == nil {
		return tea.Batch(cmds...)
	}
	if job, err := m.store.FetchAll(m.ctx); err == nil {
		cmds = append(cmds, runJobCmd(todo.OpFetch, job), m.spinner.Tick)
	}
	cmds = append(cmds, fetchSnapshotCmd(m.store))
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeInputs()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		if m.snapshot.Loading && !m.spinning {
			m.spinning = true
			return m, m.spinner.Tick
		}
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.logger.Debug("operation finished with error", "op", msg.op, "error", msg.err)
		}
		return m, fetchSnapshotCmd(m.store)

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logRecordMsg:
		m.status = statusLine{text: msg.Summary, level: msg.Level, seq: m.status.seq + 1}
		return m, fadeCmd(m.status.seq)

	case logRecordFadeMsg:
		if msg.seq == m.status.seq {
			m.status.text = ""
		}
		return m, nil

	case logsLoadedMsg:
		m.logs = logOverlay{records: msg.records, err: msg.err}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save preferences failed", "error", msg.err)
		}
		return m, nil
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// applySnapshot installs a new snapshot and keeps the cursor and any
// in-progress edit consistent with it.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if m.mode == modeEdit {
		if _, ok := snap.Find(m.editingID); !ok {
			m.cancelEdit()
		}
	}
	m.clampCursor()
}

// visibleItems returns the items shown in the list after the completed
// filter and the fuzzy filter are applied.
func (m Model) visibleItems() []todo.Item {
	items := m.snapshot.Items
	if m.prefs.HideCompleted {
		items = withoutCompleted(items)
	}
	return filterItems(items, m.filterInput.Value())
}

func (m Model) selectedItem() (todo.Item, bool) {
	items := m.visibleItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return todo.Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleItems())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// loading reports whether an operation is in flight. The store is asked
// directly because the snapshot may lag behind a dispatch.
func (m Model) loading() bool {
	if m.store != nil && m.store.Busy() {
		return true
	}
	return m.snapshot.Loading
}

// dispatch starts an operation and returns the command that completes it.
// A rejected dispatch leaves the model untouched.
func (m Model) dispatch(op todo.Op, start func(context.Context) (state.Job, error)) (Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	job, err := start(m.ctx)
	if err != nil {
		if !errors.Is(err, state.ErrBusy) {
			m.logger.Warn("dispatch failed", "op", op, "error", err)
		}
		return m, nil
	}
	m.snapshot = m.store.Snapshot()

	cmds := []tea.Cmd{runJobCmd(op, job)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// opDoneMsg reports that a dispatched job has run. The outcome itself is
// already in the store.
type opDoneMsg struct {
	op  todo.Op
	err error
}

type prefsSavedMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func runJobCmd(op todo.Op, job state.Job) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: job()}
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.LogHandler != nil {
		opts.LogHandler.SetProgram(p)
	}
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
