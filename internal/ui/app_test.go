package ui

import (
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/todo/internal/backend"
	"github.com/five82/todo/internal/prefs"
	"github.com/five82/todo/internal/state"
	"github.com/five82/todo/internal/todo"
)

func newTestModel(t *testing.T, opts ...backend.Option) (Model, *state.Store) {
	t.Helper()
	mock := backend.NewMock(append([]backend.Option{backend.WithLatency(0)}, opts...)...)
	store := state.New(mock)

	m := New(Options{
		Store:     store,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	m = settle(t, m, m.Init())
	return m, store
}

// runQuick runs cmd and gives up on commands that wait on timers (ticks,
// cursor blink, status fade).
func runQuick(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(200 * time.Millisecond):
		return nil, false
	}
}

// settle runs cmd and every command it produces, feeding operation and
// snapshot messages back into the model until nothing is left.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := runQuick(next)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case opDoneMsg, snapshotMsg, prefsSavedMsg, logsLoadedMsg:
			updated, more := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func ids(items []todo.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestInitFetchesItems(t *testing.T) {
	m, store := newTestModel(t)

	if got := ids(m.snapshot.Items); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("ids = %v, want [1 2 3]", got)
	}
	if m.snapshot.Loading || store.Busy() {
		t.Fatalf("still loading after init settled")
	}
}

func TestAddTodo(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(m, keyRunes("a"))
	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want add", m.mode)
	}
	m, _ = press(m, keyRunes("  Buy milk "))
	m, cmd := press(m, keyEnter)
	if cmd == nil {
		t.Fatalf("enter did not dispatch create")
	}
	if m.addInput.Value() != "" {
		t.Fatalf("input not cleared on dispatch: %q", m.addInput.Value())
	}
	if !store.Busy() || !m.snapshot.Loading {
		t.Fatalf("create not marked loading before the backend answered")
	}

	m = settle(t, m, cmd)
	items := m.snapshot.Items
	if got := ids(items); !reflect.DeepEqual(got, []int64{1, 2, 3, 4}) {
		t.Fatalf("ids = %v, want [1 2 3 4]", got)
	}
	if items[3].Title != "Buy milk" || items[3].Completed {
		t.Fatalf("new item = %#v, want incomplete \"Buy milk\"", items[3])
	}
}

func TestAddBlankTitleIsRejected(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(m, keyRunes("a"))
	m, _ = press(m, keyRunes("   "))
	m, cmd := press(m, keyEnter)

	if cmd != nil || store.Busy() {
		t.Fatalf("blank title dispatched an operation")
	}
	if m.inputErr != emptyTitleMessage {
		t.Fatalf("inputErr = %q, want %q", m.inputErr, emptyTitleMessage)
	}
	if !strings.Contains(m.View(), emptyTitleMessage) {
		t.Fatalf("view does not show the validation message")
	}
}

func TestAddEscLeavesInput(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, keyRunes("a"))
	m, _ = press(m, keyRunes("draft"))
	m, _ = press(m, keyEsc)

	if m.mode != modeBrowse || m.addInput.Value() != "" {
		t.Fatalf("esc should leave add mode and clear input, mode=%v value=%q", m.mode, m.addInput.Value())
	}
}

func TestToggleSelectedItem(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(m, keySpace)
	m = settle(t, m, cmd)

	if !m.snapshot.Items[0].Completed {
		t.Fatalf("item 1 not completed after toggle: %#v", m.snapshot.Items[0])
	}

	m, cmd = press(m, keyRunes("x"))
	m = settle(t, m, cmd)
	if m.snapshot.Items[0].Completed {
		t.Fatalf("item 1 still completed after second toggle")
	}
}

func TestEditSavesTitle(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, keyRunes("j"))
	m, _ = press(m, keyRunes("e"))
	if m.mode != modeEdit || m.editingID != 2 {
		t.Fatalf("mode=%v editingID=%d, want edit of item 2", m.mode, m.editingID)
	}
	if got := m.editInput.Value(); got != "Read the lipgloss documentation" {
		t.Fatalf("edit input = %q, want current title", got)
	}

	m.editInput.SetValue("  Read docs  ")
	m, cmd := press(m, keyEnter)
	if cmd == nil {
		t.Fatalf("enter did not dispatch update")
	}
	if m.mode != modeBrowse || m.editingID != 0 {
		t.Fatalf("edit mode not left on dispatch")
	}

	m = settle(t, m, cmd)
	if got := m.snapshot.Items[1].Title; got != "Read docs" {
		t.Fatalf("title = %q, want %q", got, "Read docs")
	}
}

func TestEditBlankTitleStaysInEditMode(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(m, keyRunes("e"))
	m.editInput.SetValue("   ")
	m, cmd := press(m, keyEnter)

	if cmd != nil || store.Busy() {
		t.Fatalf("blank edit dispatched an operation")
	}
	if m.mode != modeEdit {
		t.Fatalf("mode = %v, want edit", m.mode)
	}
}

func TestEditCancelKeepsItems(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.snapshot.Items

	m, _ = press(m, keyRunes("e"))
	m.editInput.SetValue("changed")
	m, cmd := press(m, keyEsc)

	if cmd != nil {
		t.Fatalf("cancel returned a command")
	}
	if m.mode != modeBrowse || m.editingID != 0 || m.editInput.Value() != "" {
		t.Fatalf("edit state not cleared: mode=%v id=%d value=%q", m.mode, m.editingID, m.editInput.Value())
	}
	if !reflect.DeepEqual(m.snapshot.Items, before) {
		t.Fatalf("items changed on cancel")
	}
}

func TestDeleteSelectedItem(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, keyRunes("G"))
	m, cmd := press(m, keyRunes("d"))
	m = settle(t, m, cmd)

	if got := ids(m.snapshot.Items); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("ids = %v, want [1 2]", got)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want clamped to 1", m.cursor)
	}
}

func TestMutationsIgnoredWhileLoading(t *testing.T) {
	m, store := newTestModel(t)

	m, first := press(m, keySpace)
	if !store.Busy() {
		t.Fatalf("toggle did not start an operation")
	}

	m, cmd := press(m, keyRunes("d"))
	if cmd != nil {
		t.Fatalf("delete dispatched while loading")
	}
	m, _ = press(m, keyRunes("a"))
	m, _ = press(m, keyRunes("racing"))
	m, cmd = press(m, keyEnter)
	if cmd != nil {
		t.Fatalf("create dispatched while loading")
	}
	if m.addInput.Value() != "racing" {
		t.Fatalf("ignored submit should keep the typed title, got %q", m.addInput.Value())
	}

	m = settle(t, m, first)
	if got := ids(m.snapshot.Items); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("ids = %v, want [1 2 3]", got)
	}
}

func TestEditIgnoredWhileLoading(t *testing.T) {
	m, store := newTestModel(t)

	m, first := press(m, keySpace)
	if !store.Busy() {
		t.Fatalf("toggle did not start an operation")
	}

	m, _ = press(m, keyRunes("e"))
	if m.mode != modeBrowse || m.editingID != 0 {
		t.Fatalf("edit mode entered while loading: mode=%v id=%d", m.mode, m.editingID)
	}

	m = settle(t, m, first)
	m, _ = press(m, keyRunes("e"))
	if m.mode != modeEdit {
		t.Fatalf("edit mode not entered once idle")
	}
}

func TestFailureShowsError(t *testing.T) {
	m, _ := newTestModel(t, backend.WithFault(backend.FailOps(todo.OpDelete)))

	m, cmd := press(m, keyRunes("d"))
	m = settle(t, m, cmd)

	if m.snapshot.Error == "" {
		t.Fatalf("Error not set after failed delete")
	}
	if len(m.snapshot.Items) != 3 {
		t.Fatalf("items changed on failure: %v", ids(m.snapshot.Items))
	}
	if !strings.Contains(m.View(), "Error: delete: simulated failure") {
		t.Fatalf("view does not show the error line")
	}
}

func TestFilterNarrowsList(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, keyRunes("/"))
	m, _ = press(m, keyRunes("bread"))
	if got := ids(m.visibleItems()); !reflect.DeepEqual(got, []int64{3}) {
		t.Fatalf("visible ids = %v, want [3]", got)
	}

	m, _ = press(m, keyEnter)
	if m.mode != modeBrowse || m.filterInput.Value() != "bread" {
		t.Fatalf("enter should keep the filter and return to the list")
	}

	m, _ = press(m, keyEsc)
	if len(m.visibleItems()) != 3 {
		t.Fatalf("esc did not clear the filter")
	}
}

func TestHideCompletedPersists(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(m, keyRunes("H"))
	m = settle(t, m, cmd)

	if got := ids(m.visibleItems()); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("visible ids = %v, want [1 2]", got)
	}
	if !prefs.Load(m.prefsPath).HideCompleted {
		t.Fatalf("hide_completed not saved")
	}
}

func TestCycleThemePersists(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(m, keyRunes("T"))
	m = settle(t, m, cmd)

	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestLogRecordShownUntilFade(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(logRecordMsg{Summary: "operation failed (op=delete)", Level: slog.LevelWarn})
	m = next.(Model)
	if !strings.Contains(m.View(), "operation failed") {
		t.Fatalf("status bar does not show the log record")
	}

	next, _ = m.Update(logRecordFadeMsg{seq: m.status.seq - 1})
	m = next.(Model)
	if m.status.text == "" {
		t.Fatalf("stale fade cleared a newer message")
	}

	next, _ = m.Update(logRecordFadeMsg{seq: m.status.seq})
	m = next.(Model)
	if m.status.text != "" {
		t.Fatalf("fade did not clear the message")
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, keyRunes("?"))
	view := m.View()
	if !m.showHelp || !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	for _, alias := range []string{"a/n", "d/del"} {
		if !strings.Contains(view, alias) {
			t.Fatalf("help overlay does not list %q", alias)
		}
	}
	m, _ = press(m, keyRunes("d"))
	if m.showHelp {
		t.Fatalf("help overlay still shown")
	}
	if len(m.snapshot.Items) != 3 {
		t.Fatalf("key that closed help also acted on the list")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := press(m, keyRunes("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}
