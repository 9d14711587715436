package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/config"
	"github.com/zhubert/codecheck/internal/keys"
	"github.com/zhubert/codecheck/internal/report"
	"github.com/zhubert/codecheck/internal/ui"
)

// =============================================================================
// Fake collaborators
// =============================================================================

type listingResult struct {
	listing browse.Listing[browse.ContentEntry]
	err     error
}

type fileResult struct {
	content string
	err     error
}

// fakeBackend answers from canned results and records every call.
type fakeBackend struct {
	mu sync.Mutex

	session   browse.Session
	repos     browse.Listing[browse.Repository]
	reposErr  error
	listings  map[string]listingResult // keyed by "owner/repo:path"
	files     map[string]fileResult    // keyed by "owner/repo:path"
	report    []byte
	submitErr error
	logoutErr error

	calls     []string
	submitted []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		listings: make(map[string]listingResult),
		files:    make(map[string]fileResult),
		report:   []byte("# Report\n"),
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Session(ctx context.Context) browse.Session {
	f.record("session")
	return f.session
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	f.record("logout")
	return f.logoutErr
}

func (f *fakeBackend) Repositories(ctx context.Context) (browse.Listing[browse.Repository], error) {
	f.record("repos")
	return f.repos, f.reposErr
}

func (f *fakeBackend) Contents(ctx context.Context, owner, repo, path string) (browse.Listing[browse.ContentEntry], error) {
	key := fmt.Sprintf("%s/%s:%s", owner, repo, path)
	f.record("contents " + key)
	r, ok := f.listings[key]
	if !ok {
		return browse.Listing[browse.ContentEntry]{Sequence: true}, nil
	}
	return r.listing, r.err
}

func (f *fakeBackend) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	key := fmt.Sprintf("%s/%s:%s", owner, repo, path)
	f.record("file " + key)
	r := f.files[key]
	return r.content, r.err
}

func (f *fakeBackend) Submit(ctx context.Context, code string) ([]byte, error) {
	f.record("submit")
	f.mu.Lock()
	f.submitted = append(f.submitted, code)
	f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.report, nil
}

// fakeClipboard is an in-memory clipboard.
type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadText() (string, error) {
	return c.text, c.err
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func entries(names ...string) browse.Listing[browse.ContentEntry] {
	l := browse.Listing[browse.ContentEntry]{Sequence: true}
	for _, n := range names {
		kind := browse.KindFile
		if len(n) > 0 && n[len(n)-1] == '/' {
			kind = browse.KindDir
			n = n[:len(n)-1]
		}
		l.Items = append(l.Items, browse.ContentEntry{Name: baseName(n), Path: n, Kind: kind})
	}
	return l
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}

func repos(names ...string) browse.Listing[browse.Repository] {
	l := browse.Listing[browse.Repository]{Sequence: true}
	for _, n := range names {
		l.Items = append(l.Items, browse.Repository{FullName: n})
	}
	return l
}

// =============================================================================
// Model helpers
// =============================================================================

// testConfig creates a minimal config for testing.
func testConfig(downloadDir string) *config.Config {
	return &config.Config{
		ServerURL:   "http://codecheck.test",
		CookieName:  config.DefaultCookieName,
		DownloadDir: downloadDir,
	}
}

type testEnv struct {
	backend   *fakeBackend
	clipboard *fakeClipboard
	dir       string
	notified  []string
}

// testModel creates a Model wired to fakes. Reports are saved for real
// into dir.
func testModel(cfg *config.Config, env *testEnv) *Model {
	return New(cfg, "0.0.0-test", Deps{
		Backend:   env.backend,
		Reports:   report.Saver{Dir: env.dir},
		Clipboard: env.clipboard,
		Notify: func(path string) error {
			env.notified = append(env.notified, path)
			return nil
		},
	})
}

// startedModel creates a sized model and runs its Init to completion.
func startedModel(cfg *config.Config, env *testEnv) *Model {
	m := testModel(cfg, env)
	m = setSize(m, 240, 40)
	return runCmd(m, m.Init())
}

// cmdTimeout bounds how long a command may run before the helper gives up
// on it. Flash dismiss ticks take seconds and are dropped this way.
const cmdTimeout = 250 * time.Millisecond

// collectMsgs runs cmd and returns the messages it produced, flattening
// batches.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if msg == nil {
			return nil
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collectMsgs(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(cmdTimeout):
		return nil
	}
}

// runCmd feeds everything cmd produces back into the model until no
// commands remain.
func runCmd(m *Model, cmd tea.Cmd) *Model {
	for _, msg := range collectMsgs(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		result, next := m.Update(msg)
		m = result.(*Model)
		m = runCmd(m, next)
	}
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlV:
		return tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case keys.CtrlO:
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case keys.CtrlP:
		return tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model
// without running the resulting command.
func sendKey(m *Model, key string) (*Model, tea.Cmd) {
	result, cmd := m.Update(keyPress(key))
	return result.(*Model), cmd
}

// pressKey sends a key press and runs whatever it triggers.
func pressKey(m *Model, key string) *Model {
	m, cmd := sendKey(m, key)
	return runCmd(m, cmd)
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = pressKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// plainView renders the model without styling.
func plainView(m *Model) string {
	return ansi.Strip(m.RenderToString())
}

// selectRow moves the list selection to the row with the given label.
func selectRow(m *Model, label string) bool {
	l := m.repoList
	if m.focus == ui.PaneFiles {
		l = m.fileList
	}
	for i, r := range l.Rows() {
		if r.Label == label {
			l.Move(i - l.SelectedIndex())
			return true
		}
	}
	return false
}
