package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/codecheck/internal/api"
	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/config"
	"github.com/zhubert/codecheck/internal/logger"
	"github.com/zhubert/codecheck/internal/ui"
)

// Backend is the remote service the client talks to. *api.Client
// implements it.
type Backend interface {
	Session(ctx context.Context) browse.Session
	Logout(ctx context.Context) error
	Repositories(ctx context.Context) (browse.Listing[browse.Repository], error)
	Contents(ctx context.Context, owner, repo, path string) (browse.Listing[browse.ContentEntry], error)
	FileContent(ctx context.Context, owner, repo, path string) (string, error)
	Submit(ctx context.Context, code string) ([]byte, error)
}

var _ Backend = (*api.Client)(nil)

// ReportSink stores a successful analysis report and returns where it went.
type ReportSink interface {
	Save(data []byte) (string, error)
}

// Clipboard reads and writes clipboard text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// Deps are the Model's collaborators.
type Deps struct {
	Backend   Backend
	Reports   ReportSink
	Clipboard Clipboard
	Notify    func(path string) error // called after a report is saved, when enabled
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	deps    Deps

	header   *ui.Header
	footer   *ui.Footer
	repoList *ui.List
	fileList *ui.List
	editor   *ui.Editor

	width  int
	height int
	focus  ui.Pane

	// epoch counts full reloads. Every async message carries the epoch it
	// was issued in and is dropped if a reload happened since.
	epoch          uint64
	session        browse.Session
	sessionLoaded  bool
	reposRequested bool
	repos          *browse.RepoBrowser
	nav            *browse.Navigator
	buffer         *browse.CodeBuffer
	submitting     bool
}

// New creates a new app model
func New(cfg *config.Config, version string, deps Deps) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:   cfg,
		version:  version,
		deps:     deps,
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		repoList: ui.NewList("Repositories"),
		fileList: ui.NewList("Files"),
		editor:   ui.NewEditor(),
	}
	m.resetState()
	return m
}

// resetState recreates every per-load state object, as a page reload would.
func (m *Model) resetState() {
	m.epoch++
	m.session = browse.Session{}
	m.sessionLoaded = false
	m.reposRequested = false
	m.repos = browse.NewRepoBrowser()
	m.nav = browse.NewNavigator()
	m.buffer = &browse.CodeBuffer{}
	m.submitting = false

	m.header.ResetSession()
	m.header.SetLocation("", "")
	m.editor.SetValue("")
	m.editor.SetSource("", false)
	m.setFocus(ui.PaneRepos)
	m.refreshPanels()

	logger.WithComponent("app").Debug("state reset", "epoch", m.epoch)
}

// Init issues the identity query for the first load
func (m *Model) Init() tea.Cmd {
	return m.fetchSession()
}

// reload performs a full reload: all state is recreated and the identity
// query is issued again.
func (m *Model) reload() tea.Cmd {
	m.resetState()
	return m.fetchSession()
}

// Session returns the current session
func (m *Model) Session() browse.Session {
	return m.session
}

// Buffer returns the code buffer
func (m *Model) Buffer() *browse.CodeBuffer {
	return m.buffer
}

// Navigator returns the file navigator state
func (m *Model) Navigator() *browse.Navigator {
	return m.nav
}

// Repos returns the repository browser state
func (m *Model) Repos() *browse.RepoBrowser {
	return m.repos
}

// Focus returns the focused pane
func (m *Model) Focus() ui.Pane {
	return m.focus
}

// setFocus moves focus to pane
func (m *Model) setFocus(pane ui.Pane) {
	m.focus = pane
	m.repoList.SetFocused(pane == ui.PaneRepos)
	m.fileList.SetFocused(pane == ui.PaneFiles)
	m.editor.SetFocused(pane == ui.PaneEditor)
}

// cycleFocus moves focus forward (delta 1) or backward (delta -1)
func (m *Model) cycleFocus(delta int) {
	const panes = 3
	next := (int(m.focus) + delta + panes) % panes
	m.setFocus(ui.Pane(next))
}
