package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/errors"
	"github.com/zhubert/codecheck/internal/keys"
	"github.com/zhubert/codecheck/internal/logger"
	"github.com/zhubert/codecheck/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		if m.focus == ui.PaneEditor {
			return m, m.updateEditor(msg)
		}
		return m, nil

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case SessionMsg:
		if msg.Epoch != m.epoch {
			log.Debug("dropping session from previous load", "epoch", msg.Epoch)
			return m, nil
		}
		return m, m.handleSession(msg.Session)

	case ReposMsg:
		if msg.Epoch != m.epoch || !m.repos.Apply(msg.Token, msg.Listing, msg.Err) {
			log.Debug("discarding stale repository list", "generation", msg.Token.Generation)
			return m, nil
		}
		if msg.Err != nil {
			log.Warn("repository list failed", "error", msg.Err)
		}
		m.refreshPanels()
		return m, nil

	case ListingMsg:
		if msg.Epoch != m.epoch || !m.nav.Apply(msg.Token, msg.Listing, msg.Err) {
			log.Debug("discarding stale listing",
				"repo", msg.Token.Cursor.FullName(),
				"path", msg.Token.Cursor.Path,
				"generation", msg.Token.Generation)
			return m, nil
		}
		if msg.Err != nil {
			log.Warn("listing failed", "path", msg.Token.Cursor.Path, "error", msg.Err)
		}
		m.refreshPanels()
		return m, nil

	case FileContentMsg:
		if msg.Epoch != m.epoch || !m.nav.AcceptFile(msg.Token) {
			log.Debug("discarding stale file content", "path", msg.Token.Cursor.Path, "generation", msg.Token.Generation)
			return m, nil
		}
		m.refreshPanels()
		return m, m.handleFileContent(msg)

	case SubmitResultMsg:
		if msg.Epoch != m.epoch {
			log.Info("dropping report from previous load", "epoch", msg.Epoch, "bytes", len(msg.Report))
			return m, nil
		}
		return m, m.handleSubmitResult(msg)

	case LogoutDoneMsg:
		if msg.Epoch != m.epoch {
			return m, nil
		}
		if msg.Err != nil {
			log.Warn("logout request failed, reloading anyway", "error", msg.Err)
		}
		return m, m.reload()

	case NotifyDoneMsg:
		if msg.Err != nil {
			log.Warn("notification failed", "error", msg.Err)
		}
		return m, nil
	}

	if m.focus == ui.PaneEditor {
		return m, m.updateEditor(msg)
	}
	return m, nil
}

// handleSession installs the identity and activates the repository
// browser exactly once per load when signed in.
func (m *Model) handleSession(s browse.Session) tea.Cmd {
	m.session = s
	m.sessionLoaded = true
	m.header.SetSession(s.Authenticated, s.Username)

	log := logger.WithComponent("app")
	if s.Err != nil {
		log.Warn("identity check failed, continuing signed out", "error", s.Err)
	}
	log.Info("session loaded", "authenticated", s.Authenticated, "username", s.Username)

	var cmd tea.Cmd
	if s.Authenticated && !m.reposRequested {
		m.reposRequested = true
		cmd = m.fetchRepos(m.repos.Begin())
	}
	m.refreshPanels()
	return cmd
}

func (m *Model) handleFileContent(msg FileContentMsg) tea.Cmd {
	path := msg.Token.Cursor.Path
	if msg.Err != nil {
		logger.WithComponent("app").Warn("file load failed", "path", path, "error", msg.Err)
		return m.ShowFlashError(fmt.Sprintf("Failed to load %s: %s", path, errors.Detail(msg.Err)))
	}

	m.buffer.Load(path, msg.Content)
	m.editor.SetValue(msg.Content)
	m.editor.SetSource(path, false)
	if m.editor.Value() != msg.Content {
		// Textarea sanitizing changed the text. The buffer keeps the file
		// as fetched until the user edits.
		return m.ShowFlashWarning("Loaded " + path + " (editor view normalized; the file is submitted as fetched until edited)")
	}
	return m.ShowFlashInfo("Loaded " + path)
}

// handleSubmitResult saves the report of a submission from the current
// load. It runs after the epoch check, so a reload in the meantime drops
// the report the way a browser reload drops a pending download.
func (m *Model) handleSubmitResult(msg SubmitResultMsg) tea.Cmd {
	m.submitting = false
	log := logger.WithComponent("app")

	path := ""
	if msg.Err == nil {
		path, msg.Err = m.deps.Reports.Save(msg.Report)
	}
	if msg.Err != nil {
		log.Warn("check failed", "error", msg.Err)
		detail := errors.Detail(msg.Err)
		switch errors.GetKind(msg.Err) {
		case errors.KindNetwork:
			return m.ShowFlashError("Failed to fetch check result: " + detail)
		case errors.KindIO:
			return m.ShowFlashError("Failed to save report.md: " + detail)
		default:
			return m.ShowFlashError("Check failed: " + detail)
		}
	}

	log.Info("report saved", "path", path)
	return tea.Batch(m.ShowFlashSuccess("Report saved to "+path), m.notify(path))
}

// handleKey processes key presses. Global shortcuts work from every pane;
// the rest go to the focused pane.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.CtrlC:
		return m, tea.Quit
	case keys.Tab:
		m.cycleFocus(1)
		return m, nil
	case keys.ShiftTab:
		m.cycleFocus(-1)
		return m, nil
	case keys.CtrlS:
		return m, m.startSubmit()
	case keys.CtrlO:
		if !m.session.Authenticated {
			return m, nil
		}
		logger.WithComponent("app").Info("logging out")
		return m, m.logout()
	case keys.CtrlR:
		logger.WithComponent("app").Info("reloading")
		return m, m.reload()
	case keys.CtrlP:
		m.editor.TogglePreview()
		if m.editor.IsPreviewing() {
			m.setFocus(ui.PaneEditor)
		}
		return m, nil
	case keys.CtrlY:
		return m, m.copyText(m.buffer.Text(), "Code copied to clipboard")
	case keys.CtrlV:
		return m, m.pasteFromClipboard()
	}

	switch m.focus {
	case ui.PaneRepos:
		return m.handleListKey(m.repoList, key)
	case ui.PaneFiles:
		return m.handleListKey(m.fileList, key)
	default:
		return m, m.updateEditor(msg)
	}
}

func (m *Model) handleListKey(l *ui.List, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case keys.Up, "k":
		l.Move(-1)
	case keys.Down, "j":
		l.Move(1)
	case keys.Home, "g":
		l.Home()
	case keys.End, "G":
		l.End()
	case keys.PgUp:
		l.Move(-l.PageSize())
	case keys.PgDown:
		l.Move(l.PageSize())
	case keys.Enter:
		if row, ok := l.Selected(); ok {
			return m, m.activate(row)
		}
	case keys.Backspace:
		if l == m.fileList {
			return m, m.ascend()
		}
	case "y":
		if l == m.repoList && m.sessionLoaded && !m.session.Authenticated {
			return m, m.copyText(m.config.LoginURL(), "Login URL copied to clipboard")
		}
	}
	return m, nil
}

// activate performs a row's action
func (m *Model) activate(row browse.Row) tea.Cmd {
	switch row.Kind {
	case browse.RowRepo:
		return m.openRepository(row.Repo)
	case browse.RowParent:
		return m.ascend()
	case browse.RowDir:
		c := m.nav.Cursor()
		tok := m.nav.Load(c.Owner, c.Repo, row.Path)
		m.afterNavigate()
		return m.fetchContents(tok)
	case browse.RowFile:
		tok := m.nav.SelectFile(row.Path)
		m.refreshPanels()
		return m.fetchFile(tok)
	}
	return nil
}

// openRepository makes r the active repository and lists its root
func (m *Model) openRepository(r browse.Repository) tea.Cmd {
	owner, name, ok := r.Split()
	if !ok {
		return m.ShowFlashError(fmt.Sprintf("Invalid repository name %q", r.FullName))
	}
	m.repos.SetActive(r)
	tok := m.nav.Load(owner, name, "")
	m.afterNavigate()
	m.setFocus(ui.PaneFiles)
	return m.fetchContents(tok)
}

// ascend lists the parent directory. It does nothing at the root.
func (m *Model) ascend() tea.Cmd {
	tok, ok := m.nav.Ascend()
	if !ok {
		return nil
	}
	m.afterNavigate()
	return m.fetchContents(tok)
}

func (m *Model) afterNavigate() {
	c := m.nav.Cursor()
	m.header.SetLocation(c.FullName(), c.Path)
	m.refreshPanels()
}

// startSubmit applies the empty-buffer guard and issues the submission
func (m *Model) startSubmit() tea.Cmd {
	if m.buffer.Empty() {
		return m.ShowFlashError(errors.Detail(errors.EmptySubmission()))
	}
	if m.submitting {
		return m.ShowFlashWarning("A check is already running")
	}
	m.submitting = true
	logger.WithComponent("app").Info("submitting code", "bytes", len(m.buffer.Text()), "source", m.buffer.Source())
	return tea.Batch(m.ShowFlashInfo("Checking code..."), m.submit(m.buffer.Text()))
}

// updateEditor forwards msg to the editor and writes the editor text into
// the code buffer when msg changed it
func (m *Model) updateEditor(msg tea.Msg) tea.Cmd {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.syncBuffer(before)
	return cmd
}

// syncBuffer copies the editor text into the buffer if it differs from
// before. Comparing against the buffer instead would overwrite loaded
// content the textarea could not show verbatim.
func (m *Model) syncBuffer(before string) {
	text := m.editor.Value()
	if text == before {
		return
	}
	m.buffer.Set(text)
	m.editor.SetSource(m.buffer.Source(), m.buffer.Modified())
}

func (m *Model) copyText(text, success string) tea.Cmd {
	if m.deps.Clipboard == nil {
		return m.ShowFlashWarning("Clipboard is not available")
	}
	if err := m.deps.Clipboard.WriteText(text); err != nil {
		logger.WithComponent("app").Warn("clipboard write failed", "error", err)
		return m.ShowFlashError("Failed to copy: " + errors.Detail(err))
	}
	return m.ShowFlashSuccess(success)
}

// pasteFromClipboard inserts clipboard text at the editor cursor
func (m *Model) pasteFromClipboard() tea.Cmd {
	if m.deps.Clipboard == nil {
		return m.ShowFlashWarning("Clipboard is not available")
	}
	text, err := m.deps.Clipboard.ReadText()
	if err != nil {
		logger.WithComponent("app").Warn("clipboard read failed", "error", err)
		return m.ShowFlashError("Failed to paste: " + errors.Detail(err))
	}
	if text == "" {
		return m.ShowFlashWarning("Clipboard is empty")
	}
	if m.editor.IsPreviewing() {
		m.editor.TogglePreview()
	}
	m.setFocus(ui.PaneEditor)
	before := m.editor.Value()
	m.editor.InsertString(text)
	m.syncBuffer(before)
	return nil
}
