package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/errors"
	"github.com/zhubert/codecheck/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.repoList.SetSize(ctx.RepoWidth, ctx.ContentHeight)
	m.fileList.SetSize(ctx.FileWidth, ctx.ContentHeight)
	m.editor.SetSize(ctx.EditorWidth, ctx.ContentHeight)
}

// refreshPanels re-projects browse state into the list panels
func (m *Model) refreshPanels() {
	m.repoList.SetRows(m.repos.Rows())
	m.repoList.SetHint(m.repoHint()...)

	c := m.nav.Cursor()
	if c.Owner == "" {
		m.fileList.SetTitle("Files")
	} else {
		m.fileList.SetTitle(c.FullName() + "/" + c.Path)
	}
	m.fileList.SetRows(m.nav.Rows())
	m.fileList.SetHint(m.fileHint()...)
}

// repoHint returns the muted lines under the repository list: the login
// affordance when signed out, the avatar when signed in.
func (m *Model) repoHint() []string {
	switch {
	case !m.sessionLoaded:
		return []string{"Checking session..."}
	case m.session.Authenticated:
		if m.session.AvatarURL != "" {
			return []string{"avatar: " + m.session.AvatarURL}
		}
		return nil
	}

	lines := []string{
		"Not signed in.",
		"Sign in with GitHub at:",
		m.config.LoginURL(),
		"then press ctrl+r to reload.",
		"Press y to copy the URL.",
	}
	if m.session.Err != nil {
		lines = append(lines, "", "Session check failed: "+errors.Detail(m.session.Err))
	}
	return lines
}

func (m *Model) fileHint() []string {
	var lines []string
	switch {
	case m.nav.State() == browse.StateIdle:
		lines = append(lines, "Select a repository to browse.")
	case m.nav.Empty():
		lines = append(lines, "Empty directory.")
	}
	if p := m.nav.PendingFile(); p != "" {
		lines = append(lines, "Loading "+p+"...")
	}
	return lines
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.render())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.render()
}

func (m *Model) render() string {
	m.footer.SetContext(m.focus, m.session.Authenticated, m.editor.IsPreviewing())

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.repoList.View(),
		m.fileList.View(),
		m.editor.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}
