package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/logger"
)

// SessionMsg carries the result of the identity query
type SessionMsg struct {
	Epoch   uint64
	Session browse.Session
}

// ReposMsg carries the repository list
type ReposMsg struct {
	Epoch   uint64
	Token   browse.Token
	Listing browse.Listing[browse.Repository]
	Err     error
}

// ListingMsg carries a directory listing
type ListingMsg struct {
	Epoch   uint64
	Token   browse.Token
	Listing browse.Listing[browse.ContentEntry]
	Err     error
}

// FileContentMsg carries the content of a selected file
type FileContentMsg struct {
	Epoch   uint64
	Token   browse.Token
	Content string
	Err     error
}

// SubmitResultMsg carries the report bytes of a finished submission
type SubmitResultMsg struct {
	Epoch  uint64
	Report []byte
	Err    error
}

// LogoutDoneMsg is sent when the logout request finishes, whatever its outcome
type LogoutDoneMsg struct {
	Epoch uint64
	Err   error
}

// NotifyDoneMsg is sent after the desktop notification attempt
type NotifyDoneMsg struct {
	Err error
}

func (m *Model) fetchSession() tea.Cmd {
	backend, epoch := m.deps.Backend, m.epoch
	return func() tea.Msg {
		return SessionMsg{Epoch: epoch, Session: backend.Session(context.Background())}
	}
}

func (m *Model) fetchRepos(tok browse.Token) tea.Cmd {
	backend, epoch := m.deps.Backend, m.epoch
	return func() tea.Msg {
		listing, err := backend.Repositories(context.Background())
		return ReposMsg{Epoch: epoch, Token: tok, Listing: listing, Err: err}
	}
}

func (m *Model) fetchContents(tok browse.Token) tea.Cmd {
	backend, epoch := m.deps.Backend, m.epoch
	c := tok.Cursor
	logger.WithComponent("app").Debug("fetching listing", "repo", c.FullName(), "path", c.Path, "generation", tok.Generation)
	return func() tea.Msg {
		listing, err := backend.Contents(context.Background(), c.Owner, c.Repo, c.Path)
		return ListingMsg{Epoch: epoch, Token: tok, Listing: listing, Err: err}
	}
}

func (m *Model) fetchFile(tok browse.Token) tea.Cmd {
	backend, epoch := m.deps.Backend, m.epoch
	c := tok.Cursor
	logger.WithComponent("app").Debug("fetching file", "repo", c.FullName(), "path", c.Path, "generation", tok.Generation)
	return func() tea.Msg {
		content, err := backend.FileContent(context.Background(), c.Owner, c.Repo, c.Path)
		return FileContentMsg{Epoch: epoch, Token: tok, Content: content, Err: err}
	}
}

// submit posts code. The report bytes are saved by Update once the result
// is known to belong to the current load.
func (m *Model) submit(code string) tea.Cmd {
	backend, epoch := m.deps.Backend, m.epoch
	return func() tea.Msg {
		data, err := backend.Submit(context.Background(), code)
		return SubmitResultMsg{Epoch: epoch, Report: data, Err: err}
	}
}

func (m *Model) logout() tea.Cmd {
	backend, epoch := m.deps.Backend, m.epoch
	return func() tea.Msg {
		return LogoutDoneMsg{Epoch: epoch, Err: backend.Logout(context.Background())}
	}
}

func (m *Model) notify(path string) tea.Cmd {
	fn := m.deps.Notify
	if fn == nil || !m.config.GetNotificationsEnabled() {
		return nil
	}
	return func() tea.Msg {
		return NotifyDoneMsg{Err: fn(path)}
	}
}
