package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Pane identifies which panel has focus
type Pane int

const (
	PaneRepos Pane = iota
	PaneFiles
	PaneEditor
)

// String returns the pane name used in logs
func (p Pane) String() string {
	switch p {
	case PaneRepos:
		return "repos"
	case PaneFiles:
		return "files"
	case PaneEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// FlashType is the severity of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// FlashMessage is a transient message that replaces the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has been shown long enough
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg is sent after FlashDuration to dismiss an expired flash
type FlashTickMsg time.Time

// FlashTick returns a command that fires a FlashTickMsg once the default
// flash duration has passed
func FlashTick() tea.Cmd {
	return tea.Tick(FlashDuration, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width         int
	pane          Pane
	authenticated bool
	previewing    bool
	flashMessage  *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the state that decides which bindings are shown
func (f *Footer) SetContext(pane Pane, authenticated, previewing bool) {
	f.pane = pane
	f.authenticated = authenticated
	f.previewing = previewing
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows a message for the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, FlashDuration)
}

// SetFlashWithDuration shows a message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes the flash if it has expired and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// bindings returns the shortcuts relevant to the current context
func (f *Footer) bindings() []KeyBinding {
	var b []KeyBinding
	switch f.pane {
	case PaneRepos:
		b = append(b, KeyBinding{"↑/↓", "navigate"}, KeyBinding{"enter", "browse"})
		if !f.authenticated {
			b = append(b, KeyBinding{"y", "copy login url"})
		}
	case PaneFiles:
		b = append(b,
			KeyBinding{"↑/↓", "navigate"},
			KeyBinding{"enter", "open"},
			KeyBinding{"backspace", "up"},
		)
	case PaneEditor:
		if f.previewing {
			b = append(b, KeyBinding{"↑/↓", "scroll"}, KeyBinding{"ctrl+p", "edit"})
		} else {
			b = append(b, KeyBinding{"ctrl+p", "preview"}, KeyBinding{"ctrl+v", "paste"})
		}
	}
	b = append(b,
		KeyBinding{"ctrl+s", "check"},
		KeyBinding{"tab", "switch pane"},
		KeyBinding{"ctrl+r", "reload"},
	)
	if f.authenticated {
		b = append(b, KeyBinding{"ctrl+o", "logout"})
	}
	if f.pane != PaneEditor {
		b = append(b, KeyBinding{"q", "quit"})
	}
	return b
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	if f.width > 0 {
		content = ansi.Truncate(content, f.width-2, "…")
	}

	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	var style lipgloss.Style
	switch f.flashMessage.Type {
	case FlashError:
		icon, style = "✕", FlashErrorStyle
	case FlashWarning:
		icon, style = "⚠", FlashWarningStyle
	case FlashSuccess:
		icon, style = "✓", FlashSuccessStyle
	default:
		icon, style = "ℹ", FlashInfoStyle
	}

	text := icon + " " + f.flashMessage.Text
	if f.width > 0 {
		text = ansi.Truncate(text, f.width-2, "…")
	}
	return FooterStyle.Width(f.width).Render(style.Render(text))
}
