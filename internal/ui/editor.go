package ui

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Editor is the code buffer panel: a textarea for editing and a
// highlighted read-only preview.
type Editor struct {
	input    textarea.Model
	preview  viewport.Model
	source   string
	modified bool
	previews bool
	width    int
	height   int
	focused  bool
}

// NewEditor creates a new editor panel
func NewEditor() *Editor {
	ti := textarea.New()
	ti.Placeholder = "Type or paste code here, or open a file from a repository..."
	ti.CharLimit = 0
	ti.MaxHeight = 0
	ti.ShowLineNumbers = true
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Editor{
		input:   ti,
		preview: vp,
	}
}

// SetSize sets the editor panel dimensions
func (e *Editor) SetSize(width, height int) {
	e.width = width
	e.height = height

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(width)
	innerHeight := ctx.InnerHeight(height) - TitleHeight
	if innerHeight < 1 {
		innerHeight = 1
	}

	e.input.SetWidth(innerWidth)
	e.input.SetHeight(innerHeight)
	e.preview.SetWidth(innerWidth)
	e.preview.SetHeight(innerHeight)

	ctx.Log("Editor.SetSize", "outerWidth", width, "outerHeight", height, "innerWidth", innerWidth, "innerHeight", innerHeight)
}

// SetFocused sets the focus state
func (e *Editor) SetFocused(focused bool) {
	e.focused = focused
	if focused && !e.previews {
		e.input.Focus()
	} else {
		e.input.Blur()
	}
}

// IsFocused returns the focus state
func (e *Editor) IsFocused() bool {
	return e.focused
}

// Value returns the text in the editor
func (e *Editor) Value() string {
	return e.input.Value()
}

// SetValue replaces the text without changing the source
func (e *Editor) SetValue(text string) {
	e.input.SetValue(text)
	e.refreshPreview()
}

// InsertString inserts text at the cursor
func (e *Editor) InsertString(text string) {
	e.input.InsertString(text)
	e.refreshPreview()
}

// SetSource records the file the text was loaded from and whether it has
// been edited since; both show in the title.
func (e *Editor) SetSource(path string, modified bool) {
	e.source = path
	e.modified = modified
	e.refreshPreview()
}

// Source returns the path shown in the title
func (e *Editor) Source() string {
	return e.source
}

// TogglePreview switches between editing and the highlighted preview
func (e *Editor) TogglePreview() {
	e.previews = !e.previews
	if e.previews {
		e.input.Blur()
		e.refreshPreview()
		e.preview.GotoTop()
	} else if e.focused {
		e.input.Focus()
	}
}

// IsPreviewing reports whether the preview is shown
func (e *Editor) IsPreviewing() bool {
	return e.previews
}

func (e *Editor) refreshPreview() {
	if !e.previews {
		return
	}
	e.preview.SetContent(HighlightCode(e.input.Value(), e.source))
}

// Update handles messages while the editor is focused. Keys edit the text,
// or scroll when the preview is shown.
func (e *Editor) Update(msg tea.Msg) (*Editor, tea.Cmd) {
	var cmd tea.Cmd
	if e.previews {
		e.preview, cmd = e.preview.Update(msg)
		return e, cmd
	}
	if !e.focused {
		return e, nil
	}
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

// title renders the panel title: source path or "scratch", language, and
// edit/preview markers
func (e *Editor) title() string {
	name := e.source
	if name == "" {
		name = "scratch"
	}
	text := EditorTitleStyle.Render(name)
	if e.modified {
		text += EditorModifiedStyle.Render(" (modified)")
	}
	if e.previews {
		text += FooterDescStyle.Render(" [preview: " + LanguageName(e.source, e.input.Value()) + "]")
	}
	return text
}

// View renders the editor panel
func (e *Editor) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if e.focused {
		style = PanelFocusedStyle
	}

	body := e.input.View()
	if e.previews {
		body = e.preview.View()
	}

	title := lipgloss.NewStyle().Padding(0, 1).Render(ansi.Truncate(e.title(), ctx.InnerWidth(e.width)-2, "…"))
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	return style.Width(e.width).Height(e.height).Render(content)
}
