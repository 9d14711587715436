package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/codecheck/internal/browse"
)

// List is a bordered, scrollable panel of browse rows.
type List struct {
	title        string
	rows         []browse.Row
	hint         []string
	selectedIdx  int
	scrollOffset int
	width        int
	height       int
	focused      bool
}

// NewList creates an empty list with the given title
func NewList(title string) *List {
	return &List{title: title}
}

// SetSize sets the list dimensions
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height

	ctx := GetViewContext()
	ctx.Log("List.SetSize",
		"title", l.title,
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// SetFocused sets the focus state
func (l *List) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns the focus state
func (l *List) IsFocused() bool {
	return l.focused
}

// SetTitle sets the panel title
func (l *List) SetTitle(title string) {
	l.title = title
}

// SetRows replaces the rows. The selection moves back to the top when the
// set of rows is a different listing; a re-render of the same rows keeps it.
func (l *List) SetRows(rows []browse.Row) {
	if !sameRows(l.rows, rows) {
		l.selectedIdx = 0
		l.scrollOffset = 0
	}
	l.rows = rows
	l.clamp()
}

// Rows returns the current rows
func (l *List) Rows() []browse.Row {
	return l.rows
}

// SetHint sets muted lines shown below the rows. They are not rows and
// cannot be selected.
func (l *List) SetHint(lines ...string) {
	l.hint = lines
}

// Move moves the selection by delta, stopping at either end
func (l *List) Move(delta int) {
	l.selectedIdx += delta
	l.clamp()
}

// Home selects the first row
func (l *List) Home() {
	l.selectedIdx = 0
	l.clamp()
}

// End selects the last row
func (l *List) End() {
	l.selectedIdx = len(l.rows) - 1
	l.clamp()
}

// PageSize returns the number of rows visible at once
func (l *List) PageSize() int {
	n := GetViewContext().InnerHeight(l.height) - TitleHeight
	if n < 1 {
		return 1
	}
	return n
}

// SelectedIndex returns the index of the selected row
func (l *List) SelectedIndex() int {
	return l.selectedIdx
}

// Selected returns the selected row; ok is false when the list is empty
func (l *List) Selected() (browse.Row, bool) {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.rows) {
		return browse.Row{}, false
	}
	return l.rows[l.selectedIdx], true
}

// SelectKind moves the selection to the first row of the given kind and
// reports whether one exists.
func (l *List) SelectKind(kind browse.RowKind) bool {
	for i, r := range l.rows {
		if r.Kind == kind {
			l.selectedIdx = i
			return true
		}
	}
	return false
}

func (l *List) clamp() {
	if l.selectedIdx >= len(l.rows) {
		l.selectedIdx = len(l.rows) - 1
	}
	if l.selectedIdx < 0 {
		l.selectedIdx = 0
	}
}

func sameRows(a, b []browse.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rowStyle picks the style for a row by kind
func rowStyle(r browse.Row) lipgloss.Style {
	switch r.Kind {
	case browse.RowDir:
		return ListDirStyle
	case browse.RowParent:
		return ListParentStyle
	case browse.RowLoading:
		return StatusLoadingStyle
	case browse.RowNotice:
		return StatusNoticeStyle
	case browse.RowError:
		return StatusErrorStyle
	default:
		return ListItemStyle
	}
}

// View renders the list panel
func (l *List) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if l.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(l.width)
	visibleHeight := l.PageSize()
	// Horizontal padding of the row styles
	textWidth := innerWidth - 2
	if textWidth < 1 {
		textWidth = 1
	}

	var lines []string
	for i, r := range l.rows {
		label := ansi.Truncate(r.Label, textWidth, "…")
		rs := rowStyle(r)
		if i == l.selectedIdx && l.focused && r.Selectable() {
			rs = ListSelectedStyle
		}
		lines = append(lines, rs.Width(innerWidth).Render(label))
	}
	for _, h := range l.hint {
		for _, hl := range strings.Split(h, "\n") {
			lines = append(lines, ListHintStyle.Width(innerWidth).Render(ansi.Truncate(hl, textWidth, "…")))
		}
	}

	// Adjust scroll to keep the selected row visible
	if l.selectedIdx < l.scrollOffset {
		l.scrollOffset = l.selectedIdx
	} else if l.selectedIdx >= l.scrollOffset+visibleHeight {
		l.scrollOffset = l.selectedIdx - visibleHeight + 1
	}
	maxScroll := len(lines) - visibleHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if l.scrollOffset > maxScroll {
		l.scrollOffset = maxScroll
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}

	end := l.scrollOffset + visibleHeight
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[l.scrollOffset:end]

	title := PanelTitleStyle.Render(ansi.Truncate(l.title, innerWidth-2, "…"))
	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, visible...)...)

	return style.Width(l.width).Height(l.height).Render(content)
}
