package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// headerTitle is the left-hand title; it renders bold.
const headerTitle = " codecheck"

// Header represents the top header bar: title, location, session banner
type Header struct {
	width         int
	repo          string
	path          string
	authenticated bool
	username      string
	checking      bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{checking: true}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetLocation sets the repository ("owner/name") and path being browsed
func (h *Header) SetLocation(repo, path string) {
	h.repo = repo
	h.path = path
}

// SetSession sets the session banner. Until it is called the header shows
// that the identity check is in progress.
func (h *Header) SetSession(authenticated bool, username string) {
	h.checking = false
	h.authenticated = authenticated
	h.username = username
}

// ResetSession returns the banner to the in-progress state
func (h *Header) ResetSession() {
	h.checking = true
	h.authenticated = false
	h.username = ""
}

// location renders "owner/name:path" or "" when no repository is active
func (h *Header) location() string {
	if h.repo == "" {
		return ""
	}
	if h.path == "" {
		return h.repo
	}
	return h.repo + ":" + h.path
}

// banner renders the session portion on the right
func (h *Header) banner() string {
	switch {
	case h.checking:
		return "checking session..."
	case h.authenticated && h.username != "":
		return "@" + h.username
	case h.authenticated:
		return "signed in"
	default:
		return "not signed in"
	}
}

// View renders the header
func (h *Header) View() string {
	leftText := headerTitle
	if loc := h.location(); loc != "" {
		leftText += "  " + loc
	}
	rightText := h.banner() + " "

	// Pad by display width so wide runes in paths or names line up
	paddingLen := h.width - runewidth.StringWidth(leftText) - runewidth.StringWidth(rightText)
	if paddingLen < 1 {
		avail := h.width - runewidth.StringWidth(rightText) - 1
		if avail < len(headerTitle) {
			avail = len(headerTitle)
		}
		leftText = runewidth.Truncate(leftText, avail, "…")
		paddingLen = h.width - runewidth.StringWidth(leftText) - runewidth.StringWidth(rightText)
		if paddingLen < 0 {
			paddingLen = 0
		}
	}

	fullContent := leftText + strings.Repeat(" ", paddingLen) + rightText
	mutedFrom := len([]rune(leftText)) + paddingLen
	if h.authenticated {
		mutedFrom = -1
	}

	return h.renderGradient(fullContent, mutedFrom)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// Runes from index mutedFrom on are rendered muted; -1 disables muting.
func (h *Header) renderGradient(content string, mutedFrom int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	titleLen := len([]rune(headerTitle))

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < titleLen)

		if mutedFrom >= 0 && i >= mutedFrom {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
