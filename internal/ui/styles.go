package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette. Values are replaced by SetTheme; the defaults are the
// dark-purple theme.
var (
	ColorPrimary     color.Color = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   color.Color = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       color.Color = lipgloss.Color("#9CA3AF") // Gray
	ColorBorder      color.Color = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus color.Color = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          color.Color = lipgloss.Color("#1F2937") // Dark background
	ColorText        color.Color = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   color.Color = lipgloss.Color("#9CA3AF") // Muted text
	ColorTextInverse color.Color = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorDirectory   color.Color = lipgloss.Color("#A78BFA") // Light purple for directories
	ColorWarning     color.Color = lipgloss.Color("#F59E0B") // Amber for notices
	ColorInfo        color.Color = lipgloss.Color("#06B6D4") // Cyan for info
	ColorError       color.Color = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     color.Color = lipgloss.Color("#10B981") // Green for success
)

// Header styles
var HeaderStyle lipgloss.Style

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// List styles
var (
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style
	ListDirStyle      lipgloss.Style
	ListParentStyle   lipgloss.Style
	ListHintStyle     lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusNoticeStyle  lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

// Flash styles
var (
	FlashErrorStyle   lipgloss.Style
	FlashWarningStyle lipgloss.Style
	FlashInfoStyle    lipgloss.Style
	FlashSuccessStyle lipgloss.Style
)

// Editor styles
var (
	EditorTitleStyle    lipgloss.Style
	EditorModifiedStyle lipgloss.Style
)

func init() {
	regenerateStyles()
}
