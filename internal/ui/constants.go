// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// ListWidthRatio is the denominator for each list panel's width (1/4 of total width)
	ListWidthRatio = 4

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 60
	MinTerminalHeight = 10
)

// Flash messages
const (
	// FlashDuration is how long a flash message replaces the key bindings
	FlashDuration = 4 * time.Second
)

// Editor
const (
	// PreviewStyleFallback is the chroma style used when a theme names none
	PreviewStyleFallback = "monokai"
)
