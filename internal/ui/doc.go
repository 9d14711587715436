// Package ui provides the user interface components for the codecheck TUI.
//
// # Overview
//
// The ui package implements the visual components of codecheck using the Bubble Tea
// framework and Lipgloss styling library. Components hold only presentation state
// (sizes, focus, selection, scroll); what they show is pushed in by the app model
// from the browse package's state objects.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌───────────────────────────────────────────────────────┐
//	│ Header (1 line): title, active repo/path, session     │
//	├────────────┬────────────┬─────────────────────────────┤
//	│            │            │                             │
//	│   Repos    │   Files    │          Editor             │
//	│  (1/4)     │  (1/4)     │          (1/2)              │
//	│            │            │                             │
//	├────────────┴────────────┴─────────────────────────────┤
//	│ Footer (1 line): key bindings or flash message        │
//	└───────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Shows the application title, the repository and path being browsed,
// and the session banner (username or "not signed in").
//
// List: A bordered, scrollable list of browse.Row values. Used for both the
// repository panel and the file panel. Row kinds get distinct styles so that
// loading, notice and error rows read differently from entries.
//
// Editor: The code buffer. A textarea for editing, plus a read-only
// syntax-highlighted preview rendered with chroma.
//
// Footer: Context-aware key bindings, replaced temporarily by flash messages.
//
// # Focus System
//
// Three panes take focus in order: PaneRepos, PaneFiles, PaneEditor. Tab and
// shift+tab cycle. Single-letter shortcuts only apply while a list is focused so
// that they can be typed in the editor.
package ui
