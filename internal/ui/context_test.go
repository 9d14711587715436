package ui

import (
	"sync"
	"testing"
)

func TestGetViewContext_Singleton(t *testing.T) {
	ctx1 := GetViewContext()
	ctx2 := GetViewContext()

	if ctx1 != ctx2 {
		t.Error("GetViewContext should return the same instance")
	}
}

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(120, 40)

	if ctx.TerminalWidth != 120 {
		t.Errorf("Expected TerminalWidth 120, got %d", ctx.TerminalWidth)
	}

	if ctx.TerminalHeight != 40 {
		t.Errorf("Expected TerminalHeight 40, got %d", ctx.TerminalHeight)
	}

	expectedContent := 40 - HeaderHeight - FooterHeight
	if ctx.ContentHeight != expectedContent {
		t.Errorf("Expected ContentHeight %d, got %d", expectedContent, ctx.ContentHeight)
	}

	if ctx.RepoWidth != 30 || ctx.FileWidth != 30 {
		t.Errorf("Expected list widths 30/30, got %d/%d", ctx.RepoWidth, ctx.FileWidth)
	}

	if ctx.EditorWidth != 60 {
		t.Errorf("Expected EditorWidth 60, got %d", ctx.EditorWidth)
	}

	if ctx.RepoWidth+ctx.FileWidth+ctx.EditorWidth != 120 {
		t.Error("panel widths should add up to the terminal width")
	}
}

func TestViewContext_ClampsTinyTerminal(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(10, 3)

	if ctx.TerminalWidth != MinTerminalWidth || ctx.TerminalHeight != MinTerminalHeight {
		t.Errorf("got %dx%d, want clamped to %dx%d",
			ctx.TerminalWidth, ctx.TerminalHeight, MinTerminalWidth, MinTerminalHeight)
	}
	if ctx.ContentHeight <= 0 {
		t.Errorf("ContentHeight = %d, want positive", ctx.ContentHeight)
	}
}

func TestViewContext_InnerWidth(t *testing.T) {
	ctx := GetViewContext()

	tests := []struct {
		panelWidth int
		expected   int
	}{
		{40, 40 - BorderSize},
		{80, 80 - BorderSize},
		{BorderSize, 0},
	}

	for _, tt := range tests {
		result := ctx.InnerWidth(tt.panelWidth)
		if result != tt.expected {
			t.Errorf("InnerWidth(%d) = %d, want %d", tt.panelWidth, result, tt.expected)
		}
	}
}

func TestViewContext_InnerHeight(t *testing.T) {
	ctx := GetViewContext()

	tests := []struct {
		panelHeight int
		expected    int
	}{
		{24, 24 - BorderSize},
		{10, 10 - BorderSize},
		{BorderSize, 0},
	}

	for _, tt := range tests {
		result := ctx.InnerHeight(tt.panelHeight)
		if result != tt.expected {
			t.Errorf("InnerHeight(%d) = %d, want %d", tt.panelHeight, result, tt.expected)
		}
	}
}

func TestViewContext_ConcurrentAccess(t *testing.T) {
	ctx := GetViewContext()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ctx.UpdateTerminalSize(80+n, 24+n)
			_ = ctx.InnerWidth(40)
			_ = ctx.InnerHeight(20)
		}(i)
	}
	wg.Wait()
}
