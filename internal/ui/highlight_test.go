package ui

import (
	"strings"
	"testing"
)

func TestLanguageName(t *testing.T) {
	tests := []struct {
		filename string
		code     string
		want     string
	}{
		{"main.go", "", "Go"},
		{"script.py", "", "Python"},
		{"README.md", "", "markdown"},
		{"", "", "plaintext"},
		{"notes.unknownext", "", "plaintext"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := LanguageName(tt.filename, tt.code); got != tt.want {
				t.Errorf("LanguageName(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestHighlightCode_PreservesText(t *testing.T) {
	code := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	out := HighlightCode(code, "main.go")

	if stripANSI(out) != code {
		t.Errorf("highlighting should only add escape codes, got %q", stripANSI(out))
	}
	if out == code {
		t.Error("expected escape codes in highlighted output")
	}
}

func TestHighlightCode_Empty(t *testing.T) {
	if got := stripANSI(HighlightCode("", "main.go")); strings.TrimSpace(got) != "" {
		t.Errorf("empty code should stay empty, got %q", got)
	}
}
