package ui

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// lexerFor picks a lexer from the file name, then from the content, then
// falls back to plain text.
func lexerFor(filename, code string) chroma.Lexer {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil && code != "" {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// LanguageName returns the display name of the language detected for code
func LanguageName(filename, code string) string {
	return lexerFor(filename, code).Config().Name
}

// HighlightCode applies syntax highlighting to code for terminal display.
// On any failure the code is returned unchanged.
func HighlightCode(code, filename string) string {
	lexer := lexerFor(filename, code)

	style := styles.Get(CurrentTheme().GetChromaStyle())
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}
