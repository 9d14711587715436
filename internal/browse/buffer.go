package browse

// CodeBuffer is the single text value submitted for analysis. The user
// types into it or a file load replaces it; the last write wins.
type CodeBuffer struct {
	text     string
	source   string
	modified bool
}

// Text returns the buffer contents.
func (b *CodeBuffer) Text() string {
	return b.text
}

// Source returns the repository path of the last file loaded, or "" if
// nothing has been loaded.
func (b *CodeBuffer) Source() string {
	return b.source
}

// Modified reports whether the text was edited after the last load.
func (b *CodeBuffer) Modified() bool {
	return b.modified
}

// Set records text typed by the user.
func (b *CodeBuffer) Set(text string) {
	if text == b.text {
		return
	}
	b.text = text
	b.modified = true
}

// Load replaces the buffer with the content of the file at path.
func (b *CodeBuffer) Load(path, content string) {
	b.text = content
	b.source = path
	b.modified = false
}

// Empty reports whether there is nothing to submit.
func (b *CodeBuffer) Empty() bool {
	return b.text == ""
}
