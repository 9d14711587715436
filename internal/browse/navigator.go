package browse

import "github.com/zhubert/codecheck/internal/errors"

// Navigator is the FileNavigator state: the cursor, the listing rendered
// for it, and the file most recently selected for loading into the buffer.
type Navigator struct {
	cursor     Cursor
	generation uint64
	state      LoadState
	entries    []ContentEntry
	message    string
	err        error

	fileGeneration uint64
	pendingFile    string
}

// NewNavigator returns an idle navigator with no repository selected.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Cursor returns the current cursor.
func (n *Navigator) Cursor() Cursor {
	return n.cursor
}

// State returns the listing's load state.
func (n *Navigator) State() LoadState {
	return n.state
}

// Entries returns the entries of the last applied listing.
func (n *Navigator) Entries() []ContentEntry {
	return n.entries
}

// Err returns the failure of the last applied listing, if it failed.
func (n *Navigator) Err() error {
	return n.err
}

// Load moves the cursor to (owner, repo, path), clears what was rendered,
// and returns the Token the listing response must present.
func (n *Navigator) Load(owner, repo, path string) Token {
	n.generation++
	n.cursor = Cursor{Owner: owner, Repo: repo, Path: path}
	n.state = StateLoading
	n.entries = nil
	n.message = ""
	n.err = nil
	return Token{Generation: n.generation, Cursor: n.cursor}
}

// Ascend loads the parent of the current path. ok is false at the root,
// where no parent row is rendered.
func (n *Navigator) Ascend() (tok Token, ok bool) {
	if n.cursor.Owner == "" || n.cursor.AtRoot() {
		return Token{}, false
	}
	parent := n.cursor.Parent()
	return n.Load(parent.Owner, parent.Repo, parent.Path), true
}

// IsCurrent reports whether tok belongs to the latest Load.
func (n *Navigator) IsCurrent(tok Token) bool {
	return tok.Generation == n.generation
}

// Apply installs a listing response. It returns false, changing nothing,
// when tok is stale. A KindPayload error is an unexpected shape rather than
// a failure and renders like a non-sequence.
func (n *Navigator) Apply(tok Token, listing Listing[ContentEntry], err error) bool {
	if !n.IsCurrent(tok) {
		return false
	}
	n.entries = nil
	n.message = ""
	n.err = nil

	switch {
	case err != nil && errors.Is(err, errors.KindPayload):
		n.state = StateNotSequence
		n.message = errors.Detail(err)
	case err != nil:
		n.state = StateFailed
		n.err = err
	case !listing.Sequence:
		n.state = StateNotSequence
		n.message = listing.Message
	default:
		n.state = StateLoaded
		n.entries = listing.Items
	}
	return true
}

// SelectFile records path as the file whose content may next overwrite
// the code buffer and returns the Token its response must present.
func (n *Navigator) SelectFile(path string) Token {
	n.fileGeneration++
	n.pendingFile = path
	c := n.cursor
	c.Path = path
	return Token{Generation: n.fileGeneration, Cursor: c}
}

// AcceptFile reports whether a file-content response for tok is the most
// recent selection, and clears the pending selection if so.
func (n *Navigator) AcceptFile(tok Token) bool {
	if tok.Generation != n.fileGeneration {
		return false
	}
	n.pendingFile = ""
	return true
}

// PendingFile returns the path of a file whose content is being fetched.
func (n *Navigator) PendingFile() string {
	return n.pendingFile
}

// Rows projects the navigator state into the file panel's rows. When the
// cursor is below the root the parent row always comes first.
func (n *Navigator) Rows() []Row {
	if n.state == StateIdle {
		return nil
	}

	var rows []Row
	if !n.cursor.AtRoot() {
		rows = append(rows, Row{Kind: RowParent, Label: "../", Path: ParentPath(n.cursor.Path)})
	}

	switch n.state {
	case StateLoading:
		rows = append(rows, Row{Kind: RowLoading, Label: "Loading..."})
	case StateFailed:
		rows = append(rows, Row{Kind: RowError, Label: "Failed to fetch contents: " + errorDetail(n.err)})
	case StateNotSequence:
		label := "No files found at this path."
		if n.message != "" {
			label = "No files found: " + n.message
		}
		rows = append(rows, Row{Kind: RowNotice, Label: label})
	case StateLoaded:
		for _, e := range n.entries {
			if e.Kind == KindDir {
				rows = append(rows, Row{Kind: RowDir, Label: e.Name + "/", Path: e.Path})
			} else {
				rows = append(rows, Row{Kind: RowFile, Label: e.Name, Path: e.Path})
			}
		}
	}
	return rows
}

// Empty reports a successfully loaded directory with no entries, which is
// distinct from "not found".
func (n *Navigator) Empty() bool {
	return n.state == StateLoaded && len(n.entries) == 0
}
