package browse

import "github.com/zhubert/codecheck/internal/errors"

// RepoBrowser is the repository list state. Every activation replaces the
// previous list wholesale.
type RepoBrowser struct {
	generation uint64
	state      LoadState
	repos      []Repository
	message    string
	err        error
	active     Repository
}

// NewRepoBrowser returns an idle repository browser.
func NewRepoBrowser() *RepoBrowser {
	return &RepoBrowser{}
}

// State returns the list's load state.
func (b *RepoBrowser) State() LoadState {
	return b.state
}

// Repositories returns the last applied list.
func (b *RepoBrowser) Repositories() []Repository {
	return b.repos
}

// Begin clears the list and returns the Token the response must present.
func (b *RepoBrowser) Begin() Token {
	b.generation++
	b.state = StateLoading
	b.repos = nil
	b.message = ""
	b.err = nil
	return Token{Generation: b.generation}
}

// Apply installs a repository-list response, returning false for a stale
// Token.
func (b *RepoBrowser) Apply(tok Token, listing Listing[Repository], err error) bool {
	if tok.Generation != b.generation {
		return false
	}
	b.repos = nil
	b.message = ""
	b.err = nil

	switch {
	case err != nil && errors.Is(err, errors.KindPayload):
		b.state = StateNotSequence
		b.message = errors.Detail(err)
	case err != nil:
		b.state = StateFailed
		b.err = err
	case !listing.Sequence:
		b.state = StateNotSequence
		b.message = listing.Message
	default:
		b.state = StateLoaded
		b.repos = listing.Items
	}
	return true
}

// SetActive records the repository the file panel is browsing.
func (b *RepoBrowser) SetActive(r Repository) {
	b.active = r
}

// Active returns the repository set by SetActive.
func (b *RepoBrowser) Active() Repository {
	return b.active
}

// Rows projects the list into the repository panel's rows.
func (b *RepoBrowser) Rows() []Row {
	switch b.state {
	case StateLoading:
		return []Row{{Kind: RowLoading, Label: "Loading repositories..."}}
	case StateFailed:
		return []Row{{Kind: RowError, Label: "Failed to fetch repositories: " + errorDetail(b.err)}}
	case StateNotSequence:
		label := "No repositories found."
		if b.message != "" {
			label = "No repositories found: " + b.message
		}
		return []Row{{Kind: RowNotice, Label: label}}
	case StateLoaded:
		rows := make([]Row, 0, len(b.repos))
		for _, r := range b.repos {
			rows = append(rows, Row{Kind: RowRepo, Label: r.FullName, Repo: r})
		}
		return rows
	}
	return nil
}
