package browse

import "strings"

// Session is the identity of the current user, fixed for one load of the
// client.
type Session struct {
	Authenticated bool
	Username      string
	AvatarURL     string

	// Err is set when the identity query failed and the session was
	// degraded to unauthenticated.
	Err error
}

// Anonymous returns the unauthenticated session, recording why when the
// identity query itself failed.
func Anonymous(err error) Session {
	return Session{Err: err}
}

// Repository is one entry of the remote repository listing.
type Repository struct {
	FullName string // "owner/name"
}

// Split returns the owner and name halves of FullName.
func (r Repository) Split() (owner, name string, ok bool) {
	owner, name, ok = strings.Cut(r.FullName, "/")
	if !ok || owner == "" || name == "" {
		return "", "", false
	}
	return owner, name, true
}

// EntryKind distinguishes directories from files in a listing.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

// ParseEntryKind maps the listing's "type" field. Only "dir" is a
// directory; files, symlinks and submodules all open as files.
func ParseEntryKind(s string) EntryKind {
	if s == "dir" {
		return KindDir
	}
	return KindFile
}

func (k EntryKind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// ContentEntry is one child of a directory listing.
type ContentEntry struct {
	Name string
	Path string
	Kind EntryKind
}

// Listing is the decoded result of an endpoint that should return a JSON
// array. When the body was valid JSON but not an array, Sequence is false,
// Items is nil and Message carries the payload's "message" field if any.
type Listing[T any] struct {
	Items    []T
	Sequence bool
	Message  string
}

// LoadState is the lifecycle of a panel's content.
type LoadState int

const (
	StateIdle        LoadState = iota // nothing requested yet
	StateLoading                      // request in flight
	StateLoaded                       // sequence received (possibly empty)
	StateNotSequence                  // payload was not a sequence
	StateFailed                       // transport or status failure
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateLoaded:
		return "Loaded"
	case StateNotSequence:
		return "NotSequence"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
