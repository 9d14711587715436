package browse

import "github.com/zhubert/codecheck/internal/errors"

// RowKind classifies a rendered row.
type RowKind int

const (
	RowRepo    RowKind = iota // a repository; activating opens its root
	RowParent                 // "../"; activating ascends one level
	RowDir                    // a directory; activating descends
	RowFile                   // a file; activating loads it into the buffer
	RowLoading                // request in flight
	RowNotice                 // payload was not a sequence
	RowError                  // transport or status failure
)

// Row is one line of a list panel.
type Row struct {
	Kind  RowKind
	Label string
	Path  string     // target path for RowParent, RowDir, RowFile
	Repo  Repository // for RowRepo
}

// Selectable reports whether activating the row does anything.
func (r Row) Selectable() bool {
	switch r.Kind {
	case RowRepo, RowParent, RowDir, RowFile:
		return true
	}
	return false
}

// CountKind returns how many rows have the given kind.
func CountKind(rows []Row, kind RowKind) int {
	n := 0
	for _, r := range rows {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

func errorDetail(err error) string {
	if err == nil {
		return "unknown error"
	}
	return errors.Detail(err)
}
