package browse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	cerrors "github.com/zhubert/codecheck/internal/errors"
)

func TestParentPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a/b/c", "a/b"},
		{"a", ""},
		{"", ""},
		{"src/a.txt", "src"},
		{"dir with space/x", "dir with space"},
		{"a/%2F/b", "a/%2F"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ParentPath(tt.path); got != tt.want {
				t.Errorf("ParentPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRepository_Split(t *testing.T) {
	tests := []struct {
		full  string
		owner string
		name  string
		ok    bool
	}{
		{"octo/hello", "octo", "hello", true},
		{"octo/hello/extra", "octo", "hello/extra", true},
		{"nodivider", "", "", false},
		{"/name", "", "", false},
		{"owner/", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			owner, name, ok := Repository{FullName: tt.full}.Split()
			if owner != tt.owner || name != tt.name || ok != tt.ok {
				t.Errorf("Split(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.full, owner, name, ok, tt.owner, tt.name, tt.ok)
			}
		})
	}
}

func TestParseEntryKind(t *testing.T) {
	if ParseEntryKind("dir") != KindDir {
		t.Error("dir should be a directory")
	}
	for _, s := range []string{"file", "symlink", "submodule", ""} {
		if ParseEntryKind(s) != KindFile {
			t.Errorf("%q should open as a file", s)
		}
	}
}

func TestNavigator_ParentRowOnlyBelowRoot(t *testing.T) {
	paths := []string{"", "a", "a/b", "a/b/c"}

	for _, p := range paths {
		t.Run("path="+p, func(t *testing.T) {
			n := NewNavigator()
			tok := n.Load("octo", "hello", p)
			n.Apply(tok, Listing[ContentEntry]{Sequence: true}, nil)

			parents := CountKind(n.Rows(), RowParent)
			want := 0
			if p != "" {
				want = 1
			}
			if parents != want {
				t.Errorf("parent rows = %d, want %d", parents, want)
			}
		})
	}
}

func TestNavigator_ListingWithOneFile(t *testing.T) {
	n := NewNavigator()
	tok := n.Load("octo", "hello", "src")
	applied := n.Apply(tok, Listing[ContentEntry]{
		Sequence: true,
		Items:    []ContentEntry{{Name: "a.txt", Path: "src/a.txt", Kind: KindFile}},
	}, nil)
	if !applied {
		t.Fatal("current response should apply")
	}

	want := []Row{
		{Kind: RowParent, Label: "../", Path: ""},
		{Kind: RowFile, Label: "a.txt", Path: "src/a.txt"},
	}
	if diff := cmp.Diff(want, n.Rows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigator_DirectoriesAreMarked(t *testing.T) {
	n := NewNavigator()
	tok := n.Load("octo", "hello", "")
	n.Apply(tok, Listing[ContentEntry]{
		Sequence: true,
		Items: []ContentEntry{
			{Name: "src", Path: "src", Kind: KindDir},
			{Name: "README.md", Path: "README.md", Kind: KindFile},
		},
	}, nil)

	rows := n.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Kind != RowDir || rows[0].Label != "src/" {
		t.Errorf("row 0 = %+v, want dir src/", rows[0])
	}
	if rows[1].Kind != RowFile || rows[1].Label != "README.md" {
		t.Errorf("row 1 = %+v, want file README.md", rows[1])
	}
}

func TestNavigator_NotSequenceRendersOneNotice(t *testing.T) {
	for _, p := range []string{"", "docs"} {
		n := NewNavigator()
		tok := n.Load("octo", "hello", p)
		n.Apply(tok, Listing[ContentEntry]{Sequence: false, Message: "Not Found"}, nil)

		rows := n.Rows()
		if got := CountKind(rows, RowNotice); got != 1 {
			t.Errorf("path %q: notice rows = %d, want 1", p, got)
		}
		if got := CountKind(rows, RowDir) + CountKind(rows, RowFile); got != 0 {
			t.Errorf("path %q: entry rows = %d, want 0", p, got)
		}
		if n.State() != StateNotSequence {
			t.Errorf("state = %v", n.State())
		}
	}
}

func TestNavigator_FailureRendersErrorRow(t *testing.T) {
	n := NewNavigator()
	tok := n.Load("octo", "hello", "")
	n.Apply(tok, Listing[ContentEntry]{}, errors.New("connection refused"))

	rows := n.Rows()
	if len(rows) != 1 || rows[0].Kind != RowError {
		t.Fatalf("rows = %+v, want single error row", rows)
	}
	if rows[0].Label != "Failed to fetch contents: connection refused" {
		t.Errorf("label = %q", rows[0].Label)
	}
}

func TestNavigator_EmptyDirectoryIsNotNotFound(t *testing.T) {
	n := NewNavigator()
	tok := n.Load("octo", "hello", "empty")
	n.Apply(tok, Listing[ContentEntry]{Sequence: true, Items: []ContentEntry{}}, nil)

	if !n.Empty() {
		t.Error("expected Empty()")
	}
	if n.State() != StateLoaded {
		t.Errorf("state = %v, want Loaded", n.State())
	}
	if CountKind(n.Rows(), RowNotice) != 0 {
		t.Error("empty directory must not render a not-found notice")
	}
}

func TestNavigator_LoadClearsPreviousEntries(t *testing.T) {
	n := NewNavigator()
	tok := n.Load("octo", "hello", "")
	n.Apply(tok, Listing[ContentEntry]{Sequence: true, Items: []ContentEntry{{Name: "x", Path: "x"}}}, nil)

	n.Load("octo", "hello", "src")
	rows := n.Rows()
	if CountKind(rows, RowFile) != 0 {
		t.Error("entries from the previous path should be cleared on load")
	}
	if CountKind(rows, RowLoading) != 1 {
		t.Error("expected a loading row")
	}
}

func TestNavigator_StaleResponseDiscarded(t *testing.T) {
	n := NewNavigator()
	first := n.Load("octo", "hello", "a")
	second := n.Load("octo", "hello", "b")

	if n.Apply(first, Listing[ContentEntry]{Sequence: true, Items: []ContentEntry{{Name: "stale", Path: "a/stale"}}}, nil) {
		t.Fatal("stale response should not apply")
	}
	if n.State() != StateLoading {
		t.Errorf("state = %v, want Loading after stale response", n.State())
	}

	if !n.Apply(second, Listing[ContentEntry]{Sequence: true, Items: []ContentEntry{{Name: "fresh", Path: "b/fresh"}}}, nil) {
		t.Fatal("current response should apply")
	}
	if n.Cursor().Path != "b" {
		t.Errorf("cursor path = %q, want b", n.Cursor().Path)
	}
	if got := n.Entries(); len(got) != 1 || got[0].Name != "fresh" {
		t.Errorf("entries = %+v", got)
	}
}

func TestNavigator_Ascend(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"a/b/c", "a/b"},
		{"a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			n := NewNavigator()
			n.Load("octo", "hello", tt.from)

			tok, ok := n.Ascend()
			if !ok {
				t.Fatal("Ascend() should succeed below root")
			}
			if tok.Cursor.Path != tt.want || n.Cursor().Path != tt.want {
				t.Errorf("ascended to %q, want %q", tok.Cursor.Path, tt.want)
			}
			if tok.Cursor.Owner != "octo" || tok.Cursor.Repo != "hello" {
				t.Errorf("ascend changed repository: %+v", tok.Cursor)
			}
		})
	}

	n := NewNavigator()
	n.Load("octo", "hello", "")
	if _, ok := n.Ascend(); ok {
		t.Error("Ascend() at root should report false")
	}
}

func TestNavigator_FileSelectionLastWins(t *testing.T) {
	n := NewNavigator()
	n.Load("octo", "hello", "src")

	first := n.SelectFile("src/a.go")
	second := n.SelectFile("src/b.go")
	if second.Cursor.Path != "src/b.go" || second.Cursor.Repo != "hello" {
		t.Errorf("token cursor = %+v", second.Cursor)
	}

	if n.AcceptFile(first) {
		t.Error("older file response should be rejected")
	}
	if n.PendingFile() != "src/b.go" {
		t.Errorf("pending = %q", n.PendingFile())
	}
	if !n.AcceptFile(second) {
		t.Error("latest file response should be accepted")
	}
	if n.PendingFile() != "" {
		t.Error("pending file should clear after accept")
	}
}

func TestRepoBrowser_Rows(t *testing.T) {
	tests := []struct {
		name    string
		listing Listing[Repository]
		err     error
		want    []Row
	}{
		{
			name:    "sequence",
			listing: Listing[Repository]{Sequence: true, Items: []Repository{{FullName: "a/b"}, {FullName: "c/d"}}},
			want: []Row{
				{Kind: RowRepo, Label: "a/b", Repo: Repository{FullName: "a/b"}},
				{Kind: RowRepo, Label: "c/d", Repo: Repository{FullName: "c/d"}},
			},
		},
		{
			name:    "not a sequence",
			listing: Listing[Repository]{Message: "Bad credentials"},
			want:    []Row{{Kind: RowNotice, Label: "No repositories found: Bad credentials"}},
		},
		{
			name: "transport failure",
			err:  errors.New("dial tcp: refused"),
			want: []Row{{Kind: RowError, Label: "Failed to fetch repositories: dial tcp: refused"}},
		},
		{
			name:    "empty sequence",
			listing: Listing[Repository]{Sequence: true},
			want:    []Row{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewRepoBrowser()
			tok := b.Begin()
			b.Apply(tok, tt.listing, tt.err)
			if diff := cmp.Diff(tt.want, b.Rows()); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRepoBrowser_ReactivationReplaces(t *testing.T) {
	b := NewRepoBrowser()
	tok := b.Begin()
	b.Apply(tok, Listing[Repository]{Sequence: true, Items: []Repository{{FullName: "a/b"}}}, nil)

	tok = b.Begin()
	b.Apply(tok, Listing[Repository]{Sequence: true, Items: []Repository{{FullName: "a/b"}}}, nil)

	if got := CountKind(b.Rows(), RowRepo); got != 1 {
		t.Errorf("repo rows = %d after reactivation, want 1", got)
	}
}

func TestRepoBrowser_StaleResponseDiscarded(t *testing.T) {
	b := NewRepoBrowser()
	old := b.Begin()
	cur := b.Begin()

	if b.Apply(old, Listing[Repository]{Sequence: true}, nil) {
		t.Error("stale response applied")
	}
	if !b.Apply(cur, Listing[Repository]{Sequence: true}, nil) {
		t.Error("current response rejected")
	}
}

func TestCodeBuffer(t *testing.T) {
	var b CodeBuffer
	if !b.Empty() {
		t.Fatal("new buffer should be empty")
	}

	b.Set("print(1)")
	if b.Text() != "print(1)" || !b.Modified() {
		t.Errorf("typed text not recorded: %q modified=%v", b.Text(), b.Modified())
	}

	b.Load("src/a.py", "x = 1\n")
	if b.Text() != "x = 1\n" || b.Source() != "src/a.py" || b.Modified() {
		t.Errorf("load should replace wholesale: %q %q %v", b.Text(), b.Source(), b.Modified())
	}

	b.Set("x = 1\n")
	if b.Modified() {
		t.Error("setting identical text is not a modification")
	}

	b.Set(" ")
	if b.Empty() {
		t.Error("whitespace is not empty")
	}
}

func TestAnonymous(t *testing.T) {
	cause := errors.New("boom")
	s := Anonymous(cause)
	if s.Authenticated {
		t.Error("anonymous session must not be authenticated")
	}
	if s.Err != cause {
		t.Error("cause not recorded")
	}
}

func TestNavigator_PayloadErrorRendersNotice(t *testing.T) {
	n := NewNavigator()
	tok := n.Load("octo", "hello", "")
	err := cerrors.E(cerrors.Op("api.Contents"), cerrors.KindPayload, "response is not valid JSON")
	n.Apply(tok, Listing[ContentEntry]{}, err)

	rows := n.Rows()
	if len(rows) != 1 || rows[0].Kind != RowNotice {
		t.Fatalf("rows = %+v, want single notice row", rows)
	}
	if rows[0].Label != "No files found: response is not valid JSON" {
		t.Errorf("label = %q", rows[0].Label)
	}
}

func TestNavigator_StatusErrorShowsDetail(t *testing.T) {
	n := NewNavigator()
	tok := n.Load("octo", "hello", "")
	cause := cerrors.E(cerrors.Op("api.Contents"), cerrors.KindStatus, errors.New("404 Not Found"))
	n.Apply(tok, Listing[ContentEntry]{}, cause)

	rows := n.Rows()
	if len(rows) != 1 || rows[0].Label != "Failed to fetch contents: 404 Not Found" {
		t.Errorf("rows = %+v", rows)
	}
}
