package browse

import "strings"

// Cursor is the (owner, repo, path) triple the file panel shows. Path ""
// is the repository root.
type Cursor struct {
	Owner string
	Repo  string
	Path  string
}

// AtRoot reports whether the cursor is at the repository root.
func (c Cursor) AtRoot() bool {
	return c.Path == ""
}

// Parent returns the cursor one level up. Paths are split only at "/";
// segments are otherwise opaque.
func (c Cursor) Parent() Cursor {
	c.Path = ParentPath(c.Path)
	return c
}

// ParentPath strips the last segment of p: "a/b/c" -> "a/b", "a" -> "".
func ParentPath(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// FullName renders the cursor's repository as "owner/repo".
func (c Cursor) FullName() string {
	if c.Owner == "" && c.Repo == "" {
		return ""
	}
	return c.Owner + "/" + c.Repo
}

// Token identifies one request. A response is applied only while its
// Token's Generation is still the owner's current generation.
type Token struct {
	Generation uint64
	Cursor     Cursor
}
