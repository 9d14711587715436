// Package browse holds the client's navigation state as plain values:
// the session, the repository list, the navigation cursor with its file
// listing, and the shared code buffer.
//
// Nothing here performs I/O. Callers start an operation (which returns a
// Token), run the request elsewhere, and hand the result back with Apply.
// A result whose Token is no longer current is a stale response and is
// discarded. Rendering is a projection of state through Rows.
package browse
