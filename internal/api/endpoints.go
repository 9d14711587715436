package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/errors"
)

type identityResponse struct {
	LoggedIn  bool   `json:"logged_in"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type repoResponse struct {
	FullName string `json:"full_name"`
}

type entryResponse struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

type fileResponse struct {
	Content *string `json:"content"`
}

type submission struct {
	Code string `json:"code"`
}

// Identity queries the current session. Callers that want the degraded
// policy should use Session instead.
func (c *Client) Identity(ctx context.Context) (browse.Session, error) {
	const op = errors.Op("api.Identity")

	data, err := c.do(ctx, op, http.MethodGet, "/api/user", nil, nil)
	if err != nil {
		return browse.Session{}, err
	}
	var resp identityResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return browse.Session{}, errors.E(op, errors.KindPayload, "identity response is not an object", err)
	}
	if !resp.LoggedIn {
		return browse.Session{}, nil
	}
	return browse.Session{
		Authenticated: true,
		Username:      resp.Username,
		AvatarURL:     resp.AvatarURL,
	}, nil
}

// Session returns the current session, degrading any failure to the
// unauthenticated session with Err recorded.
func (c *Client) Session(ctx context.Context) browse.Session {
	s, err := c.Identity(ctx)
	if err != nil {
		c.log.Info("identity check failed, treating as not authenticated", "error", err)
		return browse.Anonymous(err)
	}
	return s
}

// Logout invalidates the server-side session. The response body is
// ignored; only a transport failure is reported.
func (c *Client) Logout(ctx context.Context) error {
	const op = errors.Op("api.Logout")

	_, err := c.do(ctx, op, http.MethodGet, "/logout", nil, nil)
	if err != nil && errors.Is(err, errors.KindNetwork) {
		return err
	}
	return nil
}

// Repositories lists the repositories visible to the session.
func (c *Client) Repositories(ctx context.Context) (browse.Listing[browse.Repository], error) {
	const op = errors.Op("api.Repositories")

	data, err := c.do(ctx, op, http.MethodGet, "/api/repos", nil, nil)
	if err != nil {
		return browse.Listing[browse.Repository]{}, err
	}

	raw, ok, msg, err := decodeSequence(op, data)
	if err != nil || !ok {
		return browse.Listing[browse.Repository]{Message: msg}, err
	}
	var items []repoResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		return browse.Listing[browse.Repository]{}, errors.E(op, errors.KindPayload, "malformed repository entry", err)
	}

	repos := make([]browse.Repository, 0, len(items))
	for _, it := range items {
		repos = append(repos, browse.Repository{FullName: it.FullName})
	}
	return browse.Listing[browse.Repository]{Items: repos, Sequence: true}, nil
}

// Contents lists the directory at path ("" is the repository root).
func (c *Client) Contents(ctx context.Context, owner, repo, path string) (browse.Listing[browse.ContentEntry], error) {
	const op = errors.Op("api.Contents")

	endpoint := "/api/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/contents"
	query := url.Values{"path": {path}}

	data, err := c.do(ctx, op, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return browse.Listing[browse.ContentEntry]{}, err
	}

	raw, ok, msg, err := decodeSequence(op, data)
	if err != nil || !ok {
		return browse.Listing[browse.ContentEntry]{Message: msg}, err
	}
	var items []entryResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		return browse.Listing[browse.ContentEntry]{}, errors.E(op, errors.KindPayload, "malformed directory entry", err)
	}

	entries := make([]browse.ContentEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, browse.ContentEntry{
			Name: it.Name,
			Path: it.Path,
			Kind: browse.ParseEntryKind(it.Type),
		})
	}
	return browse.Listing[browse.ContentEntry]{Items: entries, Sequence: true}, nil
}

// FileContent fetches the text of the file at path.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	const op = errors.Op("api.FileContent")

	data, err := c.do(ctx, op, http.MethodGet, contentPath(owner, repo, path), nil, nil)
	if err != nil {
		return "", err
	}
	var resp fileResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", errors.E(op, errors.KindPayload, "file response is not an object", err)
	}
	if resp.Content == nil {
		return "", errors.E(op, errors.KindPayload, "file response has no content")
	}
	return *resp.Content, nil
}

// Submit posts code for analysis and returns the report bytes uninspected.
func (c *Client) Submit(ctx context.Context, code string) ([]byte, error) {
	const op = errors.Op("api.Submit")

	return c.do(ctx, op, http.MethodPost, "/check", nil, submission{Code: code})
}

// contentPath builds the file-content URL path. Segments are escaped
// individually so "/" keeps separating them.
func contentPath(owner, repo, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/api/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/contents/" + strings.Join(segments, "/")
}

// decodeSequence checks whether data is a JSON array. When it is valid
// JSON but not an array, ok is false and msg carries its "message" field.
func decodeSequence(op errors.Op, data []byte) (raw json.RawMessage, ok bool, msg string, err error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, false, "", errors.E(op, errors.KindPayload, "response is not valid JSON")
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.RawMessage(trimmed), true, "", nil
	}
	var obj struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(trimmed, &obj)
	return nil, false, obj.Message, nil
}
