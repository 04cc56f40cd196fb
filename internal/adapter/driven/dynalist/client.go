// Package dynalist implements the DynalistClient port over the Dynalist REST API.
package dynalist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// DefaultBaseURL is the production API root. Endpoint paths are resolved
// relative to it, so it must end with a slash.
const DefaultBaseURL = "https://dynalist.io/api/v1/"

// maxResponseBytes caps how much of a response body is read. Document reads
// are the largest payloads the client sees.
const maxResponseBytes = 32 << 20

// Compile-time interface satisfaction check.
var _ driven.DynalistClient = (*Client)(nil)

// Client implements the driven.DynalistClient port. Every endpoint is a
// JSON POST whose response carries a "_code" tag.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	logger  *slog.Logger
}

// NewClient creates a Client for baseURL using an http.Client with the given
// timeout. A zero timeout leaves only context cancellation in effect.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	return NewClientWithHTTPClient(&http.Client{Timeout: timeout}, baseURL, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, logger *slog.Logger) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parsing base URL: unsupported scheme %q", u.Scheme)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:    httpClient,
		baseURL: u,
		logger:  logger,
	}, nil
}

// ListFiles retrieves every file the token can see.
func (c *Client) ListFiles(ctx context.Context, token string) ([]model.File, error) {
	var resp fileListResponse
	if err := c.post(ctx, "file/list", authRequest{Token: token}, &resp); err != nil {
		return nil, err
	}

	files := make([]model.File, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, mapFile(f))
	}
	return files, nil
}

// AddToInbox appends an item to the account's inbox location.
func (c *Client) AddToInbox(ctx context.Context, token, content, note string) error {
	req := inboxAddRequest{Token: token, Content: content, Note: note}
	return c.post(ctx, "inbox/add", req, nil)
}

// InsertItem inserts a single item below parentID in the document fileID.
func (c *Client) InsertItem(ctx context.Context, token, fileID, parentID, content, note string, index int) error {
	req := docEditRequest{
		Token:  token,
		FileID: fileID,
		Changes: []insertChange{{
			Action:   "insert",
			ParentID: parentID,
			Content:  content,
			Note:     note,
			Index:    index,
		}},
	}
	return c.post(ctx, "doc/edit", req, nil)
}

// ReadDocument returns all nodes of the document fileID.
func (c *Client) ReadDocument(ctx context.Context, token, fileID string) ([]model.Node, error) {
	var resp docReadResponse
	if err := c.post(ctx, "doc/read", docReadRequest{Token: token, FileID: fileID}, &resp); err != nil {
		return nil, err
	}

	nodes := make([]model.Node, 0, len(resp.Nodes))
	for _, n := range resp.Nodes {
		nodes = append(nodes, mapNode(n))
	}
	return nodes, nil
}

// DocumentVersions returns the current version of each requested document.
func (c *Client) DocumentVersions(ctx context.Context, token string, fileIDs []string) (map[string]int64, error) {
	var resp versionsResponse
	req := versionsRequest{Token: token, FileIDs: fileIDs}
	if err := c.post(ctx, "doc/check_for_updates", req, &resp); err != nil {
		return nil, err
	}

	if resp.Versions == nil {
		return map[string]int64{}, nil
	}
	return resp.Versions, nil
}

// post sends body as JSON to endpoint and decodes the response into out
// (which may be nil). The "_code" tag is checked before out is touched.
func (c *Client) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	target := c.baseURL.ResolveReference(&url.URL{Path: endpoint})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s: %w", model.ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %w", model.ErrTransport, endpoint, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %s (status %d): %w", model.ErrMalformedResponse, endpoint, resp.StatusCode, err)
	}
	if env.Code == nil || *env.Code == "" {
		return fmt.Errorf("%w: %s (status %d): missing _code", model.ErrMalformedResponse, endpoint, resp.StatusCode)
	}

	code := model.ResponseCode(*env.Code)
	c.logger.Debug("dynalist api call",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"code", code,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if code != model.CodeOK {
		if code == model.CodeTooManyRequests {
			c.logger.Warn("dynalist rate limit exceeded", "endpoint", endpoint)
		}
		return &model.APIError{Code: code, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", model.ErrMalformedResponse, endpoint, err)
	}
	return nil
}

func mapFile(f fileJSON) model.File {
	return model.File{
		ID:         f.ID,
		Title:      f.Title,
		Type:       f.Type,
		Permission: f.Permission,
	}
}

func mapNode(n nodeJSON) model.Node {
	children := n.Children
	if children == nil {
		children = []string{}
	}
	return model.Node{
		ID:       n.ID,
		Content:  n.Content,
		Note:     n.Note,
		Checked:  n.Checked,
		Parent:   n.Parent,
		Children: children,
	}
}
