// Package gateway is the HTTP client for the resume backend service. It
// covers the full workflow contract (upload, chat, knowledge, generate) and
// isolates all network error handling behind a typed Error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// Error represents a failed backend operation. Detail carries the
// server-provided message when the response body included one.
type Error struct {
	Op         string
	URL        string
	StatusCode int
	Detail     string
	Cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.URL, e.Cause)
	case e.Detail != "":
		return fmt.Sprintf("%s failed for %s: HTTP %d: %s", e.Op, e.URL, e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("%s failed for %s: HTTP %d", e.Op, e.URL, e.StatusCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to one backend instance. Safe for reuse across operations;
// callers gate concurrency per stage themselves.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a gateway client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// endpoint joins the base URL with a path, escaping path parameters.
func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// detailBody mirrors the backend's error envelope.
type detailBody struct {
	Detail string `json:"detail"`
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out. Non-2xx responses become a *Error with any
// server-provided detail attached.
func (c *Client) doJSON(ctx context.Context, op, method, urlStr string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, URL: urlStr, Cause: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return &Error{Op: op, URL: urlStr, Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, URL: urlStr, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(op, urlStr, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, URL: urlStr, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// errorFromResponse builds a *Error from a non-success response, pulling the
// backend's detail message out of the body when present.
func errorFromResponse(op, urlStr string, resp *http.Response) error {
	e := &Error{Op: op, URL: urlStr, StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return e
	}
	var d detailBody
	if json.Unmarshal(raw, &d) == nil && d.Detail != "" {
		e.Detail = d.Detail
	}
	return e
}

// SendMessage delivers one user chat message and returns the interviewer's
// reply together with the interview-completion flag.
func (c *Client) SendMessage(ctx context.Context, req ChatTurnRequest) (*ChatTurnResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result ChatTurnResult
	urlStr := c.endpoint("api", "chat", "message")
	if err := c.doJSON(ctx, "chat turn", http.MethodPost, urlStr, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChatStatus reports backend-side interview progress for a session.
func (c *Client) ChatStatus(ctx context.Context, sessionID string) (*ChatStatusResult, error) {
	var result ChatStatusResult
	urlStr := c.endpoint("api", "chat", "status", sessionID)
	if err := c.doJSON(ctx, "chat status", http.MethodGet, urlStr, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchKnowledge retrieves the extracted knowledge base for a session. The
// payload is returned raw; the knowledge package interprets its facets.
func (c *Client) FetchKnowledge(ctx context.Context, sessionID string) (json.RawMessage, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	urlStr := c.endpoint("api", "knowledge", sessionID)
	if err := c.doJSON(ctx, "knowledge fetch", http.MethodGet, urlStr, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateKnowledge writes an edited value at a path of the knowledge base.
func (c *Client) UpdateKnowledge(ctx context.Context, req KnowledgeUpdate) error {
	if err := req.Validate(); err != nil {
		return err
	}
	urlStr := c.endpoint("api", "knowledge", "update")
	return c.doJSON(ctx, "knowledge update", http.MethodPut, urlStr, req, nil)
}

// Generate submits a job description and returns the handle of the
// generated resume. The backend responds only once the artifact is ready.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerationJob, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var job GenerationJob
	urlStr := c.endpoint("api", "generate") + "/"
	if err := c.doJSON(ctx, "generate", http.MethodPost, urlStr, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DownloadResume streams the generated artifact for a job into w.
func (c *Client) DownloadResume(ctx context.Context, jobID string, w io.Writer) error {
	urlStr := c.endpoint("api", "generate", "download", jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return &Error{Op: "download", URL: urlStr, Cause: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: "download", URL: urlStr, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse("download", urlStr, resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return &Error{Op: "download", URL: urlStr, Cause: fmt.Errorf("failed to stream artifact: %w", err)}
	}
	return nil
}

// PreviewResume fetches the markdown preview of a generated resume.
func (c *Client) PreviewResume(ctx context.Context, jobID string) (string, error) {
	urlStr := c.endpoint("api", "generate", "preview", jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{Op: "preview", URL: urlStr, Cause: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Op: "preview", URL: urlStr, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errorFromResponse("preview", urlStr, resp)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Op: "preview", URL: urlStr, Cause: err}
	}
	return string(raw), nil
}
