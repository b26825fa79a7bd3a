package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// UploadResume posts one or more resume PDFs as a multipart form and
// returns the created session. Each path is appended under the "files"
// field, matching the backend's upload contract.
func (c *Client) UploadResume(ctx context.Context, paths []string) (*UploadResult, error) {
	urlStr := c.endpoint("api", "upload", "resume")
	if len(paths) == 0 {
		return nil, &Error{Op: "upload", URL: urlStr, Cause: fmt.Errorf("no files to upload")}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, path := range paths {
		if err := appendFilePart(writer, path); err != nil {
			return nil, &Error{Op: "upload", URL: urlStr, Cause: err}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Op: "upload", URL: urlStr, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, &buf)
	if err != nil {
		return nil, &Error{Op: "upload", URL: urlStr, Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: "upload", URL: urlStr, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse("upload", urlStr, resp)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Op: "upload", URL: urlStr, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &result, nil
}

func appendFilePart(writer *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
