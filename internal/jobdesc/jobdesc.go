// Package jobdesc resolves the job description input for the generation
// stage. The user supplies exactly one of inline text, a text file, or a
// posting URL; all three fold into the single string the backend accepts.
package jobdesc

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jihoon/resume-pilot/internal/fetch"
)

// Sentinel errors for input resolution.
var (
	// ErrNoInput is returned when no source was supplied.
	ErrNoInput = fmt.Errorf("no job description input")
	// ErrFetchFailed is returned when the posting URL could not be fetched.
	ErrFetchFailed = fmt.Errorf("failed to fetch job posting")
	// ErrExtractionFailed is returned when no usable text could be pulled
	// out of the fetched page.
	ErrExtractionFailed = fmt.Errorf("failed to extract job posting text")
)

// Options configures URL resolution.
type Options struct {
	// UseBrowser falls back to headless-browser rendering when the plain
	// HTTP fetch yields too little text (requires Chrome).
	UseBrowser bool
	// Verbose logs fetch and extraction details.
	Verbose bool
}

// FromText trims and returns inline job description text.
func FromText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrNoInput
	}
	return trimmed, nil
}

// FromFile reads a job description from a local text file.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	return FromText(string(data))
}

// FromURL fetches a posting URL and extracts the description text. When the
// HTTP fetch yields too little text and opts.UseBrowser is set, the page is
// re-rendered in a headless browser before extraction; a browser failure
// falls back to whatever the HTTP fetch produced.
func FromURL(ctx context.Context, urlStr string, opts Options) (string, error) {
	page, err := fetch.Get(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetched %s: %d bytes", urlStr, len(page.HTML))
	}

	text, err := fetch.ExtractJobText(page.HTML)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	if opts.UseBrowser && fetch.NeedsBrowser(text) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars), rendering in browser", len(text))
		}
		html, renderErr := fetch.Render(ctx, urlStr, opts.Verbose)
		if renderErr != nil {
			if opts.Verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, keeping HTTP content", renderErr)
			}
		} else if rendered, extractErr := fetch.ExtractJobText(html); extractErr == nil {
			text = rendered
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrExtractionFailed
	}
	return text, nil
}
