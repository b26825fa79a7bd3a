package workflow

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jihoon/resume-pilot/internal/gateway"
	"github.com/jihoon/resume-pilot/internal/session"
)

// ErrSessionExpired is returned when generation is attempted without a
// stored session. No request is issued.
var ErrSessionExpired = fmt.Errorf("session expired, upload a resume to start over")

// ErrJobDescriptionRequired is returned when neither text nor URL was given.
var ErrJobDescriptionRequired = fmt.Errorf("a job description (text or URL) is required")

// ErrJobDescriptionConflict is returned when both text and URL were given;
// they are mutually exclusive.
var ErrJobDescriptionConflict = fmt.Errorf("job description text and URL are mutually exclusive")

// ErrGenerationInFlight is returned while a previous submission is still
// awaiting the backend.
var ErrGenerationInFlight = fmt.Errorf("a generation request is already in flight")

// Generator is the slice of the gateway the submitter needs.
type Generator interface {
	Generate(ctx context.Context, req gateway.GenerateRequest) (*gateway.GenerationJob, error)
	DownloadResume(ctx context.Context, jobID string, w io.Writer) error
}

// FoldFunc folds the mutually-exclusive text/URL pair into the single job
// description string the backend accepts. Exactly one argument is non-empty
// when called.
type FoldFunc func(ctx context.Context, jdText, jdURL string) (string, error)

// Submitter runs the terminal generation stage: validate input locally,
// submit once, and address the produced artifact for download. No polling;
// the backend responds only once the artifact is ready.
type Submitter struct {
	gw    Generator
	store session.Store
	fold  FoldFunc
	busy  bool
}

// NewSubmitter creates a submitter. fold may be nil, in which case a URL is
// passed through to the backend as the job description verbatim.
func NewSubmitter(gw Generator, store session.Store, fold FoldFunc) *Submitter {
	if fold == nil {
		fold = func(_ context.Context, jdText, jdURL string) (string, error) {
			if jdText != "" {
				return jdText, nil
			}
			return jdURL, nil
		}
	}
	return &Submitter{gw: gw, store: store, fold: fold}
}

// Generate validates that exactly one of jdText/jdURL is present and that a
// session exists, then issues a single generation request. Local validation
// failures never reach the network.
func (s *Submitter) Generate(ctx context.Context, jdText, jdURL string) (*gateway.GenerationJob, error) {
	if jdText == "" && jdURL == "" {
		return nil, ErrJobDescriptionRequired
	}
	if jdText != "" && jdURL != "" {
		return nil, ErrJobDescriptionConflict
	}

	sess, ok := s.store.Get()
	if !ok {
		return nil, ErrSessionExpired
	}

	if s.busy {
		return nil, ErrGenerationInFlight
	}
	s.busy = true
	defer func() { s.busy = false }()

	folded, err := s.fold(ctx, jdText, jdURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve job description: %w", err)
	}

	job, err := s.gw.Generate(ctx, gateway.GenerateRequest{
		SessionID: sess.SessionID,
		JDText:    folded,
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Download streams the artifact addressed by job into outPath. The partial
// file is removed when the stream fails.
func (s *Submitter) Download(ctx context.Context, job *gateway.GenerationJob, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := s.gw.DownloadResume(ctx, job.JobID, f); err != nil {
		_ = f.Close()
		_ = os.Remove(outPath)
		return err
	}
	return f.Close()
}
