package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jihoon/resume-pilot/internal/session"
)

// maxUploadSize is the per-file size cap the backend enforces; checking it
// locally avoids shipping megabytes just to get a 400 back.
const maxUploadSize = 10 << 20

var uploadCommand = &cobra.Command{
	Use:   "upload <file.pdf> [more.pdf ...]",
	Short: "Upload resume PDFs and start a coaching session",
	Long: `Uploads one or more PDF resumes to the backend. A successful upload
replaces any previous session and hands the interviewer's first question to
the chat stage.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUploadCmd,
}

func init() {
	rootCmd.AddCommand(uploadCommand)
}

func runUploadCmd(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := preflightFiles(args); err != nil {
		return err
	}

	ctx := context.Background()
	result, err := a.gw.UploadResume(ctx, args)
	if err != nil {
		return err
	}

	userID, err := a.store.EnsureUserID()
	if err != nil {
		return err
	}
	if err := a.store.Put(session.Session{SessionID: result.SessionID, UserID: userID}); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if result.FirstQuestion != "" {
		if err := a.store.PutFirstQuestion(result.FirstQuestion); err != nil {
			return fmt.Errorf("failed to store first question: %w", err)
		}
	}

	a.printer.Success("Uploaded %d file(s), session started.", result.FilesProcessed)
	if result.FirstQuestion != "" {
		a.printer.Info("First question: %s", result.FirstQuestion)
	}
	a.printer.Info("Next: run `resume_pilot chat` to answer the interviewer.")
	return nil
}

// preflightFiles verifies every file concurrently before anything is sent:
// it must exist, be a regular .pdf file, and stay under the size cap.
func preflightFiles(paths []string) error {
	var g errgroup.Group
	for _, path := range paths {
		g.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", path, err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", path)
			}
			if !strings.EqualFold(filepath.Ext(path), ".pdf") {
				return fmt.Errorf("%s is not a PDF file", path)
			}
			if info.Size() > maxUploadSize {
				return fmt.Errorf("%s exceeds the %dMB size limit", path, maxUploadSize>>20)
			}
			return nil
		})
	}
	return g.Wait()
}
