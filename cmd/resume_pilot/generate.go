package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jihoon/resume-pilot/internal/jobdesc"
	"github.com/jihoon/resume-pilot/internal/workflow"
)

var (
	genJDText     string
	genJDFile     string
	genJDURL      string
	genOutput     string
	genUseBrowser bool
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Generate a resume tailored to a job description",
	Long: `Submits a job description for the current session and downloads the
generated resume. Supply the description as inline text, a text file, or a
posting URL (exactly one of the three). A URL is fetched and reduced to
text locally before submission.`,
	RunE: runGenerateCmd,
}

func init() {
	generateCommand.Flags().StringVar(&genJDText, "jd-text", "", "Job description as inline text")
	generateCommand.Flags().StringVar(&genJDFile, "jd-file", "", "Path to a job description text file")
	generateCommand.Flags().StringVar(&genJDURL, "jd-url", "", "URL of the job posting")
	generateCommand.Flags().StringVarP(&genOutput, "output", "o", "", "Output path for the generated resume (default resume_<job_id>.md)")
	generateCommand.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Render the posting URL in a headless browser when plain HTTP yields too little text (requires Chrome)")
	rootCmd.AddCommand(generateCommand)
}

func runGenerateCmd(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if countSet(genJDText, genJDFile, genJDURL) > 1 {
		return fmt.Errorf("--jd-text, --jd-file and --jd-url are mutually exclusive")
	}

	// A file is inline text that happens to live on disk; fold it before
	// the submitter sees it so the text/URL exclusivity stays binary.
	jdText := genJDText
	if genJDFile != "" {
		jdText, err = jobdesc.FromFile(genJDFile)
		if err != nil {
			return err
		}
	}

	fold := func(ctx context.Context, text, url string) (string, error) {
		if text != "" {
			return jobdesc.FromText(text)
		}
		return jobdesc.FromURL(ctx, url, jobdesc.Options{
			UseBrowser: genUseBrowser || a.cfg.UseBrowser,
			Verbose:    a.cfg.Verbose,
		})
	}

	submitter := workflow.NewSubmitter(a.gw, a.store, fold)

	ctx := context.Background()
	job, err := submitter.Generate(ctx, jdText, genJDURL)
	if err != nil {
		if errors.Is(err, workflow.ErrSessionExpired) {
			a.printer.Error("session expired, upload a resume to start over")
			return nil
		}
		return err
	}
	_ = a.store.PutLastJob(job.JobID)

	out := genOutput
	if out == "" {
		out = fmt.Sprintf("resume_%s.md", job.JobID)
	}
	if err := submitter.Download(ctx, job, out); err != nil {
		return err
	}

	a.printer.Success("Resume generated: %s", out)
	a.printer.Info("Run `resume_pilot preview` to see it inline.")
	return nil
}

func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
