package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var previewCommand = &cobra.Command{
	Use:   "preview [job_id]",
	Short: "Print the markdown preview of a generated resume",
	Long: `Fetches the markdown preview of a generation job. With no argument,
the most recent job from this machine is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreviewCmd,
}

func init() {
	rootCmd.AddCommand(previewCommand)
}

func runPreviewCmd(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	jobID := ""
	if len(args) > 0 {
		jobID = args[0]
	} else if last, ok := a.store.LastJob(); ok {
		jobID = last
	}
	if jobID == "" {
		return fmt.Errorf("no generation job yet; run `resume_pilot generate` first or pass a job id")
	}

	markdown, err := a.gw.PreviewResume(context.Background(), jobID)
	if err != nil {
		return err
	}
	a.printer.Info("%s", markdown)
	return nil
}
