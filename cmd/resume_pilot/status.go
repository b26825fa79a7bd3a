package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jihoon/resume-pilot/internal/workflow"
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show interview progress for the current session",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCommand)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if workflow.Guard(a.store, workflow.StageChat) != workflow.StageChat {
		a.printer.Error("no active session, upload a resume first (`resume_pilot upload`)")
		return nil
	}
	sess, _ := a.store.Get()

	status, err := a.gw.ChatStatus(context.Background(), sess.SessionID)
	if err != nil {
		return err
	}

	a.printer.Info("Session:   %s", status.SessionID)
	a.printer.Info("Questions: %d", status.QuestionCount)
	if status.IsComplete {
		a.printer.Success("Interview complete. Knowledge review is available.")
	} else {
		a.printer.Info("Interview in progress, run `resume_pilot chat` to continue.")
	}
	return nil
}
