package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jihoon/resume-pilot/internal/knowledge"
	"github.com/jihoon/resume-pilot/internal/workflow"
)

var knowledgeCommand = &cobra.Command{
	Use:   "knowledge",
	Short: "Review and edit the extracted knowledge base",
}

var knowledgeShowCommand = &cobra.Command{
	Use:   "show",
	Short: "Show the knowledge base extracted from your resume and interview",
	RunE:  runKnowledgeShowCmd,
}

var (
	editPath string
	editFile string
)

var knowledgeEditCommand = &cobra.Command{
	Use:   "edit",
	Short: "Edit a value of the knowledge base",
	Long: `Edits the knowledge base at an addressable path. The new value is
read as JSON from --file, or from stdin when no file is given. The reserved
path "root" replaces the entire record; the current value is printed first
so it can be used as a starting point.`,
	RunE: runKnowledgeEditCmd,
}

func init() {
	knowledgeEditCommand.Flags().StringVar(&editPath, "path", knowledge.RootPath,
		`Path to edit, dot-separated ("personal_info", "careers.0"); "root" edits the whole record`)
	knowledgeEditCommand.Flags().StringVar(&editFile, "file", "", "Read the new JSON value from this file instead of stdin")
	knowledgeCommand.AddCommand(knowledgeShowCommand)
	knowledgeCommand.AddCommand(knowledgeEditCommand)
	rootCmd.AddCommand(knowledgeCommand)
}

func runKnowledgeShowCmd(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if workflow.Guard(a.store, workflow.StageKnowledge) != workflow.StageKnowledge {
		a.printer.Error("no active session, upload a resume first (`resume_pilot upload`)")
		return nil
	}
	sess, _ := a.store.Get()

	raw, err := a.gw.FetchKnowledge(context.Background(), sess.SessionID)
	if err != nil {
		// Degrade to an empty view instead of failing the command; the
		// user can re-run once the backend recovers.
		a.printer.Error("failed to load knowledge base: %v", err)
		a.printer.Info("no data")
		return nil
	}

	kb, err := knowledge.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	a.printer.PrintKnowledge(kb)
	a.printer.Info("")
	a.printer.Info("Next: `resume_pilot knowledge edit` to fix anything, or `resume_pilot generate` for a tailored resume.")
	return nil
}

func runKnowledgeEditCmd(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if workflow.Guard(a.store, workflow.StageKnowledge) != workflow.StageKnowledge {
		a.printer.Error("no active session, upload a resume first (`resume_pilot upload`)")
		return nil
	}
	sess, _ := a.store.Get()

	ctx := context.Background()
	raw, err := a.gw.FetchKnowledge(ctx, sess.SessionID)
	if err != nil {
		return err
	}

	current, err := knowledge.ValueAtPath(raw, editPath)
	if err != nil {
		return err
	}

	editor := knowledge.NewEditor(sess.SessionID, a.gw)
	if err := editor.BeginEdit(editPath, current); err != nil {
		return err
	}

	content, err := readEditInput(a, editor.Buffer())
	if err != nil {
		editor.CancelEdit()
		return err
	}
	editor.SetBuffer(content)

	if err := editor.CommitEdit(ctx); err != nil {
		var ve *knowledge.ValidationError
		if errors.As(err, &ve) {
			// The buffer is kept; nothing was sent.
			a.printer.Error("%v", ve)
			return fmt.Errorf("edit not saved")
		}
		return err
	}

	a.printer.Success("Knowledge base updated at %q.", editPath)
	return nil
}

// readEditInput returns the new value: the --file content when given,
// otherwise everything typed on stdin after the current value is shown.
func readEditInput(a *app, currentBuffer string) (string, error) {
	if editFile != "" {
		data, err := os.ReadFile(editFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", editFile, err)
		}
		return string(data), nil
	}

	a.printer.Info("Current value at %q:", editPath)
	a.printer.Info("%s", currentBuffer)
	a.printer.Info("Enter the new JSON value, then Ctrl-D:")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no input given, edit cancelled")
	}
	return string(data), nil
}
