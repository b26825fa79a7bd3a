package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jihoon/resume-pilot/internal/chat"
	"github.com/jihoon/resume-pilot/internal/workflow"
)

var chatCommand = &cobra.Command{
	Use:   "chat",
	Short: "Answer the AI interviewer's questions",
	Long: `Runs the interactive interview. The interviewer asks clarifying
questions about your resume; answer in free text. When the interviewer has
gathered enough, the session moves on to knowledge review. Type "exit" or
press Ctrl-D to leave early; your progress is kept on the backend.`,
	RunE: runChatCmd,
}

func init() {
	rootCmd.AddCommand(chatCommand)
}

func runChatCmd(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if workflow.Guard(a.store, workflow.StageChat) != workflow.StageChat {
		a.printer.Error("no active session, upload a resume first (`resume_pilot upload`)")
		return nil
	}

	completed := make(chan struct{}, 1)
	seq := chat.NewSequencer(a.gw, a.store, chat.Options{
		AdvanceDelay: a.cfg.AdvanceDelay(),
		OnComplete:   func() { completed <- struct{}{} },
	})
	seq.Seed()
	a.printer.PrintTranscript(seq.Transcript())

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("you> ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "exit" || text == "quit" {
			break
		}
		if text == "" {
			fmt.Print("you> ")
			continue
		}

		result, err := seq.SendTurn(ctx, text)
		if err != nil {
			if errors.Is(err, chat.ErrNoSession) {
				a.printer.Error("session expired, upload a resume to start over")
				return nil
			}
			// The turn failed but the transcript keeps the user's words;
			// they can simply send again.
			a.printer.Error("failed to send message: %v", err)
			fmt.Print("you> ")
			continue
		}

		transcript := seq.Transcript()
		a.printer.PrintMessage(transcript[len(transcript)-1])

		if result.IsCompleted {
			<-completed
			a.printer.Success("Interview complete.")
			a.printer.Info("Next: run `resume_pilot knowledge show` to review what was learned.")
			return nil
		}
		fmt.Print("you> ")
	}
	return scanner.Err()
}
