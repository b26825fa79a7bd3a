package main

import (
	"github.com/spf13/cobra"
)

var resetCommand = &cobra.Command{
	Use:   "reset",
	Short: "Forget the current session",
	Long: `Clears the locally stored session identifiers. Use this when the
backend reports the session as expired, or to start over with a fresh
upload. Nothing is deleted on the backend.`,
	RunE: runResetCmd,
}

func init() {
	rootCmd.AddCommand(resetCommand)
}

func runResetCmd(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Clear(); err != nil {
		return err
	}
	a.printer.Success("Session cleared.")
	return nil
}
