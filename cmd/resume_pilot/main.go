// Package main provides the entry point for the resume-pilot workflow CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_pilot",
	Short: "CLI client for the AI resume coaching service",
	Long: `resume_pilot walks you through the resume coaching workflow:
upload a resume, answer the AI interviewer's questions, review the
extracted knowledge base, and generate a resume tailored to a job
description. All analysis happens on the backend service; this client
orchestrates the stages and keeps your session identifiers locally.`,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
