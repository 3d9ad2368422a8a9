// Package main provides the entry point for the resume generator HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_server",
	Short: "Resume Generator HTTP API Server",
	Long:  "Resume Generator turns a job description, candidate profile and writing strategy into a tailored single-page HTML resume via the Gemini API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
