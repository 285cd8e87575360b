// Package main provides the entry point for the content flow agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "content_agent",
	Short: "LinkedIn content flow agent",
	Long:  "content_agent ghostwrites LinkedIn posts in each team member's personal writing style and drives them through review, publication to Google Docs, and notification.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
