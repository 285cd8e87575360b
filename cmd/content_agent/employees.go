package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivedigital/contentflow/internal/db"
	"github.com/fivedigital/contentflow/internal/observability"
)

var employeesConfigPath string

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List the team members known to the agent",
	RunE:  runEmployees,
}

func init() {
	employeesCmd.Flags().StringVar(&employeesConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(employeesCmd)
}

func runEmployees(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(employeesConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	employees, err := database.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		fmt.Fprintln(os.Stdout, "No employees yet")
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintEmployees(employees)
	return nil
}
