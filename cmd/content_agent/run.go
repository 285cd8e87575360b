package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fivedigital/contentflow/internal/observability"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Generate a post for an employee from input content",
	Long: `Create a workflow and run the generation stage: the input content is turned
into a post in the employee's personal writing style and left in REVIEW for
editing. With --approve the post is additionally published to Google Docs
and the employee is notified by mail.`,
	RunE: runWorkflowCmd,
}

var (
	runConfigPath string
	runEmployeeID string
	runInput      string
	runInputFile  string
	runApprove    bool
	runVerbose    bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file")
	runCommand.Flags().StringVarP(&runEmployeeID, "employee-id", "e", "", "Employee UUID (required)")
	runCommand.Flags().StringVarP(&runInput, "input", "i", "", "Input content (mutually exclusive with --input-file)")
	runCommand.Flags().StringVar(&runInputFile, "input-file", "", "Path to a text file with input content")
	runCommand.Flags().BoolVar(&runApprove, "approve", false, "Approve immediately: publish to Google Docs and notify the employee")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print the workflow after each stage")

	runCommand.MarkFlagRequired("employee-id") //nolint:errcheck

	rootCmd.AddCommand(runCommand)
}

func runWorkflowCmd(_ *cobra.Command, _ []string) error {
	if runInput == "" && runInputFile == "" {
		return fmt.Errorf("either --input or --input-file must be provided")
	}
	if runInput != "" && runInputFile != "" {
		return fmt.Errorf("--input and --input-file are mutually exclusive; provide only one")
	}

	employeeID, err := uuid.Parse(runEmployeeID)
	if err != nil {
		return fmt.Errorf("invalid employee ID: %w", err)
	}

	input := runInput
	if runInputFile != "" {
		data, err := os.ReadFile(runInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		input = string(data)
	}

	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	printer := observability.NewPrinter(os.Stdout)

	created, err := deps.engine.Create(ctx, employeeID, input)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := deps.engine.Generate(ctx, created.Workflow.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Generated in %v\n", time.Since(start).Round(time.Millisecond))
	if runVerbose {
		printer.PrintWorkflow(result.Workflow)
	}

	if !runApprove {
		fmt.Fprintf(os.Stdout, "Workflow %s is in %s; review it via the API or approve with --approve\n",
			result.Workflow.ID, result.Workflow.Status)
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, result.Workflow.GeneratedContent)
		return nil
	}

	result, err = deps.engine.Approve(ctx, created.Workflow.ID)
	if err != nil {
		return err
	}
	if runVerbose {
		printer.PrintWorkflow(result.Workflow)
	}

	fmt.Fprintf(os.Stdout, "Published: %s\n", *result.Workflow.PublicationURL)
	if result.Delivered {
		fmt.Fprintln(os.Stdout, "Notification sent")
	} else if result.LastError != "" {
		fmt.Fprintf(os.Stdout, "Notification failed (%s); retry with the notify command\n", result.LastError)
	}
	return nil
}
