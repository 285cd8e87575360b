package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Retry the notification for an approved workflow",
	Long:  `Resend the ready-for-LinkedIn mail for a workflow whose post was published but whose notification failed. The published document is never recreated.`,
	RunE:  runNotify,
}

var (
	notifyConfigPath string
	notifyWorkflowID string
)

func init() {
	notifyCmd.Flags().StringVar(&notifyConfigPath, "config", "", "Path to config.json file")
	notifyCmd.Flags().StringVarP(&notifyWorkflowID, "workflow-id", "w", "", "Workflow UUID (required)")

	notifyCmd.MarkFlagRequired("workflow-id") //nolint:errcheck

	rootCmd.AddCommand(notifyCmd)
}

func runNotify(_ *cobra.Command, _ []string) error {
	workflowID, err := uuid.Parse(notifyWorkflowID)
	if err != nil {
		return fmt.Errorf("invalid workflow ID: %w", err)
	}

	cfg, err := loadConfig(notifyConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	result, err := deps.engine.Notify(ctx, workflowID)
	if err != nil {
		return err
	}
	if !result.Delivered {
		return fmt.Errorf("notification not delivered: %s", result.LastError)
	}

	fmt.Fprintf(os.Stdout, "Notification sent; workflow is %s\n", result.Workflow.Status)
	return nil
}
