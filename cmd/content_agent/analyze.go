package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fivedigital/contentflow/internal/analysis"
	"github.com/fivedigital/contentflow/internal/db"
	"github.com/fivedigital/contentflow/internal/fetch"
	"github.com/fivedigital/contentflow/internal/llm"
	"github.com/fivedigital/contentflow/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze an employee's writing style from sample posts",
	Long: `Run style analysis over an employee's sample posts and replace their stored
style profile with the result. Samples come from a text file or from URLs;
a single URL is remembered on the employee for later re-analysis.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath  string
	analyzeEmployeeID  string
	analyzeSamplesFile string
	analyzeSampleURLs  []string
	analyzeVerbose     bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file")
	analyzeCmd.Flags().StringVarP(&analyzeEmployeeID, "employee-id", "e", "", "Employee UUID (required)")
	analyzeCmd.Flags().StringVarP(&analyzeSamplesFile, "samples-file", "f", "", "Path to a text file with sample posts")
	analyzeCmd.Flags().StringSliceVarP(&analyzeSampleURLs, "samples-url", "u", nil, "URL to fetch sample posts from (repeatable)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the resulting style profile")

	analyzeCmd.MarkFlagRequired("employee-id") //nolint:errcheck

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeSamplesFile != "" && len(analyzeSampleURLs) > 0 {
		return fmt.Errorf("--samples-file and --samples-url are mutually exclusive; provide only one")
	}

	employeeID, err := uuid.Parse(analyzeEmployeeID)
	if err != nil {
		return fmt.Errorf("invalid employee ID: %w", err)
	}

	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	employee, err := database.GetEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return fmt.Errorf("employee %s not found", employeeID)
	}

	samples, err := collectSamples(ctx, cfg.FetchTimeoutSeconds, employee.SampleTextsURL)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	payload, err := analysis.NewAnalyzer(client).Analyze(ctx, samples)
	if err != nil {
		return err
	}

	profile, err := database.SaveStyleProfile(ctx, employeeID, payload)
	if err != nil {
		return err
	}

	if len(analyzeSampleURLs) == 1 {
		if err := database.SetSampleTextsURL(ctx, employeeID, analyzeSampleURLs[0]); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Style profile for %s updated\n", employee.Name)
	if analyzeVerbose {
		observability.NewPrinter(os.Stdout).PrintStyleProfile(profile)
	}
	return nil
}

// collectSamples reads sample posts from the file flag, the URL flags, or
// the employee's stored sample URL, in that order.
func collectSamples(ctx context.Context, timeoutSeconds int, storedURL string) (string, error) {
	if analyzeSamplesFile != "" {
		data, err := os.ReadFile(analyzeSamplesFile)
		if err != nil {
			return "", fmt.Errorf("failed to read samples file: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("samples file %s is empty", analyzeSamplesFile)
		}
		return string(data), nil
	}

	urls := analyzeSampleURLs
	if len(urls) == 0 && storedURL != "" {
		urls = []string{storedURL}
	}
	if len(urls) == 0 {
		return "", fmt.Errorf("no sample source: provide --samples-file or --samples-url, or store a sample URL on the employee")
	}

	opts := fetch.DefaultOptions()
	if timeoutSeconds > 0 {
		opts.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return fetch.SampleTexts(ctx, urls, opts)
}
