package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivedigital/contentflow/internal/config"
	"github.com/fivedigital/contentflow/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for employees, style analysis, and the post workflow.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set %s or database_url in the config file)", config.EnvDatabaseURL)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set %s or api_key in the config file)", config.EnvAPIKey)
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:              cfg.Port,
		DatabaseURL:       cfg.DatabaseURL,
		APIKey:            cfg.APIKey,
		GoogleCredentials: cfg.GoogleCredentials,
		SenderAddress:     cfg.SenderAddress,
		FetchTimeout:      time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadConfig layers the optional config file over the environment.
func loadConfig(path string) (config.Config, error) {
	fileCfg := config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}
	return fileCfg.MergeWithDefaults(config.FromEnv()), nil
}
