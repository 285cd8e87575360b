package main

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/fivedigital/contentflow/internal/config"
	"github.com/fivedigital/contentflow/internal/db"
	"github.com/fivedigital/contentflow/internal/engine"
	"github.com/fivedigital/contentflow/internal/generation"
	"github.com/fivedigital/contentflow/internal/llm"
	"github.com/fivedigital/contentflow/internal/notification"
	"github.com/fivedigital/contentflow/internal/publication"
)

// agentDeps bundles the wired adapters a workflow command needs.
type agentDeps struct {
	db     *db.DB
	client llm.Client
	engine *engine.Engine
}

func (d *agentDeps) close() {
	d.client.Close() //nolint:errcheck
	d.db.Close()
}

// buildDeps connects the database and the three capability adapters and
// wires the engine over them.
func buildDeps(ctx context.Context, cfg config.Config) (*agentDeps, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set %s or database_url in the config file)", config.EnvDatabaseURL)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set %s or api_key in the config file)", config.EnvAPIKey)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var googleOpts []option.ClientOption
	if cfg.GoogleCredentials != "" {
		googleOpts = append(googleOpts, option.WithCredentialsFile(cfg.GoogleCredentials))
	}
	publisher, err := publication.NewDocsPublisher(ctx, googleOpts...)
	if err != nil {
		client.Close() //nolint:errcheck
		database.Close()
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}
	mailer, err := notification.NewMailer(ctx, cfg.SenderAddress, googleOpts...)
	if err != nil {
		client.Close() //nolint:errcheck
		database.Close()
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	return &agentDeps{
		db:     database,
		client: client,
		engine: engine.New(database, generation.NewGenerator(client), publisher, mailer),
	}, nil
}
