// Package server provides the HTTP REST API for the content flow agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/fivedigital/contentflow/internal/analysis"
	"github.com/fivedigital/contentflow/internal/db"
	"github.com/fivedigital/contentflow/internal/engine"
	"github.com/fivedigital/contentflow/internal/fetch"
	"github.com/fivedigital/contentflow/internal/generation"
	"github.com/fivedigital/contentflow/internal/llm"
	"github.com/fivedigital/contentflow/internal/notification"
	"github.com/fivedigital/contentflow/internal/publication"
	"github.com/fivedigital/contentflow/internal/server/ratelimit"
	"github.com/fivedigital/contentflow/internal/types"
)

// Store is the persistence surface the HTTP layer needs beyond the engine
// commands. *db.DB satisfies it.
type Store interface {
	CreateEmployee(ctx context.Context, form *types.EmployeeForm) (*types.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*types.Employee, error)
	ListEmployees(ctx context.Context) ([]types.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, form *types.EmployeeForm) (*types.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	SetSampleTextsURL(ctx context.Context, id uuid.UUID, url string) error
	GetStyleProfileByEmployee(ctx context.Context, employeeID uuid.UUID) (*types.StyleProfile, error)
	SaveStyleProfile(ctx context.Context, employeeID uuid.UUID, payload *types.StyleProfilePayload) (*types.StyleProfile, error)
	DeleteStyleProfile(ctx context.Context, employeeID uuid.UUID) error
	ListWorkflows(ctx context.Context, employeeID *uuid.UUID) ([]types.Workflow, error)
}

// Analyzer is the style-analysis capability boundary.
type Analyzer interface {
	Analyze(ctx context.Context, sampleText string) (*types.StyleProfilePayload, error)
}

// SampleFetcher retrieves and concatenates an employee's sample posts.
type SampleFetcher func(ctx context.Context, urls []string) (string, error)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	store        Store
	engine       *engine.Engine
	analyzer     Analyzer
	fetchSamples SampleFetcher
	rateLimiter  *ratelimit.Limiter
	shutdown     []func()
}

// Config holds server configuration
type Config struct {
	Port              int
	DatabaseURL       string
	APIKey            string
	GoogleCredentials string
	SenderAddress     string
	FetchTimeout      time.Duration
}

// New creates a new server instance with the production adapter wiring.
func New(ctx context.Context, cfg Config) (*Server, error) {
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
		database.Close()
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}
	mailer, err := notification.NewMailer(ctx, cfg.SenderAddress, googleOpts...)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	fetchOpts := fetch.DefaultOptions()
	if cfg.FetchTimeout > 0 {
		fetchOpts.Timeout = cfg.FetchTimeout
	}

	s := newServer(
		database,
		engine.New(database, generation.NewGenerator(client), publisher, mailer),
		analysis.NewAnalyzer(client),
		func(ctx context.Context, urls []string) (string, error) {
			return fetch.SampleTexts(ctx, urls, fetchOpts)
		},
		cfg.Port,
	)
	s.shutdown = append(s.shutdown, database.Close, func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	})
	return s, nil
}

// newServer wires the router over injected dependencies.
func newServer(store Store, eng *engine.Engine, analyzer Analyzer, fetchSamples SampleFetcher, port int) *Server {
	s := &Server{
		store:        store,
		engine:       eng,
		analyzer:     analyzer,
		fetchSamples: fetchSamples,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Employee endpoints
	mux.HandleFunc("POST /employees", s.handleCreateEmployee)
	mux.HandleFunc("GET /employees", s.handleListEmployees)
	mux.HandleFunc("GET /employees/{id}", s.handleGetEmployee)
	mux.HandleFunc("PUT /employees/{id}", s.handleUpdateEmployee)
	mux.HandleFunc("DELETE /employees/{id}", s.handleDeleteEmployee)

	// Style profile endpoints
	mux.HandleFunc("POST /employees/{id}/analyze", s.handleAnalyzeEmployee)
	mux.HandleFunc("GET /employees/{id}/style-profile", s.handleGetStyleProfile)
	mux.HandleFunc("DELETE /employees/{id}/style-profile", s.handleDeleteStyleProfile)

	// Workflow endpoints
	mux.HandleFunc("POST /workflows", s.handleCreateWorkflow)
	mux.HandleFunc("GET /workflows", s.handleListWorkflows)
	mux.HandleFunc("GET /workflows/{id}", s.handleGetWorkflow)
	mux.HandleFunc("DELETE /workflows/{id}", s.handleDeleteWorkflow)

	// Workflow commands
	mux.HandleFunc("PUT /workflows/{id}/input", s.handleSetInput)
	mux.HandleFunc("PUT /workflows/{id}/employee", s.handleSelectEmployee)
	mux.HandleFunc("POST /workflows/{id}/generate", s.handleGenerate)
	mux.HandleFunc("POST /workflows/{id}/generate/stream", s.handleGenerateStream)
	mux.HandleFunc("PUT /workflows/{id}/content", s.handleEdit)
	mux.HandleFunc("POST /workflows/{id}/save", s.handleSave)
	mux.HandleFunc("POST /workflows/{id}/approve", s.handleApprove)
	mux.HandleFunc("POST /workflows/{id}/notify", s.handleNotify)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls block for the LLM round-trip
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, closeFn := range s.shutdown {
		closeFn()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// commandError maps a failed engine command onto the wire.
func (s *Server) commandError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
