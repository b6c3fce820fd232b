// Package main is the kotae CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kotae-ai/kotae/internal/cli"
	"github.com/kotae-ai/kotae/internal/config"
	"github.com/kotae-ai/kotae/internal/embedding"
	"github.com/kotae-ai/kotae/internal/knowledge"
	"github.com/kotae-ai/kotae/internal/mailer"
	"github.com/kotae-ai/kotae/internal/models"
	"github.com/kotae-ai/kotae/internal/retrieval"
	"github.com/kotae-ai/kotae/internal/server"
	"github.com/kotae-ai/kotae/internal/storage"
	"github.com/kotae-ai/kotae/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// loadConfig loads config from path. When path is the default, a config.yaml
// in the current directory takes precedence (for development), so "kotae
// server" from the project dir uses the project's config.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// secrets (SMTP credentials, embeddings API key) may live in a .env file
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.Bool("debug", debugMode),
	)

	// A failed model load is fatal: there is no fallback embedding strategy.
	embedder, err := buildEmbedder(&cfg.Embedding)
	if err != nil {
		logger.Fatal("Failed to initialize embedding provider", zap.Error(err))
	}
	defer embedder.Close()

	buildStart := time.Now()
	base, err := knowledge.Build(context.Background(), embedder, knowledge.PortfolioEntries())
	if err != nil {
		logger.Fatal("Failed to build knowledge base", zap.Error(err))
	}
	retriever, err := retrieval.NewRetriever(base)
	if err != nil {
		logger.Fatal("Failed to index knowledge base", zap.Error(err))
	}
	logger.Info("knowledge base ready",
		zap.Int("entries", base.Len()),
		zap.Int("dimensions", base.Dimensions()),
		zap.Duration("build_time", time.Since(buildStart)),
	)

	topK := cfg.Retrieval.TopK
	if cfg.Retrieval.MaxTopK > 0 && topK > cfg.Retrieval.MaxTopK {
		topK = cfg.Retrieval.MaxTopK
	}
	service := retrieval.NewService(
		embedder,
		retriever,
		retrieval.NewComposer(cfg.OwnerName),
		topK,
		cfg.Retrieval.Threshold(),
		logger,
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open message storage", zap.Error(err))
	}
	defer store.Close()

	mail := mailer.New(mailer.Config{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		From:      os.Getenv("EMAIL_ADDRESS"),
		Password:  os.Getenv("EMAIL_PASSWORD"),
		Owner:     cfg.Mail.Owner,
		OwnerName: cfg.OwnerName,
	}, logger)

	srv := server.NewServer(service, store, mail, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildEmbedder constructs the configured embedding provider.
func buildEmbedder(cfg *config.EmbeddingConfig) (embedding.Embedder, error) {
	switch cfg.Provider {
	case "onnx":
		e, err := embedding.NewONNXEmbedder(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "remote":
		e, err := embedding.NewRemoteEmbedder(embedding.RemoteConfig{
			BaseURL:    cfg.BaseURL,
			APIKeyEnv:  cfg.APIKeyEnv,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			CacheSize:  cfg.CacheSize,
		})
		if err != nil {
			return nil, err
		}
		return e, nil
	case "mock":
		return embedding.NewMockEmbedder(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (want onnx, remote, or mock)", cfg.Provider)
	}
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: kotae ask [flags] <question>\n\n")
		fmt.Fprintf(fs.Output(), "The question is all remaining arguments joined by spaces.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	question := buildQuestion(fs.Args())
	if question == "" {
		fs.Usage()
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "text":
		format = cli.OutputText
	case "json":
		format = cli.OutputJSON
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	resp, err := askViaHTTP(*serverURL, question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteChatAnswer(os.Stdout, resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// askViaHTTP posts the question to the chat endpoint of a running server.
func askViaHTTP(serverURL, question string) (*models.ChatResponse, error) {
	body, err := json.Marshal(models.ChatRequest{Message: question})
	if err != nil {
		return nil, err
	}
	httpResp, err := http.Post(
		strings.TrimRight(serverURL, "/")+"/api/chat",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(httpResp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("server error: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("server returned %s", httpResp.Status)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

func printUsage() {
	fmt.Println(`kotae - portfolio Q&A assistant

Usage:
  kotae server [-config path] [-debug]   Start the HTTP server
  kotae ask [flags] <question>           Ask a running server a question
  kotae version                          Print version
  kotae help                             Show this help

Examples:
  kotae server
  kotae ask what projects have you built
  kotae ask -output json "how can I contact you?"`)
}
