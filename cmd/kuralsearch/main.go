/*
Copyright 2025 The Kuralverse Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kuralverse/kuralsearch"
	"github.com/kuralverse/kuralsearch/ai"
	"github.com/kuralverse/kuralsearch/index/bridge"
	"github.com/kuralverse/kuralsearch/retrieval"
	"github.com/kuralverse/kuralsearch/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "kuralsearch",
		Usage: "Semantic search over the 1330 verses of the Thirukkural",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:  "bridge-command",
						Usage: "External index command; when set, queries run through it instead of the in-memory index",
					},
					&cli.DurationFlag{
						Name:  "search-timeout",
						Usage: "Timeout for the encoding and index stages",
						Value: 10 * time.Second,
					},
				),
			},
			{
				Name:   "seed",
				Usage:  "Load a verse dataset and generate embeddings",
				Action: seedCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "Path to the JSON verse dataset",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Verses per embedding call",
						Value: 32,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Run a single search from the command line",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"k"},
						Usage:   "Number of results",
						Value:   retrieval.DefaultK,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL",
			Value: "https://api.groq.com/openai/v1",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "llama-3.3-70b-versatile",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI services",
			EnvVars: []string{"GROQ_API_KEY"},
			Value:   "none",
		},
	}
}

func newService(c *cli.Context, extra ...kuralsearch.ServiceOption) (*kuralsearch.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := append([]kuralsearch.ServiceOption{kuralsearch.WithAIConfig(aiConfig)}, extra...)
	return kuralsearch.NewService(c.String("db"), opts...)
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	var extra []kuralsearch.ServiceOption
	if command := c.String("bridge-command"); command != "" {
		extra = append(extra, kuralsearch.WithIndex(bridge.NewIndex(command)))
	}

	service, err := newService(c, extra...)
	if err != nil {
		return err
	}
	defer service.Close()

	loaded, err := service.LoadIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}
	slog.Info("index ready", "vectors", loaded)

	searcher, err := service.NewSearcher(retrieval.WithTimeout(c.Duration("search-timeout")))
	if err != nil {
		return err
	}

	srv := server.New(
		service.VerseRepository(),
		service.ChatRepository(),
		searcher,
		service.Provider().ResponseGenerator(),
	)

	addr := c.String("addr")
	slog.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	file, err := os.Open(c.String("dataset"))
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	pipeline, err := service.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	stored, embedded, err := pipeline.Seed(ctx, file)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %d verses, embedded %d\n", stored, embedded)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	if _, err := service.LoadIndex(ctx); err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	searcher, err := service.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.Search(ctx, query, c.Int("limit"))
	if err != nil {
		return err
	}

	for _, result := range results {
		marker := " "
		if result.Fallback {
			marker = "~"
		}
		fmt.Printf("%s %4d  %.2f  %s\n", marker, result.Verse.Number, result.Relevance, result.Verse.English)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
