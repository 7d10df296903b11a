// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/policyrank"
	"github.com/poiesic/policyrank/ai"
	"github.com/poiesic/policyrank/ai/mock"
	"github.com/poiesic/policyrank/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "policyrank",
		Usage: "Multi-signal ranking and provenance verification for policy document search hits",
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
				Name:      "rank",
				Usage:     "Rank search hit candidates for a query",
				ArgsUsage: "CANDIDATES_FILE",
				Action:    rankCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "The policy document query the candidates were retrieved for",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "verifier-host",
						Usage: "Verification service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "verifier-model",
						Usage: "Verification model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "verifier-token",
						Usage: "Verification service API token",
					},
					&cli.DurationFlag{
						Name:  "verifier-timeout",
						Usage: "Per-batch verification timeout",
						Value: 20 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Skip the verification service and use neutral judgments",
					},
					&cli.IntFlag{
						Name:  "verifier-retries",
						Usage: "Maximum verification attempts per batch",
						Value: 2,
					},
					&cli.DurationFlag{
						Name:  "verifier-retry-delay",
						Usage: "Base delay for verification retry backoff",
						Value: 1 * time.Second,
					},
					&cli.StringFlag{
						Name:  "audit-db",
						Usage: "Path to a BadgerDB directory for audit traces (omit to disable)",
					},
				},
			},
			{
				Name:   "audit",
				Usage:  "Show recent ranking audit traces",
				Action: auditCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "audit-db",
						Usage:    "Path to the BadgerDB audit trace directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of traces to show",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func rankCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one candidates file argument")
	}

	candidates, err := loadCandidates(c.Args().First())
	if err != nil {
		return err
	}

	opts := []policyrank.PipelineOption{}

	if c.Bool("offline") {
		opts = append(opts, policyrank.WithVerifier(mock.NewMockVerifier()))
	} else {
		aiConfig := ai.NewConfig(
			ai.WithHost(c.String("verifier-host")),
			ai.WithModel(c.String("verifier-model")),
			ai.WithToken(c.String("verifier-token")),
			ai.WithTimeout(c.Duration("verifier-timeout")),
		)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid verifier configuration: %w", err)
		}
		opts = append(opts,
			policyrank.WithAIConfig(aiConfig),
			policyrank.WithVerifierRetries(c.Int("verifier-retries"), c.Duration("verifier-retry-delay")),
		)
	}

	if auditPath := c.String("audit-db"); auditPath != "" {
		opts = append(opts, policyrank.WithAuditStore(auditPath))
	}

	pipeline, err := policyrank.NewPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Close()

	results, err := pipeline.Rank(ctx, c.String("query"), candidates)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(results)
}

func auditCommand(c *cli.Context) error {
	ctx := context.Background()

	pipeline, err := policyrank.NewPipeline(
		policyrank.WithVerifier(mock.NewMockVerifier()),
		policyrank.WithAuditStore(c.String("audit-db")),
	)
	if err != nil {
		return fmt.Errorf("failed to open audit store: %w", err)
	}
	defer pipeline.Close()

	traces, err := pipeline.RecentTraces(ctx, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to read traces: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(traces)
}

// loadCandidates reads a JSON array of candidates from a file.
func loadCandidates(path string) ([]*core.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	var candidates []*core.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse candidates file: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("candidates file is empty")
	}

	return candidates, nil
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
