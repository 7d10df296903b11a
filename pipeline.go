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


package policyrank

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/policyrank/ai"
	"github.com/poiesic/policyrank/ai/openai"
	"github.com/poiesic/policyrank/audit"
	auditbadger "github.com/poiesic/policyrank/audit/badger"
	"github.com/poiesic/policyrank/core"
	"github.com/poiesic/policyrank/rank"
)

// Pipeline is the top-level entry point: a configured ranker plus an
// optional audit trace store.
type Pipeline struct {
	ranker *rank.Ranker
	store  audit.Store
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	aiConfig      *ai.Config
	verifier      ai.Verifier
	retryAttempts int
	retryDelay    time.Duration
	auditPath     string
	auditInMemory bool
	rankerOpts    []rank.Option
	logger        *slog.Logger
}

// WithAIConfig sets the verifier service configuration. Ignored when a
// verifier is injected directly.
func WithAIConfig(config *ai.Config) PipelineOption {
	return func(o *pipelineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithVerifier injects a verifier, bypassing the default service-backed
// one. Useful for tests and offline runs.
func WithVerifier(verifier ai.Verifier) PipelineOption {
	return func(o *pipelineOptions) {
		o.verifier = verifier
	}
}

// WithVerifierRetries wraps the verifier with exponential-backoff
// retries. Applies to injected verifiers too.
func WithVerifierRetries(maxAttempts int, baseDelay time.Duration) PipelineOption {
	return func(o *pipelineOptions) {
		o.retryAttempts = maxAttempts
		o.retryDelay = baseDelay
	}
}

// WithAuditStore enables persistent audit traces at the given path.
func WithAuditStore(path string) PipelineOption {
	return func(o *pipelineOptions) {
		o.auditPath = path
	}
}

// WithInMemoryAuditStore enables an ephemeral audit store.
func WithInMemoryAuditStore() PipelineOption {
	return func(o *pipelineOptions) {
		o.auditInMemory = true
	}
}

// WithRankerOptions forwards options to the underlying ranker.
func WithRankerOptions(opts ...rank.Option) PipelineOption {
	return func(o *pipelineOptions) {
		o.rankerOpts = append(o.rankerOpts, opts...)
	}
}

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(o *pipelineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewPipeline wires up the verifier, the ranker and (optionally) the
// audit store.
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	options := &pipelineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	verifier := options.verifier
	if verifier == nil {
		v, err := openai.NewVerifier(options.aiConfig)
		if err != nil {
			return nil, err
		}
		verifier = v
	}

	if options.retryAttempts > 0 {
		v, err := ai.NewRetryVerifier(verifier, options.retryAttempts, options.retryDelay)
		if err != nil {
			return nil, err
		}
		verifier = v
	}

	rankerOpts := append([]rank.Option{rank.WithLogger(options.logger)}, options.rankerOpts...)
	ranker, err := rank.NewRanker(verifier, rankerOpts...)
	if err != nil {
		return nil, err
	}

	var store audit.Store
	if options.auditInMemory || options.auditPath != "" {
		store, err = auditbadger.Open(options.auditPath, options.auditInMemory)
		if err != nil {
			ranker.Release()
			return nil, err
		}
	}

	return &Pipeline{
		ranker: ranker,
		store:  store,
		logger: options.logger,
	}, nil
}

// Rank scores, verifies and orders candidates for a query, recording an
// audit trace when a store is configured. Trace persistence is best
// effort: a storage failure is logged, not returned.
func (p *Pipeline) Rank(ctx context.Context, query string, candidates []*core.Candidate) ([]*core.RankedCandidate, error) {
	if p.store == nil {
		return p.ranker.Rank(ctx, query, candidates)
	}

	recorder := audit.NewRecorder()
	results, err := p.ranker.RankWithMonitor(ctx, query, candidates, recorder)
	if err != nil {
		return nil, err
	}

	if appendErr := p.store.Append(ctx, recorder.Trace()); appendErr != nil {
		p.logger.Warn("error persisting audit trace", "err", appendErr)
	}

	return results, nil
}

// RankWithMonitor is Rank with caller-supplied observation hooks. No
// audit trace is recorded; the caller owns observation.
func (p *Pipeline) RankWithMonitor(ctx context.Context, query string, candidates []*core.Candidate, monitor rank.Monitor) ([]*core.RankedCandidate, error) {
	return p.ranker.RankWithMonitor(ctx, query, candidates, monitor)
}

// RecentTraces returns up to limit audit traces, newest first. Returns
// an empty slice when no audit store is configured.
func (p *Pipeline) RecentTraces(ctx context.Context, limit int) ([]*audit.Trace, error) {
	if p.store == nil {
		return []*audit.Trace{}, nil
	}
	return p.store.Recent(ctx, limit)
}

// Close releases the ranker's worker pool and the audit store.
func (p *Pipeline) Close() error {
	p.ranker.Release()

	if p.store != nil {
		if err := p.store.Close(); err != nil {
			p.logger.Error("error closing audit store", "err", err)
			return err
		}
	}
	return nil
}
