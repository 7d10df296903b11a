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


package rank

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/policyrank/ai"
	"github.com/poiesic/policyrank/core"
	"github.com/poiesic/policyrank/score"
)

// Verifier score adjustments applied after the batched judgment.
const (
	originalBoost  = 1.2
	noisePenalty   = 0.3
	verifyDeadline = 60 * time.Second
)

// Ranker orchestrates the full pipeline: signal scoring, the triage
// funnel, batched external verification, score fusion and assembly.
// It manages a worker pool for concurrent per-candidate scoring.
type Ranker struct {
	authority *score.AuthorityScorer
	lexical   *score.LexicalScorer
	recency   *score.RecencyScorer
	format    *score.FormatBonusScorer
	verifier  ai.Verifier
	cfg       *Config
	pool      *ants.Pool
	logger    *slog.Logger

	// deferred until after options run
	authorityCfg *score.AuthorityConfig
	clock        func() time.Time
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent signal scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Ranker) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithConfig replaces the pipeline configuration.
func WithConfig(cfg *Config) Option {
	return func(r *Ranker) error {
		if cfg == nil {
			return ErrInvalidConfig
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.cfg = cfg
		return nil
	}
}

// WithAuthorityConfig replaces the authority heuristic tables.
func WithAuthorityConfig(cfg *score.AuthorityConfig) Option {
	return func(r *Ranker) error {
		if cfg == nil {
			return ErrInvalidConfig
		}
		r.authorityCfg = cfg
		return nil
	}
}

// WithClock sets the time source for recency scoring. Default is
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) error {
		if now != nil {
			r.clock = now
		}
		return nil
	}
}

// NewRanker creates a ranking pipeline around the given verifier.
func NewRanker(verifier ai.Verifier, opts ...Option) (*Ranker, error) {
	if verifier == nil {
		return nil, ErrVerifierRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Ranker{
		lexical:      score.NewLexicalScorer(),
		format:       score.NewFormatBonusScorer(),
		verifier:     verifier,
		cfg:          DefaultConfig(),
		pool:         pool,
		logger:       slog.Default(),
		authorityCfg: score.DefaultAuthorityConfig(),
		clock:        time.Now,
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	// Build scorers after options are applied so they see final config.
	authority, err := score.NewAuthorityScorer(r.authorityCfg)
	if err != nil {
		r.Release()
		return nil, err
	}
	r.authority = authority
	r.recency = score.NewRecencyScorer(
		score.WithClock(r.clock),
		score.WithRecencyLogger(r.logger),
	)

	return r, nil
}

// Rank scores, verifies and orders candidates for a query.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []*core.Candidate) ([]*core.RankedCandidate, error) {
	return r.RankWithMonitor(ctx, query, candidates, nil)
}

// RankWithMonitor is Rank with observation hooks into each stage. A nil
// monitor is allowed.
func (r *Ranker) RankWithMonitor(ctx context.Context, query string, candidates []*core.Candidate, monitor Monitor) ([]*core.RankedCandidate, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	unique := core.Dedup(candidates)
	monitor.Start(query, len(unique))

	if len(unique) == 0 {
		return []*core.RankedCandidate{}, nil
	}

	scored := make([]*core.ScoredCandidate, len(unique))
	for i, c := range unique {
		scored[i] = core.NewScoredCandidate(c)
	}

	// Lexical scoring is corpus-relative and runs over the whole set at
	// once. A failure degrades to zero lexical signal rather than
	// aborting the pipeline.
	if err := r.lexical.ScoreAll(query, scored); err != nil {
		r.logger.Warn("lexical scoring failed, continuing without keyword signal", "err", err)
	}

	r.scoreSignals(query, scored)
	monitor.AfterSignalScoring(scored)

	survivors := funnel(scored, r.cfg.FunnelSize)
	monitor.AfterFunnel(survivors)

	r.verify(ctx, query, survivors)
	monitor.AfterVerification(survivors)

	// Fuse everything so the backfill pool carries comparable scores.
	fuseAll(r.cfg.Weights, scored)

	results := assemble(r.cfg, scored, survivors, monitor)
	monitor.Finish(results)
	return results, nil
}

// scoreSignals runs the per-candidate scorers concurrently on the worker
// pool. All scorers here are pure, so the only shared state is each
// candidate's own fields.
func (r *Ranker) scoreSignals(query string, scored []*core.ScoredCandidate) {
	querySet := score.TokenSet(query)

	var wg sync.WaitGroup
	for _, sc := range scored {
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			sc.Authority = r.authority.Score(sc.Candidate)
			sc.Semantic = score.Jaccard(querySet, score.TokenSet(sc.Content()))
			sc.Recency = r.recency.Score(sc.Candidate.Date)
			sc.FormatBonus = r.format.Score(sc.Candidate.Link)
		})
		if err != nil {
			// Pool rejected the task (released or overloaded); score
			// inline so no candidate is left unscored.
			sc.Authority = r.authority.Score(sc.Candidate)
			sc.Semantic = score.Jaccard(querySet, score.TokenSet(sc.Content()))
			sc.Recency = r.recency.Score(sc.Candidate.Date)
			sc.FormatBonus = r.format.Score(sc.Candidate.Link)
			wg.Done()
		}
	}
	wg.Wait()
}

// verify sends the funnel survivors to the external verifier in one
// batch and applies the judgments. Verification is fault tolerant:
// on any error the survivors keep their neutral defaults and ranking
// proceeds on the heuristic signals alone.
func (r *Ranker) verify(ctx context.Context, query string, survivors []*core.ScoredCandidate) {
	if len(survivors) == 0 {
		return
	}

	items := make([]ai.Item, len(survivors))
	for i, sc := range survivors {
		items[i] = ai.Item{
			Index:   i + 1,
			Title:   sc.Candidate.Title,
			Snippet: sc.Candidate.Snippet,
		}
	}

	vctx, cancel := context.WithTimeout(ctx, verifyDeadline)
	defer cancel()

	judgments, err := r.verifier.VerifyBatch(vctx, query, items)
	if err != nil {
		r.logger.Warn("verification failed, ranking on heuristic signals only",
			"err", err, "candidates", len(survivors))
		return
	}

	for _, j := range judgments {
		if j.Index < 1 || j.Index > len(survivors) {
			r.logger.Debug("judgment index out of range", "index", j.Index)
			continue
		}
		sc := survivors[j.Index-1]

		sc.VerifierScore = j.Score
		sc.VerifierLabel = j.Label
		sc.IsOriginalDocument = j.IsOriginal
		sc.StatusTag = j.Status
		sc.CategoryTag = j.Tag

		switch j.Label {
		case core.LabelOriginal:
			sc.VerifierScore = min(1.0, sc.VerifierScore*originalBoost)
		case core.LabelNoise:
			sc.VerifierScore *= noisePenalty
		}
	}
}

// Release releases the worker pool. The ranker should not be used after
// calling Release.
func (r *Ranker) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
