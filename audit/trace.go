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


package audit

import (
	"context"
	"time"

	"github.com/poiesic/policyrank/core"
)

// Trace is the condensed record of one ranking call.
type Trace struct {
	Query      string        `json:"query"`
	Timestamp  time.Time     `json:"timestamp"`
	Candidates int           `json:"candidates"`
	Funneled   int           `json:"funneled"`
	Vetoed     []string      `json:"vetoed,omitempty"`
	Backfilled []string      `json:"backfilled,omitempty"`
	Results    []ResultEntry `json:"results"`
}

// ResultEntry is one final result inside a trace.
type ResultEntry struct {
	Title  string              `json:"title"`
	Link   string              `json:"link"`
	Scores core.ScoreBreakdown `json:"scores"`
	Note   string              `json:"note,omitempty"`
}

// Store persists traces. Implementations must be safe for concurrent
// use.
type Store interface {
	// Append persists one trace.
	Append(ctx context.Context, trace *Trace) error

	// Recent returns up to limit traces, newest first.
	Recent(ctx context.Context, limit int) ([]*Trace, error)

	// Close releases the underlying storage.
	Close() error
}

// Recorder builds a Trace from the ranking monitor hooks. It satisfies
// rank.Monitor and is meant to observe exactly one ranking call.
type Recorder struct {
	now   func() time.Time
	trace Trace
}

// NewRecorder creates a recorder using the wall clock.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// NewRecorderWithClock creates a recorder with an injected time source.
func NewRecorderWithClock(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

func (r *Recorder) Start(query string, candidates int) {
	r.trace = Trace{
		Query:      query,
		Timestamp:  r.now().UTC(),
		Candidates: candidates,
	}
}

func (r *Recorder) AfterSignalScoring(_ []*core.ScoredCandidate) {}

func (r *Recorder) AfterFunnel(survivors []*core.ScoredCandidate) {
	r.trace.Funneled = len(survivors)
}

func (r *Recorder) AfterVerification(_ []*core.ScoredCandidate) {}

func (r *Recorder) Vetoed(sc *core.ScoredCandidate) {
	r.trace.Vetoed = append(r.trace.Vetoed, sc.Candidate.Link)
}

func (r *Recorder) Backfilled(sc *core.ScoredCandidate) {
	r.trace.Backfilled = append(r.trace.Backfilled, sc.Candidate.Link)
}

func (r *Recorder) Finish(results []*core.RankedCandidate) {
	r.trace.Results = make([]ResultEntry, len(results))
	for i, rc := range results {
		r.trace.Results[i] = ResultEntry{
			Title:  rc.Title,
			Link:   rc.Link,
			Scores: rc.Scores,
			Note:   rc.Note,
		}
	}
}

// Trace returns the recorded trace. Valid after Finish was called.
func (r *Recorder) Trace() *Trace {
	return &r.trace
}
