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


package score

import (
	"fmt"
	"strings"

	"github.com/poiesic/policyrank/core"
	"github.com/wizenheimer/comet"
)

// LexicalScorer computes BM25 keyword relevance between the query and the
// candidate corpus. Scores are min-max normalized by the corpus maximum so
// every value lies in [0,1]; a corpus with no signal scores zero across
// the board.
//
// Unlike the other scorers this one is corpus-relative: it must see all
// candidates of a ranking call at once.
type LexicalScorer struct{}

// NewLexicalScorer creates a lexical scorer.
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// ScoreAll fills in the Lexical field of every candidate. On error the
// candidates are left untouched (zero); callers log the failure and
// continue, since a missing lexical signal must not abort the pipeline.
func (s *LexicalScorer) ScoreAll(query string, candidates []*core.ScoredCandidate) error {
	if len(candidates) == 0 {
		return nil
	}

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	// comet tokenizes on whitespace; pre-split CJK runs so individual
	// ideographs are indexed, matching the shared tokenization rule.
	index := comet.NewBM25SearchIndex()
	for i, sc := range candidates {
		doc := strings.Join(Tokenize(sc.Content()), " ")
		if doc == "" {
			continue
		}
		if err := index.Add(uint32(i), doc); err != nil {
			return fmt.Errorf("%w: doc %d: %w", ErrIndexBuild, i, err)
		}
	}

	results, err := index.NewSearch().
		WithQuery(strings.Join(queryTokens, " ")).
		WithK(len(candidates)).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexSearch, err)
	}

	raw := make([]float64, len(candidates))
	maxScore := 0.0
	for _, r := range results {
		i := int(r.Id)
		if i < 0 || i >= len(candidates) {
			continue
		}
		raw[i] = float64(r.Score)
		if raw[i] > maxScore {
			maxScore = raw[i]
		}
	}

	if maxScore <= 0 {
		return nil
	}
	for i, sc := range candidates {
		sc.Lexical = raw[i] / maxScore
	}

	return nil
}
