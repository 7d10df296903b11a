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

import "github.com/poiesic/policyrank/core"

// SemanticScorer approximates topical similarity as Jaccard overlap of
// token sets. This is a deliberate lightweight proxy, not embedding
// cosine similarity; swapping in real embeddings would materially change
// ranking behavior and needs its own design pass.
type SemanticScorer struct{}

// NewSemanticScorer creates a semantic scorer.
func NewSemanticScorer() *SemanticScorer {
	return &SemanticScorer{}
}

// Score computes the Jaccard similarity between the query and a single
// text, 0 if either token set is empty.
func (s *SemanticScorer) Score(query, text string) float64 {
	return Jaccard(TokenSet(query), TokenSet(text))
}

// ScoreAll fills in the Semantic field of every candidate, tokenizing the
// query once.
func (s *SemanticScorer) ScoreAll(query string, candidates []*core.ScoredCandidate) {
	querySet := TokenSet(query)
	for _, sc := range candidates {
		sc.Semantic = Jaccard(querySet, TokenSet(sc.Content()))
	}
}

// Jaccard is |intersection| / |union| of two token sets.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	return float64(intersection) / float64(union)
}
