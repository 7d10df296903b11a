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


package ai

import (
	"context"

	"github.com/poiesic/policyrank/core"
)

// SnippetExcerptLen bounds the snippet length sent to the verifier to
// keep the batched request small.
const SnippetExcerptLen = 100

// Item is one candidate in a batched verification request. Index is
// 1-based and is how judgments map back to candidates.
type Item struct {
	Index   int
	Title   string
	Snippet string
}

// Judgment is the verifier's assessment of a single candidate.
type Judgment struct {
	// Index is the 1-based position of the judged item in the request.
	Index int

	// Score is the judged topical relevance in [0,1].
	Score float64

	// Label classifies the item as primary regulatory text, derivative
	// reporting, or noise.
	Label core.VerifierLabel

	// IsOriginal flags a complete official original document.
	IsOriginal bool

	// Status is an optional human-readable effectiveness status,
	// e.g. "现行有效".
	Status string

	// Tag is an optional short category tag.
	Tag string
}

// Verifier judges the authenticity and relevance of ranked candidates in
// a single batched call to an external reasoning service.
// Implementations must be safe for concurrent use.
type Verifier interface {
	// VerifyBatch judges all items against the query. The returned
	// judgments may cover any subset of the items, in any order; callers
	// match them by Index and must tolerate missing or surplus entries.
	// Returns an error if the service call or response parsing fails
	// entirely - callers fall back to neutral defaults in that case.
	VerifyBatch(ctx context.Context, query string, items []Item) ([]Judgment, error)
}

// Excerpt shortens a snippet to SnippetExcerptLen runes.
func Excerpt(snippet string) string {
	runes := []rune(snippet)
	if len(runes) <= SnippetExcerptLen {
		return snippet
	}
	return string(runes[:SnippetExcerptLen])
}
