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


package core

import (
	"encoding/binary"
	"math"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for a candidate, derived from its link.
type ID uint64

// IDFromLink generates a deterministic ID from a candidate link using
// BLAKE2b hashing. Identical links produce identical IDs, which is the
// identity rule for deduplication.
func IDFromLink(link string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(link))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DefaultSearchRank is assigned when the upstream search engine did not
// report a position for a hit. It is large enough that the rank signal
// contributes almost nothing for such candidates.
const DefaultSearchRank = 1000

// DefaultVerifierScore is the neutral verifier score a candidate carries
// until (and unless) the external verifier judges it.
const DefaultVerifierScore = 0.5

// Candidate is a raw search-engine hit for a policy-document query.
type Candidate struct {
	Title      string `json:"title"`
	Link       string `json:"link"`
	Snippet    string `json:"snippet"`
	Source     string `json:"source,omitempty"`
	Date       string `json:"date,omitempty"`
	SearchRank int    `json:"searchRank,omitempty"`
}

// ID returns the candidate's link-derived identity.
func (c *Candidate) ID() ID {
	return IDFromLink(c.Link)
}

// Rank returns the 1-based upstream search position, substituting
// DefaultSearchRank when the position was absent or invalid.
func (c *Candidate) Rank() int {
	if c.SearchRank <= 0 {
		return DefaultSearchRank
	}
	return c.SearchRank
}

// VerifierLabel classifies a candidate's provenance as judged by the
// external verifier.
type VerifierLabel string

const (
	// LabelUnset means the verifier has not judged the candidate.
	LabelUnset VerifierLabel = ""
	// LabelOriginal marks primary regulatory text.
	LabelOriginal VerifierLabel = "ORIGINAL"
	// LabelSummaryNews marks derivative reporting or summaries.
	LabelSummaryNews VerifierLabel = "SUMMARY_NEWS"
	// LabelNoise marks irrelevant or junk results.
	LabelNoise VerifierLabel = "NOISE"
)

// ParseVerifierLabel maps a raw label string to a VerifierLabel.
// Unknown values map to LabelUnset rather than failing, since verifier
// output is advisory.
func ParseVerifierLabel(s string) VerifierLabel {
	switch VerifierLabel(s) {
	case LabelOriginal, LabelSummaryNews, LabelNoise:
		return VerifierLabel(s)
	default:
		return LabelUnset
	}
}

// ScoredCandidate owns one Candidate plus all derived signals. It lives
// only for the duration of a single ranking call.
type ScoredCandidate struct {
	Candidate *Candidate

	Authority   float64 // trust tier in [0,1]; 0 means vetoed as noise
	Lexical     float64 // BM25 relevance, corpus-normalized to [0,1]
	Semantic    float64 // token-overlap proxy in [0,1]
	Recency     float64 // freshness in [0,1]
	FormatBonus float64 // additive URL-shape hint, 0-0.2

	VerifierScore      float64
	VerifierLabel      VerifierLabel
	IsOriginalDocument bool
	StatusTag          string
	CategoryTag        string

	Final      float64
	Backfilled bool
}

// NewScoredCandidate wraps a candidate with pipeline defaults.
func NewScoredCandidate(c *Candidate) *ScoredCandidate {
	return &ScoredCandidate{
		Candidate:     c,
		VerifierScore: DefaultVerifierScore,
	}
}

// Content returns the candidate text used by the relevance scorers.
func (sc *ScoredCandidate) Content() string {
	return sc.Candidate.Title + " " + sc.Candidate.Snippet
}

// Reliability is the authority/format composite used by score fusion,
// capped at 1.0.
func (sc *ScoredCandidate) Reliability() float64 {
	return math.Min(1.0, sc.Authority+sc.FormatBonus)
}

// Relevance is the lexical/semantic blend used by the funnel and fusion.
func (sc *ScoredCandidate) Relevance() float64 {
	return (sc.Lexical + sc.Semantic) / 2
}

// ScoreBreakdown exposes the contributing sub-scores of a ranked result,
// rounded for readability.
type ScoreBreakdown struct {
	Authority float64 `json:"authority"`
	Content   float64 `json:"content"`
	Recency   float64 `json:"recency"`
	Verifier  float64 `json:"verifier,omitempty"`
	Final     float64 `json:"final"`
}

// RankedCandidate is the assembled output form: the original candidate
// fields plus the visible score breakdown and advisory tags.
type RankedCandidate struct {
	Candidate
	Scores      ScoreBreakdown `json:"scores"`
	StatusTag   string         `json:"statusTag,omitempty"`
	CategoryTag string         `json:"categoryTag,omitempty"`
	Note        string         `json:"note,omitempty"`
}

// BackfillNote marks results that were force-included to satisfy the
// minimum result count.
const BackfillNote = "backfill"

// Round3 rounds a score to three decimals for breakdown output.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Assemble converts a scored candidate into its output form.
func (sc *ScoredCandidate) Assemble() *RankedCandidate {
	rc := &RankedCandidate{
		Candidate: *sc.Candidate,
		Scores: ScoreBreakdown{
			Authority: Round3(sc.Authority),
			Content:   Round3(sc.Relevance()),
			Recency:   Round3(sc.Recency),
			Verifier:  Round3(sc.VerifierScore),
			Final:     Round3(sc.Final),
		},
		StatusTag:   sc.StatusTag,
		CategoryTag: sc.CategoryTag,
	}
	if sc.Backfilled {
		rc.Note = BackfillNote
	}
	return rc
}
