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
	"math"

	"github.com/poiesic/policyrank/core"
)

// rankScore converts a 1-based upstream search position into a [0,1]
// score: 1/log2(rank+1), so position 1 scores 1.0 and the default rank
// for unranked hits contributes almost nothing.
func rankScore(rank int) float64 {
	return 1.0 / math.Log2(float64(rank)+1)
}

// fuse computes the final weighted score for one candidate from all
// normalized composites.
func fuse(w Weights, sc *core.ScoredCandidate) float64 {
	return w.Rank*rankScore(sc.Candidate.Rank()) +
		w.Content*sc.Relevance() +
		w.Reliability*sc.Reliability() +
		w.Verifier*sc.VerifierScore +
		w.Recency*sc.Recency
}

// fuseAll fills in the Final score of every candidate. All candidates
// are fused, not only funnel survivors, so the backfill pool carries
// comparable scores; non-survivors keep the neutral verifier default.
func fuseAll(w Weights, scored []*core.ScoredCandidate) {
	for _, sc := range scored {
		sc.Final = fuse(w, sc)
	}
}
