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
	"slices"

	"github.com/poiesic/policyrank/core"
)

// Funnel triage weights: relevance dominates, recency breaks topical
// ties. Authority deliberately plays no part here - the funnel only
// bounds verification cost, and vetoes happen later with the verifier's
// judgment available.
const (
	funnelRelevanceWeight = 0.7
	funnelRecencyWeight   = 0.3
)

// blended is the coarse triage score used for funnel ordering.
func blended(sc *core.ScoredCandidate) float64 {
	return funnelRelevanceWeight*sc.Relevance() + funnelRecencyWeight*sc.Recency
}

// funnel sorts candidates by the triage blend and truncates to size,
// bounding the batch sent to the external verifier. The input slice is
// not modified.
func funnel(scored []*core.ScoredCandidate, size int) []*core.ScoredCandidate {
	survivors := slices.Clone(scored)
	slices.SortStableFunc(survivors, func(a, b *core.ScoredCandidate) int {
		switch {
		case blended(a) > blended(b):
			return -1
		case blended(a) < blended(b):
			return 1
		default:
			return 0
		}
	})

	if len(survivors) > size {
		survivors = survivors[:size]
	}
	return survivors
}
