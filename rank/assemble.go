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

// vetoed reports whether a candidate is filtered out of the primary
// result set: noise-classified by the authority scorer with no redeeming
// format hint or verifier reprieve, or fused below the absolute floor.
func vetoed(cfg *Config, sc *core.ScoredCandidate) bool {
	if sc.Authority == 0 &&
		sc.FormatBonus < cfg.FormatVetoThreshold &&
		sc.VerifierLabel != core.LabelOriginal {
		return true
	}
	return sc.Final < cfg.ScoreFloor
}

// assemble builds the final result list from the verified funnel
// survivors, backfilling from the full scored pool when strict filtering
// leaves fewer than MinResults entries. Backfilled entries are marked in
// their score breakdown so callers can tell confident results from
// forcibly included ones.
func assemble(cfg *Config, pool, survivors []*core.ScoredCandidate, monitor Monitor) []*core.RankedCandidate {
	byFinalDesc := func(a, b *core.ScoredCandidate) int {
		switch {
		case a.Final > b.Final:
			return -1
		case a.Final < b.Final:
			return 1
		default:
			return 0
		}
	}

	ordered := slices.Clone(survivors)
	slices.SortStableFunc(ordered, byFinalDesc)

	results := make([]*core.RankedCandidate, 0, len(ordered))
	seen := make(map[core.ID]bool, len(ordered))

	for _, sc := range ordered {
		id := sc.Candidate.ID()
		if seen[id] {
			continue
		}
		if vetoed(cfg, sc) {
			monitor.Vetoed(sc)
			continue
		}
		seen[id] = true
		results = append(results, sc.Assemble())
	}

	// Backfill toward the minimum from the pre-veto pool, best first.
	// The guarantee: callers get MinResults entries whenever the pool
	// has that many unique links, even if every one failed the filters.
	if len(results) < cfg.MinResults {
		backfillPool := slices.Clone(pool)
		slices.SortStableFunc(backfillPool, byFinalDesc)

		for _, sc := range backfillPool {
			if len(results) >= cfg.MinResults {
				break
			}
			id := sc.Candidate.ID()
			if seen[id] {
				continue
			}
			seen[id] = true
			sc.Backfilled = true
			monitor.Backfilled(sc)
			results = append(results, sc.Assemble())
		}
	}

	slices.SortStableFunc(results, func(a, b *core.RankedCandidate) int {
		switch {
		case a.Scores.Final > b.Scores.Final:
			return -1
		case a.Scores.Final < b.Scores.Final:
			return 1
		default:
			return 0
		}
	})

	return results
}
