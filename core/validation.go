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

import "fmt"

// ValidateCandidate validates a Candidate according to domain rules.
//
// Validation rules:
//   - Link must not be empty (it is the identity key)
//
// NOT validated (tolerated by the pipeline with documented defaults):
//   - Source (empty falls through to the authority floor score)
//   - Date (missing or unparseable yields the neutral recency score)
//   - SearchRank (non-positive values default to DefaultSearchRank)
func ValidateCandidate(c *Candidate) error {
	if c == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}

	if c.Link == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyLink)
	}

	return nil
}

// Dedup collapses candidates sharing a link, keeping the first occurrence
// but preserving the best (lowest) reported search rank among duplicates.
// Candidates failing validation are dropped. Order is otherwise preserved.
func Dedup(candidates []*Candidate) []*Candidate {
	out := make([]*Candidate, 0, len(candidates))
	byID := make(map[ID]*Candidate, len(candidates))

	for _, c := range candidates {
		if ValidateCandidate(c) != nil {
			continue
		}
		id := c.ID()
		if prev, ok := byID[id]; ok {
			if c.Rank() < prev.Rank() {
				prev.SearchRank = c.Rank()
			}
			continue
		}
		byID[id] = c
		out = append(out, c)
	}

	return out
}
