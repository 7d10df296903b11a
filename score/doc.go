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


// Package score implements the per-signal candidate scorers:
//
//   - AuthorityScorer: institutional trust from source labels and URLs
//   - LexicalScorer: BM25 keyword relevance over the candidate corpus
//   - SemanticScorer: token-overlap (Jaccard) topical similarity proxy
//   - RecencyScorer: publication-age decay
//   - FormatBonusScorer: URL shapes hinting at primary-source documents
//
// All scorers are pure and perform no network access. Signal values are
// normalized to [0,1] except the format bonus, which is a small additive
// hint in the 0-0.2 range.
package score
