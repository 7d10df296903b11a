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


// Package rank implements the candidate ranking pipeline.
//
// A ranking call flows strictly downstream:
//
//	raw candidates -> per-candidate signal scoring -> funnel truncation
//	-> batched external verification (survivors only) -> score fusion
//	-> assembly (veto, dedup, backfill, sort)
//
// Per-candidate scoring runs concurrently on a worker pool; the single
// network operation is the verification call, whose failure degrades to
// neutral defaults instead of aborting the ranking. Callers always
// receive a result list - empty only when the input was empty.
package rank
