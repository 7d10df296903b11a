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


// Package audit records ranking decisions for later inspection.
//
// A Recorder observes a single ranking call through the rank.Monitor
// hooks and condenses it into a Trace: the query, which candidates were
// vetoed or backfilled, and the final result list with score breakdowns.
// Traces are diagnostic records, not ranking state; nothing in the
// pipeline reads them back.
package audit
