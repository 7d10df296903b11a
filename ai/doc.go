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


// Package ai defines the external reasoning-service boundary of the
// ranking pipeline: the Verifier interface that judges the authenticity
// and relevance of funnel survivors, plus its configuration.
//
// The openai subpackage implements Verifier against OpenAI-compatible
// chat APIs; the mock subpackage provides a test double. The pipeline
// never talks to a verifier directly: it receives one by injection, so
// verification can be faked, swapped, or retried without touching
// scoring logic.
package ai
