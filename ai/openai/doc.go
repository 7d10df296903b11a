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


// Package openai implements ai.Verifier against OpenAI-compatible chat
// APIs (OpenAI, Ollama, vLLM, DashScope compatible mode, and similar).
//
// Verification is a single batched chat call. Response handling is
// defensive: code fences and surrounding prose are tolerated, the first
// well-formed JSON array fragment is extracted, and malformed entries are
// skipped rather than failing the batch.
package openai
