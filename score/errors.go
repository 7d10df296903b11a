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


package score

import "errors"

var (
	// ErrConfigRequired is returned when an authority configuration is not provided.
	ErrConfigRequired = errors.New("authority config required")

	// ErrNoTiers is returned when an authority configuration has no keyword tiers.
	ErrNoTiers = errors.New("authority config needs at least one keyword tier")

	// ErrIndexBuild indicates the lexical ranking index could not be built.
	// Callers recover by treating every lexical score as zero.
	ErrIndexBuild = errors.New("lexical index build failed")

	// ErrIndexSearch indicates the lexical ranking index could not be queried.
	// Callers recover by treating every lexical score as zero.
	ErrIndexSearch = errors.New("lexical index search failed")
)
