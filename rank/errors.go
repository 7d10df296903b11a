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

import "errors"

var (
	// ErrVerifierRequired is returned when a verifier is not provided.
	ErrVerifierRequired = errors.New("verifier required")

	// ErrInvalidWeights is returned when fusion weights are negative or
	// do not sum to 1.
	ErrInvalidWeights = errors.New("fusion weights must be non-negative and sum to 1")

	// ErrInvalidConfig is returned when pipeline bounds are not positive.
	ErrInvalidConfig = errors.New("funnel size and minimum results must be positive")
)
