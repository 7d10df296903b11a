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
	"fmt"
	"math"
)

// Weights are the fusion weights over the normalized composites. They
// must be non-negative and sum to 1.
//
// Recency exists only to express the legacy two-stage profile
// (TwoStageWeights); the default four-signal profile leaves it at 0 and
// lets recency influence ranking through the funnel instead.
type Weights struct {
	Rank        float64 // upstream search position, 1/log2(rank+1)
	Content     float64 // (lexical + semantic) / 2
	Reliability float64 // min(1, authority + format bonus)
	Verifier    float64 // externally judged score
	Recency     float64 // freshness step score
}

// DefaultWeights is the four-signal rank-fusion profile.
func DefaultWeights() Weights {
	return Weights{
		Rank:        0.20,
		Content:     0.20,
		Reliability: 0.30,
		Verifier:    0.30,
	}
}

// TwoStageWeights is the older profile without a verifier term, kept for
// deployments that cannot reach a reasoning service.
func TwoStageWeights() Weights {
	return Weights{
		Rank:        0.30,
		Content:     0.30,
		Reliability: 0.30,
		Recency:     0.10,
	}
}

// Validate checks the weight profile.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Rank, w.Content, w.Reliability, w.Verifier, w.Recency} {
		if v < 0 {
			return ErrInvalidWeights
		}
	}
	sum := w.Rank + w.Content + w.Reliability + w.Verifier + w.Recency
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("%w: sum is %v", ErrInvalidWeights, sum)
	}
	return nil
}

// Config holds the pipeline bounds and thresholds.
type Config struct {
	// Weights is the fusion profile.
	Weights Weights

	// FunnelSize bounds the candidate set passed to the verifier,
	// controlling verification cost. Default 15.
	FunnelSize int

	// MinResults is the minimum result count the assembler backfills
	// toward. Default 5.
	MinResults int

	// ScoreFloor drops candidates whose fused score falls below it.
	// Default 0.05.
	ScoreFloor float64

	// FormatVetoThreshold: a noise-vetoed candidate (authority 0)
	// survives only if its format bonus reaches this threshold or the
	// verifier labeled it ORIGINAL. Default 0.15.
	FormatVetoThreshold float64
}

// DefaultConfig returns the reference pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights:             DefaultWeights(),
		FunnelSize:          15,
		MinResults:          5,
		ScoreFloor:          0.05,
		FormatVetoThreshold: 0.15,
	}
}

// Validate checks bounds and the weight profile.
func (c *Config) Validate() error {
	if c.FunnelSize <= 0 || c.MinResults <= 0 {
		return ErrInvalidConfig
	}
	if c.ScoreFloor < 0 || c.FormatVetoThreshold < 0 {
		return ErrInvalidConfig
	}
	return c.Weights.Validate()
}
