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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	require.NoError(t, TwoStageWeights().Validate())
}

func TestWeightsValidateRejectsBadProfiles(t *testing.T) {
	negative := Weights{Rank: -0.1, Content: 0.4, Reliability: 0.4, Verifier: 0.3}
	assert.ErrorIs(t, negative.Validate(), ErrInvalidWeights)

	short := Weights{Rank: 0.2, Content: 0.2, Reliability: 0.2, Verifier: 0.2}
	assert.ErrorIs(t, short.Validate(), ErrInvalidWeights)

	over := Weights{Rank: 0.5, Content: 0.5, Reliability: 0.5}
	assert.ErrorIs(t, over.Validate(), ErrInvalidWeights)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.FunnelSize = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.MinResults = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.ScoreFloor = -0.01
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Weights = Weights{Rank: 1.5}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWeights)
}
