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


package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyVerifier fails a fixed number of times before succeeding.
type flakyVerifier struct {
	failures int
	calls    int
}

func (f *flakyVerifier) VerifyBatch(_ context.Context, _ string, items []Item) ([]Judgment, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	judgments := make([]Judgment, len(items))
	for i, item := range items {
		judgments[i] = Judgment{Index: item.Index, Score: 0.5}
	}
	return judgments, nil
}

func TestNewRetryVerifierValidation(t *testing.T) {
	_, err := NewRetryVerifier(nil, 3, time.Millisecond)
	assert.ErrorIs(t, err, ErrVerifierRequired)

	_, err = NewRetryVerifier(&flakyVerifier{}, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryVerifierSucceedsFirstTry(t *testing.T) {
	inner := &flakyVerifier{}
	rv, err := NewRetryVerifier(inner, 3, time.Millisecond)
	require.NoError(t, err)

	judgments, err := rv.VerifyBatch(context.Background(), "q", []Item{{Index: 1}})
	require.NoError(t, err)
	assert.Len(t, judgments, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryVerifierRecoversFromTransientFailures(t *testing.T) {
	inner := &flakyVerifier{failures: 2}
	rv, err := NewRetryVerifier(inner, 3, time.Millisecond)
	require.NoError(t, err)

	judgments, err := rv.VerifyBatch(context.Background(), "q", []Item{{Index: 1}})
	require.NoError(t, err)
	assert.Len(t, judgments, 1)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryVerifierExhaustsAttempts(t *testing.T) {
	inner := &flakyVerifier{failures: 10}
	rv, err := NewRetryVerifier(inner, 3, time.Millisecond)
	require.NoError(t, err)

	_, err = rv.VerifyBatch(context.Background(), "q", []Item{{Index: 1}})
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryVerifierHonorsContextCancellation(t *testing.T) {
	inner := &flakyVerifier{failures: 10}
	rv, err := NewRetryVerifier(inner, 5, 10*time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = rv.VerifyBatch(ctx, "q", []Item{{Index: 1}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, inner.calls)
}
