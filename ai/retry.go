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
	"log/slog"
	"time"
)

// RetryVerifier decorates a Verifier with exponential-backoff retries.
// Verification services are occasionally flaky under load; a couple of
// retries recovers most transient failures without the caller noticing.
type RetryVerifier struct {
	verifier    Verifier
	maxAttempts int
	baseDelay   time.Duration
}

var _ Verifier = (*RetryVerifier)(nil)

// NewRetryVerifier wraps a verifier with retry behavior.
// maxAttempts must be > 0; baseDelay doubles on each retry.
func NewRetryVerifier(verifier Verifier, maxAttempts int, baseDelay time.Duration) (*RetryVerifier, error) {
	if verifier == nil {
		return nil, ErrVerifierRequired
	}
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	return &RetryVerifier{
		verifier:    verifier,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}, nil
}

// VerifyBatch retries the wrapped verifier with exponential backoff.
// Returns the error from the last attempt if all attempts fail.
func (r *RetryVerifier) VerifyBatch(ctx context.Context, query string, items []Item) ([]Judgment, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		judgments, err := r.verifier.VerifyBatch(ctx, query, items)
		if err == nil {
			if attempt > 1 {
				slog.Debug("verification succeeded after retry", "attempt", attempt)
			}
			return judgments, nil
		}
		lastErr = err

		slog.Debug("verification failed, will retry",
			"attempt", attempt, "maxAttempts", r.maxAttempts, "error", err)

		if attempt == r.maxAttempts {
			break
		}

		// Exponential backoff: baseDelay * 2^(attempt-1)
		delay := r.baseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}
