package mock

import (
	"context"

	"github.com/poiesic/policyrank/ai"
	"github.com/poiesic/policyrank/core"
)

// MockVerifier is a test double for ai.Verifier.
// It allows custom behavior injection via function fields.
type MockVerifier struct {
	// VerifyBatchFunc is called by VerifyBatch if set.
	// If nil, every item is judged SUMMARY_NEWS with score 0.5.
	VerifyBatchFunc func(ctx context.Context, query string, items []ai.Item) ([]ai.Judgment, error)

	callCount int
}

// NewMockVerifier creates a mock verifier with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{}
}

// VerifyBatch judges items with the injected function, or applies the
// neutral default judgment to every item.
func (m *MockVerifier) VerifyBatch(ctx context.Context, query string, items []ai.Item) ([]ai.Judgment, error) {
	m.callCount++

	if m.VerifyBatchFunc != nil {
		return m.VerifyBatchFunc(ctx, query, items)
	}

	judgments := make([]ai.Judgment, 0, len(items))
	for _, item := range items {
		judgments = append(judgments, ai.Judgment{
			Index: item.Index,
			Score: core.DefaultVerifierScore,
			Label: core.LabelSummaryNews,
		})
	}
	return judgments, nil
}

// CallCount returns the number of times VerifyBatch was called.
func (m *MockVerifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockVerifier) Reset() {
	m.callCount = 0
	m.VerifyBatchFunc = nil
}

var _ ai.Verifier = (*MockVerifier)(nil)
