package openai

import (
	"log/slog"
	"testing"

	"github.com/poiesic/policyrank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParseVerifier() *Verifier {
	return &Verifier{logger: slog.Default()}
}

func TestExtractJSONArray(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		got, ok := extractJSONArray(`[{"index":1}]`)
		require.True(t, ok)
		assert.Equal(t, `[{"index":1}]`, got)
	})

	t.Run("array wrapped in prose", func(t *testing.T) {
		text := `好的，以下是判定结果：[{"index":1,"score":0.9}] 希望对你有帮助。`
		got, ok := extractJSONArray(text)
		require.True(t, ok)
		assert.Equal(t, `[{"index":1,"score":0.9}]`, got)
	})

	t.Run("nested arrays and brackets in strings", func(t *testing.T) {
		text := `result: [{"index":1,"tag":"规章[试行]","refs":[1,2]}]`
		got, ok := extractJSONArray(text)
		require.True(t, ok)
		assert.Equal(t, `[{"index":1,"tag":"规章[试行]","refs":[1,2]}]`, got)
	})

	t.Run("skips unbalanced fragment for later valid one", func(t *testing.T) {
		text := `broken [1, 2 ... actual answer: [3, 4]`
		got, ok := extractJSONArray(text)
		require.True(t, ok)
		assert.Equal(t, `[3, 4]`, got)
	})

	t.Run("no array", func(t *testing.T) {
		_, ok := extractJSONArray("I could not produce a judgment.")
		assert.False(t, ok)
	})
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `[{"index":1}]`, stripCodeFences("```json\n[{\"index\":1}]\n```"))
	assert.Equal(t, `[{"index":1}]`, stripCodeFences("```\n[{\"index\":1}]\n```"))
	assert.Equal(t, `[{"index":1}]`, stripCodeFences(`[{"index":1}]`))
}

func TestVerifierParse(t *testing.T) {
	v := newParseVerifier()

	t.Run("full judgment", func(t *testing.T) {
		judgments, err := v.parse(`[
			{"index": 1, "score": 0.95, "label": "ORIGINAL", "is_original": true, "status": "现行有效", "tag": "监管规章"},
			{"index": 2, "score": 0.4, "label": "SUMMARY_NEWS", "is_original": false},
			{"index": 3, "score": 0.1, "label": "NOISE"}
		]`)
		require.NoError(t, err)
		require.Len(t, judgments, 3)

		assert.Equal(t, 1, judgments[0].Index)
		assert.InDelta(t, 0.95, judgments[0].Score, 1e-9)
		assert.Equal(t, core.LabelOriginal, judgments[0].Label)
		assert.True(t, judgments[0].IsOriginal)
		assert.Equal(t, "现行有效", judgments[0].Status)
		assert.Equal(t, "监管规章", judgments[0].Tag)

		assert.Equal(t, core.LabelSummaryNews, judgments[1].Label)
		assert.Equal(t, core.LabelNoise, judgments[2].Label)
	})

	t.Run("prose and fences tolerated", func(t *testing.T) {
		judgments, err := v.parse("```json\n判定如下 [{\"index\": 1, \"score\": 0.8, \"label\": \"ORIGINAL\"}]\n```")
		require.NoError(t, err)
		require.Len(t, judgments, 1)
		assert.Equal(t, core.LabelOriginal, judgments[0].Label)
	})

	t.Run("unknown label maps to unset", func(t *testing.T) {
		judgments, err := v.parse(`[{"index": 1, "score": 0.5, "label": "MAYBE"}]`)
		require.NoError(t, err)
		require.Len(t, judgments, 1)
		assert.Equal(t, core.LabelUnset, judgments[0].Label)
	})

	t.Run("score clamped to unit interval", func(t *testing.T) {
		judgments, err := v.parse(`[{"index": 1, "score": 1.7}, {"index": 2, "score": -0.4}]`)
		require.NoError(t, err)
		require.Len(t, judgments, 2)
		assert.InDelta(t, 1.0, judgments[0].Score, 1e-9)
		assert.Zero(t, judgments[1].Score)
	})

	t.Run("entries without index are skipped", func(t *testing.T) {
		judgments, err := v.parse(`[{"score": 0.9}, {"index": 2, "score": 0.6}]`)
		require.NoError(t, err)
		require.Len(t, judgments, 1)
		assert.Equal(t, 2, judgments[0].Index)
	})

	t.Run("garbage response", func(t *testing.T) {
		_, err := v.parse("total nonsense with no brackets")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}
