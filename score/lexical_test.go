package score

import (
	"testing"

	"github.com/poiesic/policyrank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredFrom(texts ...string) []*core.ScoredCandidate {
	out := make([]*core.ScoredCandidate, 0, len(texts))
	for i, text := range texts {
		out = append(out, core.NewScoredCandidate(&core.Candidate{
			Title: text,
			Link:  "https://example.com/" + string(rune('a'+i)),
		}))
	}
	return out
}

func TestLexicalScoreAll(t *testing.T) {
	s := NewLexicalScorer()

	t.Run("scores normalized to unit interval with best hit at 1", func(t *testing.T) {
		candidates := scoredFrom(
			"上市公司减持股份管理办法全文",
			"减持新规市场解读",
			"完全无关的旅游攻略",
		)
		err := s.ScoreAll("减持 管理办法", candidates)
		require.NoError(t, err)

		best := 0.0
		for _, sc := range candidates {
			assert.GreaterOrEqual(t, sc.Lexical, 0.0)
			assert.LessOrEqual(t, sc.Lexical, 1.0)
			if sc.Lexical > best {
				best = sc.Lexical
			}
		}
		assert.InDelta(t, 1.0, best, 1e-9)
		assert.Greater(t, candidates[0].Lexical, candidates[2].Lexical)
	})

	t.Run("no corpus signal leaves zeros", func(t *testing.T) {
		candidates := scoredFrom("apples and oranges", "pears and plums")
		err := s.ScoreAll("量子物理", candidates)
		require.NoError(t, err)
		for _, sc := range candidates {
			assert.Zero(t, sc.Lexical)
		}
	})

	t.Run("empty query is a no-op", func(t *testing.T) {
		candidates := scoredFrom("some document")
		err := s.ScoreAll("", candidates)
		require.NoError(t, err)
		assert.Zero(t, candidates[0].Lexical)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		assert.NoError(t, s.ScoreAll("query", nil))
	})
}
