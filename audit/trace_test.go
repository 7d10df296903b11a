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


package audit

import (
	"testing"
	"time"

	"github.com/poiesic/policyrank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCapturesRankingCall(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	rec := NewRecorderWithClock(func() time.Time { return now })

	rec.Start("证券发行注册管理办法", 12)

	funnel := make([]*core.ScoredCandidate, 5)
	for i := range funnel {
		funnel[i] = core.NewScoredCandidate(&core.Candidate{Link: "https://example.com/a"})
	}
	rec.AfterFunnel(funnel)

	vetoed := core.NewScoredCandidate(&core.Candidate{Link: "https://spam.example.com/login"})
	rec.Vetoed(vetoed)

	backfilled := core.NewScoredCandidate(&core.Candidate{Link: "https://weak.example.com/page"})
	rec.Backfilled(backfilled)

	rec.Finish([]*core.RankedCandidate{
		{
			Candidate: core.Candidate{Title: "管理办法", Link: "https://www.csrc.gov.cn/law/1.pdf"},
			Scores:    core.ScoreBreakdown{Final: 0.8},
		},
		{
			Candidate: core.Candidate{Title: "弱结果", Link: "https://weak.example.com/page"},
			Scores:    core.ScoreBreakdown{Final: 0.04},
			Note:      core.BackfillNote,
		},
	})

	trace := rec.Trace()
	assert.Equal(t, "证券发行注册管理办法", trace.Query)
	assert.Equal(t, now, trace.Timestamp)
	assert.Equal(t, 12, trace.Candidates)
	assert.Equal(t, 5, trace.Funneled)
	assert.Equal(t, []string{"https://spam.example.com/login"}, trace.Vetoed)
	assert.Equal(t, []string{"https://weak.example.com/page"}, trace.Backfilled)

	require.Len(t, trace.Results, 2)
	assert.Equal(t, "https://www.csrc.gov.cn/law/1.pdf", trace.Results[0].Link)
	assert.Equal(t, core.BackfillNote, trace.Results[1].Note)
}

func TestRecorderStartResetsState(t *testing.T) {
	rec := NewRecorder()

	rec.Start("first", 3)
	rec.Vetoed(core.NewScoredCandidate(&core.Candidate{Link: "https://x.example.com/1"}))

	rec.Start("second", 1)
	trace := rec.Trace()
	assert.Equal(t, "second", trace.Query)
	assert.Empty(t, trace.Vetoed)
}
