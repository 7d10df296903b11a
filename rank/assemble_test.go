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
	"testing"

	"github.com/poiesic/policyrank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMonitor captures veto and backfill callbacks.
type recordingMonitor struct {
	noopMonitor
	vetoed     []*core.ScoredCandidate
	backfilled []*core.ScoredCandidate
}

func (m *recordingMonitor) Vetoed(sc *core.ScoredCandidate)     { m.vetoed = append(m.vetoed, sc) }
func (m *recordingMonitor) Backfilled(sc *core.ScoredCandidate) { m.backfilled = append(m.backfilled, sc) }

func scoredLink(link string, final float64) *core.ScoredCandidate {
	sc := core.NewScoredCandidate(&core.Candidate{Link: link})
	sc.Authority = 0.5
	sc.Final = final
	return sc
}

func TestVetoedNoiseWithoutReprieve(t *testing.T) {
	cfg := DefaultConfig()

	noise := scoredLink("https://spam.example.com/login", 0.4)
	noise.Authority = 0
	assert.True(t, vetoed(cfg, noise))

	// A strong format hint is a reprieve.
	pdf := scoredLink("https://spam.example.com/doc.pdf", 0.4)
	pdf.Authority = 0
	pdf.FormatBonus = 0.2
	assert.False(t, vetoed(cfg, pdf))

	// So is an ORIGINAL verdict from the verifier.
	original := scoredLink("https://spam.example.com/notice", 0.4)
	original.Authority = 0
	original.VerifierLabel = core.LabelOriginal
	assert.False(t, vetoed(cfg, original))

	// Anything under the absolute floor is dropped regardless.
	weak := scoredLink("https://ok.example.com/page", 0.01)
	assert.True(t, vetoed(cfg, weak))
}

func TestAssembleSortsDescending(t *testing.T) {
	survivors := []*core.ScoredCandidate{
		scoredLink("https://a.example.com/1", 0.3),
		scoredLink("https://b.example.com/2", 0.9),
		scoredLink("https://c.example.com/3", 0.6),
		scoredLink("https://d.example.com/4", 0.5),
		scoredLink("https://e.example.com/5", 0.7),
	}

	results := assemble(DefaultConfig(), survivors, survivors, &noopMonitor{})
	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Scores.Final, results[i].Scores.Final)
	}
	assert.Equal(t, "https://b.example.com/2", results[0].Link)
}

func TestAssembleDeduplicatesByLink(t *testing.T) {
	a := scoredLink("https://dup.example.com/doc", 0.9)
	b := scoredLink("https://dup.example.com/doc", 0.6)
	c := scoredLink("https://other.example.com/doc", 0.5)

	results := assemble(DefaultConfig(), []*core.ScoredCandidate{a, b, c},
		[]*core.ScoredCandidate{a, b, c}, &noopMonitor{})

	links := make(map[string]int)
	for _, r := range results {
		links[r.Link]++
	}
	assert.Equal(t, 1, links["https://dup.example.com/doc"])
}

func TestAssembleBackfillsToMinimum(t *testing.T) {
	// Two solid survivors, plus a pool with weaker extras.
	strong := scoredLink("https://a.gov.cn/law", 0.8)
	good := scoredLink("https://b.gov.cn/rule", 0.7)

	pool := []*core.ScoredCandidate{strong, good}
	for i := 0; i < 4; i++ {
		weak := scoredLink(fmt.Sprintf("https://weak.example.com/%d", i), 0.02+float64(i)*0.001)
		pool = append(pool, weak)
	}

	monitor := &recordingMonitor{}
	results := assemble(DefaultConfig(), pool, []*core.ScoredCandidate{strong, good}, monitor)

	require.Len(t, results, 5)
	assert.Len(t, monitor.backfilled, 3)

	notes := 0
	for _, r := range results {
		if r.Note == core.BackfillNote {
			notes++
		}
	}
	assert.Equal(t, 3, notes)

	// Confident results outrank backfilled ones here.
	assert.Empty(t, results[0].Note)
	assert.Empty(t, results[1].Note)
}

func TestAssembleAllVetoedStillBackfills(t *testing.T) {
	// Every candidate fails the floor; the minimum guarantee still holds.
	pool := make([]*core.ScoredCandidate, 6)
	for i := range pool {
		pool[i] = scoredLink(fmt.Sprintf("https://low.example.com/%d", i), 0.01)
	}

	monitor := &recordingMonitor{}
	results := assemble(DefaultConfig(), pool, pool, monitor)

	require.Len(t, results, 5)
	assert.Len(t, monitor.vetoed, 6)
	for _, r := range results {
		assert.Equal(t, core.BackfillNote, r.Note)
	}
}

func TestAssembleSmallPoolReturnsWhatExists(t *testing.T) {
	pool := []*core.ScoredCandidate{
		scoredLink("https://only.example.com/1", 0.01),
		scoredLink("https://only.example.com/2", 0.01),
	}

	results := assemble(DefaultConfig(), pool, pool, &noopMonitor{})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, core.BackfillNote, r.Note)
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	results := assemble(DefaultConfig(), nil, nil, &noopMonitor{})
	assert.Empty(t, results)
}
