package rank

import "github.com/poiesic/policyrank/core"

// Monitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate stages during a ranking
// call, e.g. for debugging score regressions or auditing decisions.
type Monitor interface {
	Start(query string, candidates int)
	AfterSignalScoring(scored []*core.ScoredCandidate)
	AfterFunnel(survivors []*core.ScoredCandidate)
	AfterVerification(survivors []*core.ScoredCandidate)
	Vetoed(sc *core.ScoredCandidate)
	Backfilled(sc *core.ScoredCandidate)
	Finish(results []*core.RankedCandidate)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)                         {}
func (n *noopMonitor) AfterSignalScoring(_ []*core.ScoredCandidate)  {}
func (n *noopMonitor) AfterFunnel(_ []*core.ScoredCandidate)         {}
func (n *noopMonitor) AfterVerification(_ []*core.ScoredCandidate)   {}
func (n *noopMonitor) Vetoed(_ *core.ScoredCandidate)                {}
func (n *noopMonitor) Backfilled(_ *core.ScoredCandidate)            {}
func (n *noopMonitor) Finish(_ []*core.RankedCandidate)              {}
