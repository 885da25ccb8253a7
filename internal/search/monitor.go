// Package search implements the open-distance and circuit search
// algorithms: the combinations of up to five track-fix indices that
// maximize summed or closed great-circle distance, per spec.md §4.5 and
// §4.6. Every search takes and returns a running bound so callers can
// chain searches, each starting from the previous one's tightened
// lower bound.
package search

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/soniakeys/unit"
	"golang.org/x/sync/errgroup"
)

// monitor is the shared (bound, indices) pair spec.md §5 describes:
// reader goroutines snapshot Bound under the lock when they need an
// accurate value for a skip decision, writers take the lock to
// test-and-improve. A reader that acts on a stale Bound only repeats
// work it would otherwise have skipped — Bound is monotone
// non-decreasing and every skip primitive stays correct under a
// smaller-than-actual bound, so staleness costs time, never
// correctness.
type monitor struct {
	mu      sync.Mutex
	bound   unit.Angle
	indices []int
}

func newMonitor(bound unit.Angle, width int) *monitor {
	idx := make([]int, width)
	for i := range idx {
		idx[i] = -1
	}
	return &monitor{bound: bound, indices: idx}
}

func (m *monitor) snapshot() unit.Angle {
	m.mu.Lock()
	b := m.bound
	m.mu.Unlock()
	return b
}

// tryImprove installs candidate and its indices if candidate still
// beats the bound under the lock (another worker may have improved it
// since the caller last read it). Returns the bound in effect after
// the call, which the caller should use for its next skip decision.
func (m *monitor) tryImprove(candidate unit.Angle, indices []int) unit.Angle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if candidate > m.bound {
		m.bound = candidate
		copy(m.indices, indices)
	}
	return m.bound
}

func (m *monitor) result() (unit.Angle, []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.indices))
	copy(out, m.indices)
	return m.bound, out
}

// parallelRange runs work(i) for every i in [begin,end) across a
// work-sharing pool sized to GOMAXPROCS, with dynamic scheduling: each
// worker pulls the next unclaimed index from a shared atomic counter
// rather than being assigned a fixed slice up front, because the
// per-tp1 workload here is wildly uneven (inner-loop skip depth grows
// with how tight the running bound already is).
func parallelRange(begin, end int, work func(i int)) {
	if begin >= end {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if n := end - begin; workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var next int64 = int64(begin)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(atomic.AddInt64(&next, 1)) - 1
				if i >= end {
					return nil
				}
				work(i)
			}
		})
	}
	_ = g.Wait()
}
