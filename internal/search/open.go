package search

import (
	"github.com/soniakeys/unit"

	"github.com/xcscore/xcscore/internal/track"
)

// OpenDistance0 finds the two fixes (start, finish), start<finish,
// maximising delta(start,finish), subject to an initial lower bound.
// Returns the improved bound and the two indices (-1,-1 if nothing
// beat the initial bound).
//
// The outer loop takes whatever FurthestFrom returns for each start as
// the new best, even though FurthestFrom already enforces the bound
// internally — spec.md §9 notes this is semantically a no-op, not a
// bug, and is kept exactly as the original source has it.
func OpenDistance0(t *track.Track, bound unit.Angle) (unit.Angle, [2]int) {
	indices := [2]int{-1, -1}
	n := t.N()
	for start := 0; start < n-1; start++ {
		finish, d := t.FurthestFrom(start, start+1, n, bound)
		if finish != -1 {
			indices[0] = start
			indices[1] = finish
			bound = d
		}
	}
	return bound, indices
}

// OpenDistance1 finds the chain (before(tp1), tp1, after(tp1))
// maximising the summed legs, for tp1 ranging over the track interior.
func OpenDistance1(t *track.Track, bound unit.Angle) (unit.Angle, [3]int) {
	indices := [3]int{-1, -1, -1}
	n := t.N()
	for tp1 := 1; tp1 < n-1; {
		total := t.Before[tp1].Distance + t.After[tp1].Distance
		if total > bound {
			indices[0] = t.Before[tp1].Index
			indices[1] = tp1
			indices[2] = t.After[tp1].Index
			bound = total
			tp1++
		} else {
			tp1 = t.FastForward(tp1, (bound-total)/2)
		}
	}
	return bound, indices
}

// OpenDistance2 finds the chain (before(tp1), tp1, tp2, after(tp2))
// maximising the summed legs. The outer tp1 loop is parallelized with
// dynamic scheduling over a shared monitor, since the inner loop's skip
// depth (and so its running time) varies enormously with tp1.
func OpenDistance2(t *track.Track, bound unit.Angle) (unit.Angle, [4]int) {
	n := t.N()
	mon := newMonitor(bound, 4)
	if n >= 3 {
		parallelRange(1, n-2, func(tp1 int) {
			leg1 := t.Before[tp1].Distance
			for tp2 := tp1 + 1; tp2 < n-1; {
				candidate := leg1 + t.Delta(tp1, tp2) + t.After[tp2].Distance
				current := mon.tryImprove(candidate, []int{t.Before[tp1].Index, tp1, tp2, t.After[tp2].Index})
				if current == candidate {
					tp2++
				} else {
					tp2 = t.FastForward(tp2, (current-candidate)/2)
				}
			}
		})
	}
	finalBound, idx := mon.result()
	var out [4]int
	copy(out[:], idx)
	return finalBound, out
}

// OpenDistance3 finds the chain (before(tp1), tp1, tp2, tp3, after(tp3))
// maximising the summed legs, with the outer tp1 loop parallelized the
// same way as OpenDistance2.
func OpenDistance3(t *track.Track, bound unit.Angle) (unit.Angle, [5]int) {
	n := t.N()
	mon := newMonitor(bound, 5)
	if n >= 4 {
		parallelRange(1, n-3, func(tp1 int) {
			leg1 := t.Before[tp1].Distance
			for tp2 := tp1 + 1; tp2 < n-2; tp2++ {
				leg2 := t.Delta(tp1, tp2)
				for tp3 := tp2 + 1; tp3 < n-1; {
					candidate := leg1 + leg2 + t.Delta(tp2, tp3) + t.After[tp3].Distance
					current := mon.tryImprove(candidate, []int{t.Before[tp1].Index, tp1, tp2, tp3, t.After[tp3].Index})
					if current == candidate {
						tp3++
					} else {
						tp3 = t.FastForward(tp3, (current-candidate)/2)
					}
				}
			}
		})
	}
	finalBound, idx := mon.result()
	var out [5]int
	copy(out[:], idx)
	return finalBound, out
}
