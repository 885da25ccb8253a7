package search

import (
	"github.com/soniakeys/unit"

	"github.com/xcscore/xcscore/internal/track"
)

// AllerRetour finds the out-and-return: one turnpoint tp1, paired with
// the furthest fix tp2 reachable without breaking the circuit's
// start/finish closure window, maximising 2*delta(tp1,tp2).
//
// initialBound is the full there-and-back target; it is halved
// internally to bound the single leg, and the returned bound is
// doubled back up before returning — callers must not halve or double
// around this call themselves, only chain the returned value straight
// into the next search step, mirroring track_frcfd_aller_retour's own
// halve-on-entry/double-on-exit contract.
func AllerRetour(t *track.Track, initialBound unit.Angle) (unit.Angle, [4]int) {
	n := t.N()
	mon := newMonitor(initialBound/2, 4)
	if n >= 2 {
		parallelRange(0, n-2, func(tp1 int) {
			start := t.BestStart[tp1]
			finish := t.LastFinish[start]
			if finish < 0 {
				return
			}
			local := mon.snapshot()
			tp2, d := t.FurthestFrom(tp1, tp1+1, finish+1, local)
			if tp2 >= 0 {
				mon.tryImprove(d, []int{start, tp1, tp2, finish})
			}
		})
	}
	half, idx := mon.result()
	var out [4]int
	copy(out[:], idx)
	return 2 * half, out
}

// TriangleFAI finds the three-turnpoint closed circuit (tp1,tp2,tp3)
// maximising perimeter subject to the FAI rule: every leg at least 28%
// of the perimeter. Single-pass and not parallelized — legbound
// mutates as the scan improves on its own previous result, so the
// outer tp1 loop is order-dependent and cannot safely be restarted or
// run out of order, exactly as the original source's (unpragma'd)
// function.
func TriangleFAI(t *track.Track, bound unit.Angle) (unit.Angle, [5]int) {
	indices := [5]int{-1, -1, -1, -1, -1}
	n := t.N()
	legBound := unit.Angle(0.28) * bound
	for tp1 := 0; tp1 < n-2; tp1++ {
		start := t.BestStart[tp1]
		finish := t.LastFinish[start]
		if finish < 0 {
			continue
		}
		tp3First := t.FirstAtLeast(tp1, tp1+2, finish+1, legBound)
		if tp3First < 0 {
			continue
		}
		tp3Last := t.LastAtLeast(tp1, tp3First, finish+1, legBound)
		if tp3Last < 0 {
			continue
		}
		for tp3 := tp3Last; tp3 >= tp3First; {
			leg3 := t.Delta(tp3, tp1)
			if leg3 < legBound {
				tp3 = t.FastBackward(tp3, legBound-leg3)
				continue
			}
			shortest := unit.Angle(0.28/0.44) * leg3
			tp2First := t.FirstAtLeast(tp1, tp1+1, tp3-1, shortest)
			if tp2First < 0 {
				tp3--
				continue
			}
			tp2Last := t.LastAtLeast(tp3, tp2First, tp3, shortest)
			if tp2Last < 0 {
				tp3--
				continue
			}
			longest := unit.Angle(0.44/0.28) * leg3
			for tp2 := tp2First; tp2 <= tp2Last; {
				var d unit.Angle
				leg1 := t.Delta(tp1, tp2)
				if leg1 < shortest {
					d = shortest - leg1
				}
				if leg1 > longest && leg1-longest > d {
					d = leg1 - longest
				}
				leg2 := t.Delta(tp2, tp3)
				if leg2 < shortest && shortest-leg2 > d {
					d = shortest - leg2
				}
				if leg2 > longest && leg2-longest > d {
					d = leg2 - longest
				}
				if d > 0 {
					tp2 = t.FastForward(tp2, d)
					continue
				}

				total := leg1 + leg2 + leg3
				thisLegBound := unit.Angle(0.28) * total
				d = 0
				if leg1 < thisLegBound {
					d = thisLegBound - leg1
				}
				if leg2 < thisLegBound && thisLegBound-leg2 > d {
					d = thisLegBound - leg2
				}
				if leg3 < thisLegBound && thisLegBound-leg3 > d {
					d = thisLegBound - leg3
				}
				if d > 0 {
					tp2 = t.FastForward(tp2, d/2)
					continue
				}

				if total < bound {
					tp2 = t.FastForward(tp2, (bound-total)/2)
					continue
				}

				bound = total
				legBound = thisLegBound
				indices = [5]int{start, tp1, tp2, tp3, finish}
				tp2++
			}
			tp3--
		}
	}
	return bound, indices
}

// TrianglePlat finds the three-turnpoint closed circuit maximising
// perimeter subject to the flat-triangle rule: no minimum-leg-share
// constraint, just the circuit's closure window. tp1 walks forward with
// an early exit once the remaining track can no longer beat bound.
func TrianglePlat(t *track.Track, bound unit.Angle) (unit.Angle, [5]int) {
	indices := [5]int{-1, -1, -1, -1, -1}
	n := t.N()
	for tp1 := 0; tp1 < n-1; tp1++ {
		if t.SigmaDelta[n-1]-t.SigmaDelta[tp1] < bound {
			break
		}
		start := t.BestStart[tp1]
		finish := t.LastFinish[start]
		if finish < 0 || t.SigmaDelta[finish]-t.SigmaDelta[tp1] < bound {
			continue
		}
		for tp3 := finish; tp3 > tp1+1; tp3-- {
			leg31 := t.Delta(tp3, tp1)
			bound123 := bound - leg31
			tp2, legs123 := t.FurthestFrom2(tp1, tp3, tp1+1, tp3, bound123)
			if tp2 >= 0 {
				bound = leg31 + legs123
				indices = [5]int{start, tp1, tp2, tp3, finish}
			}
		}
	}
	return bound, indices
}

// CircuitDistance computes the closed-circuit perimeter from a chain of
// indices as produced by AllerRetour/TriangleFAI/TrianglePlat: the
// start and finish slots (indices[0] and indices[len-1]) bound the
// closure window but are not part of the scored perimeter, which runs
// indices[1]..indices[len-2] and closes from the last turnpoint back to
// the first.
func CircuitDistance(t *track.Track, indices []int) unit.Angle {
	n := len(indices)
	d := t.Delta(indices[n-2], indices[1])
	for i := 1; i < n-2; i++ {
		d += t.Delta(indices[i], indices[i+1])
	}
	return d
}
