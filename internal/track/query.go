package track

import (
	"github.com/soniakeys/unit"

	"github.com/xcscore/xcscore/internal/geo"
)

// Forward returns the next index to probe when the current shortfall
// against a target is delta: step at least one index, or further if
// MaxDelta bounds how many steps delta could possibly span.
func (t *Track) Forward(i int, delta unit.Angle) int {
	if delta <= 0 {
		return i + 1
	}
	step := int(delta / t.MaxDelta)
	if step > 0 {
		return i + step
	}
	return i + 1
}

// Backward is the mirror of Forward, stepping toward index 0.
func (t *Track) Backward(i int, delta unit.Angle) int {
	if delta <= 0 {
		return i - 1
	}
	step := int(delta / t.MaxDelta)
	if step > 0 {
		return i - step
	}
	return i - 1
}

// FastForward advances i by repeatedly calling Forward until SigmaDelta
// has covered at least delta of arc-length, or the track runs out. This
// is the monotone-bound skip lemma: since |SigmaDelta[j+k]-SigmaDelta[j]|
// bounds how much any single-point distance can change over k steps, no
// index skipped over can possibly improve on the current bound.
func (t *Track) FastForward(i int, delta unit.Angle) int {
	n := t.N()
	target := t.SigmaDelta[i] + delta
	j := t.Forward(i, delta)
	for j < n {
		shortfall := target - t.SigmaDelta[j]
		if shortfall <= 0 {
			return j
		}
		j = t.Forward(j, shortfall)
	}
	return j
}

// FastBackward is the mirror of FastForward.
func (t *Track) FastBackward(i int, delta unit.Angle) int {
	target := t.SigmaDelta[i] - delta
	j := t.Backward(i, delta)
	for j >= 0 {
		shortfall := t.SigmaDelta[j] - target
		if shortfall <= 0 {
			return j
		}
		j = t.Backward(j, shortfall)
	}
	return j
}

// FurthestFrom finds the fix in [begin,end) furthest from i, provided
// it exceeds bound. Returns (-1, bound) if none does. Ties keep the
// first index reached, since later candidates only replace on a strict
// improvement.
func (t *Track) FurthestFrom(i, begin, end int, bound unit.Angle) (idx int, out unit.Angle) {
	idx = -1
	out = bound
	for j := begin; j < end; {
		d := t.Delta(i, j)
		if d > out {
			out = d
			idx = j
			j++
		} else {
			j = t.FastForward(j, out-d)
		}
	}
	return idx, out
}

// NearestTo finds the fix in [begin,end) nearest to i, provided it is
// strictly under bound. Returns (-1, bound) if none is.
func (t *Track) NearestTo(i, begin, end int, bound unit.Angle) (idx int, out unit.Angle) {
	idx = -1
	out = bound
	for j := begin; j < end; {
		d := t.Delta(i, j)
		if d < out {
			out = d
			idx = j
			j++
		} else {
			j = t.FastForward(j, d-out)
		}
	}
	return idx, out
}

// FurthestFrom2 finds the fix k in [begin,end) maximising
// delta(i,k)+delta(k,j), provided the sum exceeds bound. The skip step
// halves the shortfall because a single index step can change each of
// the two legs by at most MaxDelta, so the sum by at most 2*MaxDelta.
func (t *Track) FurthestFrom2(i, j, begin, end int, bound unit.Angle) (idx int, out unit.Angle) {
	idx = -1
	out = bound
	for k := begin; k < end; {
		d := t.Delta(i, k) + t.Delta(k, j)
		if d > out {
			out = d
			idx = k
			k++
		} else {
			k = t.FastForward(k, (out-d)/2)
		}
	}
	return idx, out
}

// FirstAtLeast returns the first index in [begin,end) whose distance
// from i strictly exceeds bound, or -1 if none does.
func (t *Track) FirstAtLeast(i, begin, end int, bound unit.Angle) int {
	for j := begin; j < end; {
		d := t.Delta(i, j)
		if d > bound {
			return j
		}
		j = t.FastForward(j, bound-d)
	}
	return -1
}

// LastAtLeast returns the last index in [begin,end) whose distance from
// i strictly exceeds bound, or -1 if none does.
func (t *Track) LastAtLeast(i, begin, end int, bound unit.Angle) int {
	for j := end - 1; j >= begin; {
		d := t.Delta(i, j)
		if d > bound {
			return j
		}
		j = t.FastBackward(j, bound-d)
	}
	return -1
}

// FirstInside returns the first index in [begin,end) within radius of
// an arbitrary point, or -1 if none is. Anchored at an arbitrary point
// rather than a track index, this is what a time-based turnpoint
// cylinder check against a declared task waypoint would use; the core
// does not call it today (see league.Declaration).
func (t *Track) FirstInside(p geo.Point, radius unit.Angle, begin, end int) int {
	for i := begin; i < end; {
		d := geo.Delta(p, t.Coord[i])
		if d <= radius {
			return i
		}
		i = t.Forward(i, d-radius)
	}
	return -1
}

// FirstOutside returns the first index in [begin,end) beyond radius of
// an arbitrary point, or -1 if none is.
func (t *Track) FirstOutside(p geo.Point, radius unit.Angle, begin, end int) int {
	for i := begin; i < end; {
		d := geo.Delta(p, t.Coord[i])
		if d > radius {
			return i
		}
		i = t.Forward(i, d-radius)
	}
	return -1
}
