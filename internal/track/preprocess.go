package track

import (
	"math"
	"runtime"

	"github.com/soniakeys/unit"
	"golang.org/x/sync/errgroup"

	"github.com/xcscore/xcscore/internal/geo"
)

// degPerUnit converts the IGC wire format (signed integer 1/60000 of a
// degree) to radians: rad = pi * units / (180 * 60000).
const degPerUnit = math.Pi / (180 * 60000)

// Preprocess derives Coord, SigmaDelta, MaxDelta, Before and After from
// Fixes. It is idempotent: calling it twice recomputes the same derived
// arrays (up to floating point summation order, which this
// implementation keeps fixed regardless of GOMAXPROCS so results are
// bit-for-bit reproducible).
//
// Order of operations, matching the teacher's worker-pool idiom in
// digest2 and the original C source's omp sections: (1) Coord is
// computed in parallel, fully independent per fix; (2) SigmaDelta and
// MaxDelta are then computed sequentially, since each step depends on
// the previous; (3) Before and After are computed concurrently with
// each other, since they are independent forward recurrences.
func (t *Track) Preprocess() error {
	n := t.N()
	t.Coord = make([]geo.Point, n)
	if n > 0 {
		if err := t.convertCoords(); err != nil {
			return err
		}
		t.accumulateArcLength()
	}
	if n > 1 {
		g := new(errgroup.Group)
		g.Go(t.computeBefore)
		g.Go(t.computeAfter)
		if err := g.Wait(); err != nil {
			return err
		}
	} else if n == 1 {
		t.Before = []Limit{{0, 0}}
		t.After = []Limit{{0, 0}}
	}
	return nil
}

// convertCoords fans the per-fix lat/lon -> trig conversion out across a
// work-sharing pool of goroutines, one chunk per available core. The
// conversion is embarrassingly parallel: each fix's Coord depends only
// on that fix's own Fixes entry.
func (t *Track) convertCoords() error {
	n := t.N()
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		begin := w * chunk
		end := begin + chunk
		if end > n {
			end = n
		}
		if begin >= end {
			continue
		}
		g.Go(func() error {
			for i := begin; i < end; i++ {
				lat := degPerUnit * float64(t.Fixes[i].Lat)
				lon := degPerUnit * float64(t.Fixes[i].Lon)
				t.Coord[i] = geo.FromRad(lat, lon)
			}
			return nil
		})
	}
	return g.Wait()
}

// accumulateArcLength computes the cumulative polyline arc-length and
// the maximum adjacent-fix step. Strictly sequential: SigmaDelta[i]
// depends on SigmaDelta[i-1].
func (t *Track) accumulateArcLength() {
	n := t.N()
	t.SigmaDelta = make([]unit.Angle, n)
	t.SigmaDelta[0] = 0
	var maxDelta unit.Angle
	for i := 1; i < n; i++ {
		d := t.Delta(i-1, i)
		t.SigmaDelta[i] = t.SigmaDelta[i-1] + d
		if d > maxDelta {
			maxDelta = d
		}
	}
	t.MaxDelta = maxDelta
}

// computeBefore fills Before[i] = (index, distance) of the fix in [0,i]
// furthest from i, using Before[i-1].Distance-MaxDelta as a seed lower
// bound: the fix furthest from i-1 lies in [0,i) and is at most
// MaxDelta closer to i than to i-1, so that seed can never overshoot
// the true value.
func (t *Track) computeBefore() error {
	n := t.N()
	t.Before = make([]Limit, n)
	t.Before[0] = Limit{0, 0}
	for i := 1; i < n; i++ {
		seed := t.Before[i-1].Distance - t.MaxDelta
		idx, d := t.FurthestFrom(i, 0, i, seed)
		t.Before[i] = Limit{idx, d}
	}
	return nil
}

// computeAfter fills After[i] = (index, distance) of the fix in [i,n)
// furthest from i. Also a forward loop (i increasing), seeded from
// After[i-1].Distance-MaxDelta: After[i-1] was computed over the
// superset range [i,n), so its optimum is either still in After[i]'s
// range [i+1,n) or was the now-excluded point i itself, which can be at
// most MaxDelta closer to i-1 than to i.
func (t *Track) computeAfter() error {
	n := t.N()
	t.After = make([]Limit, n)
	if n == 1 {
		t.After[0] = Limit{0, 0}
		return nil
	}
	idx0, d0 := t.FurthestFrom(0, 1, n, 0)
	t.After[0] = Limit{idx0, d0}
	for i := 1; i < n-1; i++ {
		seed := t.After[i-1].Distance - t.MaxDelta
		idx, d := t.FurthestFrom(i, i+1, n, seed)
		t.After[i] = Limit{idx, d}
	}
	t.After[n-1] = Limit{n - 1, 0}
	return nil
}
