package track

import (
	"math"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcscore/xcscore/internal/geo"
)

func sampleTrack(t *testing.T, n int) *Track {
	t.Helper()
	fixes := make([]Trkpt, 0, n)
	for i := 0; i < n; i++ {
		fixes = append(fixes, fixAt(int64(i), 45+math.Sin(float64(i)*0.37)*0.1, 6+math.Cos(float64(i)*0.23)*0.1))
	}
	tr := New(fixes, nil, nil)
	require.NoError(t, tr.Preprocess())
	return tr
}

func TestFurthestFromMatchesBruteForce(t *testing.T) {
	tr := sampleTrack(t, 60)
	for i := 0; i < tr.N(); i += 7 {
		wantIdx, wantDist := bruteFurthest(tr, i, i+1, tr.N())
		gotIdx, gotDist := tr.FurthestFrom(i, i+1, tr.N(), 0)
		if wantIdx == -1 {
			assert.Equal(t, -1, gotIdx)
			continue
		}
		assert.InDelta(t, float64(wantDist), float64(gotDist), 1e-9)
		assert.InDelta(t, float64(tr.Delta(i, wantIdx)), float64(tr.Delta(i, gotIdx)), 1e-9)
	}
}

func TestNearestToMatchesBruteForce(t *testing.T) {
	tr := sampleTrack(t, 40)
	bruteNearest := func(i, begin, end int) (int, unit.Angle) {
		idx, best := -1, unit.Angle(math.MaxFloat64)
		for j := begin; j < end; j++ {
			d := tr.Delta(i, j)
			if d < best {
				best = d
				idx = j
			}
		}
		return idx, best
	}
	for i := 1; i < tr.N()-1; i += 5 {
		wantIdx, wantDist := bruteNearest(i, 0, tr.N())
		gotIdx, gotDist := tr.NearestTo(i, 0, tr.N(), unit.Angle(math.MaxFloat64))
		assert.Equal(t, wantIdx, gotIdx)
		assert.InDelta(t, float64(wantDist), float64(gotDist), 1e-9)
	}
}

func TestFurthestFrom2MatchesBruteForce(t *testing.T) {
	tr := sampleTrack(t, 50)
	bruteFurthest2 := func(i, j, begin, end int) (int, unit.Angle) {
		idx, best := -1, unit.Angle(-1)
		for k := begin; k < end; k++ {
			d := tr.Delta(i, k) + tr.Delta(k, j)
			if d > best {
				best = d
				idx = k
			}
		}
		return idx, best
	}
	for i := 0; i < tr.N()-2; i += 5 {
		j := tr.N() - 1
		wantIdx, wantDist := bruteFurthest2(i, j, i+1, j)
		gotIdx, gotDist := tr.FurthestFrom2(i, j, i+1, j, 0)
		if wantIdx == -1 {
			assert.Equal(t, -1, gotIdx)
			continue
		}
		assert.Equal(t, wantIdx, gotIdx)
		assert.InDelta(t, float64(wantDist), float64(gotDist), 1e-9)
	}
}

func TestFastForwardAlwaysAdvances(t *testing.T) {
	tr := sampleTrack(t, 50)
	for i := 0; i < tr.N()-1; i++ {
		j := tr.FastForward(i, tr.MaxDelta*3)
		assert.GreaterOrEqual(t, j, i+1)
	}
}

func TestFirstAtLeastLastAtLeastBracket(t *testing.T) {
	tr := sampleTrack(t, 80)
	bound := tr.MaxDelta * 5
	first := tr.FirstAtLeast(0, 1, tr.N(), bound)
	last := tr.LastAtLeast(0, 1, tr.N(), bound)
	if first == -1 {
		assert.Equal(t, -1, last)
		return
	}
	require.NotEqual(t, -1, last)
	assert.LessOrEqual(t, first, last)
	assert.Greater(t, float64(tr.Delta(0, first)), float64(bound))
	assert.Greater(t, float64(tr.Delta(0, last)), float64(bound))
	// No fix before first or after last exceeds bound: the skip steps
	// cannot have jumped over a qualifying one.
	for j := 1; j < first; j++ {
		assert.LessOrEqual(t, float64(tr.Delta(0, j)), float64(bound))
	}
	for j := last + 1; j < tr.N(); j++ {
		assert.LessOrEqual(t, float64(tr.Delta(0, j)), float64(bound))
	}
}

func TestFirstInsideFirstOutside(t *testing.T) {
	tr := sampleTrack(t, 30)
	p := tr.Coord[0]
	radius := unit.Angle(0.01)

	insideIdx := tr.FirstInside(p, radius, 0, tr.N())
	if insideIdx >= 0 {
		assert.LessOrEqual(t, float64(geo.Delta(p, tr.Coord[insideIdx])), float64(radius))
	}
	outsideIdx := tr.FirstOutside(p, radius, 0, tr.N())
	if outsideIdx >= 0 {
		assert.Greater(t, float64(geo.Delta(p, tr.Coord[outsideIdx])), float64(radius))
	}
}
