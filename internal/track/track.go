// Package track holds the precomputed flight-track data structures the
// optimizer searches over: per-fix trigonometric coordinates, cumulative
// arc-length, the before/after extremal-distance tables, and the
// closure-radius-parametrised circuit tables. See search for the
// algorithms that consume a Track, and league for the per-league
// pipelines that call them.
package track

import (
	"github.com/soniakeys/unit"

	"github.com/xcscore/xcscore/internal/geo"
)

// Trkpt is one raw GPS fix from the flight log. Lat/Lon are signed
// integers in units of 1/60000 of a degree, matching the IGC B-record
// wire format; Time is Unix seconds and must be monotone nondecreasing
// across a Track's Fixes.
type Trkpt struct {
	Time int64
	Lat  int32
	Lon  int32
	Val  byte // 'A' (valid 3D fix) or 'V' (valid 2D fix / estimated)
	Alt  int  // pressure altitude, metres
	Ele  int  // GNSS elevation, metres
}

// Wpt is a named waypoint, used for task declarations (IGC C records).
// Time may be zero when the declaration predates the flight.
type Wpt struct {
	Time int64
	Lat  int32
	Lon  int32
	Name string
	Ele  int
	Val  byte
}

// Limit records, for some fix i, the index and distance of the fix in a
// given direction (earlier or later) that is furthest from i.
type Limit struct {
	Index    int
	Distance unit.Angle
}

// Track owns the full preprocessed representation of one flight log. It
// is built once, preprocessed once, queried many times by the search
// package, and then dropped.
type Track struct {
	Fixes []Trkpt
	Coord []geo.Point // parallel to Fixes

	// SigmaDelta[i] is cumulative polyline arc-length up to fix i, in
	// radians. SigmaDelta[0] == 0.
	SigmaDelta []unit.Angle
	MaxDelta   unit.Angle // max adjacent-fix step, governs skip granularity

	Before []Limit // Before[i]: furthest fix in [0,i] from i
	After  []Limit // After[i]: furthest fix in [i,n) from i

	// Circuit tables, populated only after ComputeCircuitTables.
	LastFinish []int // LastFinish[i]: largest j>=i with delta(i,j) <= epsilon
	BestStart  []int // BestStart[i]: argmax_{s in [0,i]} LastFinish[s]
	epsilon    unit.Angle

	// Task declaration waypoints and the raw IGC bytes: owned by the
	// Track for completeness of the data model, irrelevant to scoring.
	Task []Wpt
	Raw  []byte
}

// New builds an (unpreprocessed) Track from a chronologically ordered
// sequence of fixes. Call Preprocess before running any search.
func New(fixes []Trkpt, task []Wpt, raw []byte) *Track {
	return &Track{Fixes: fixes, Task: task, Raw: raw}
}

// N is the number of fixes in the track.
func (t *Track) N() int { return len(t.Fixes) }

// Delta returns the great-circle angular distance between fixes i and j.
func (t *Track) Delta(i, j int) unit.Angle {
	return geo.Delta(t.Coord[i], t.Coord[j])
}
