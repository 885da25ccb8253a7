// Package league implements the per-league optimization pipelines:
// deterministic sequences of open-distance and circuit searches, each
// consuming and tightening a shared running bound, that assemble the
// named, scored Routes a flight is judged on.
package league

import (
	"github.com/soniakeys/unit"
	"golang.org/x/exp/slices"

	"github.com/xcscore/xcscore/internal/search"
	"github.com/xcscore/xcscore/internal/track"
)

// EarthRadiusKm is the single fixed Earth radius used to convert
// angular distances to kilometres, matching the original source's
// assumption of a spherical Earth with R=6371km.
const EarthRadiusKm = 6371.0

// League is a tagged variant over the three recognized scoring bodies.
// Each has its own closure radius, pipeline and route-naming scheme.
type League int

const (
	FFVL League = iota
	UKNational
	UKXCL
)

// String returns the league's wire/config name.
func (l League) String() string {
	switch l {
	case FFVL:
		return "frcfd"
	case UKNational:
		return "uknxcl"
	case UKXCL:
		return "ukxcl"
	default:
		return "unknown"
	}
}

// Declaration is an optional task declaration (IGC C records), accepted
// by Optimize to mirror the core API's optimize(league, complexity,
// declaration?) signature. No league pipeline here consults it —
// turnpoint-cylinder matching against a declared task would use
// track.Track's FirstInside/FirstOutside, but no route type in any of
// the three leagues currently needs it, so it is accepted and ignored.
type Declaration struct {
	Waypoints []track.Wpt
}

// Point is one named vertex of a Route's polyline.
type Point struct {
	Index int
	Name  string
	Fix   track.Trkpt
}

// Route is one candidate scored route within a Result.
type Route struct {
	League     string
	Type       string // "open0", "open1", "open2", "open3", "aller_retour", "triangle_fai", "triangle_plat"
	Circuit    bool
	Distance   float64 // km, unscored
	Multiplier float64
	Scored     float64 // Distance * Multiplier
	Points     []Point
}

// Result is the full set of routes a league's pipeline produced for one
// Track, in pipeline order.
type Result struct {
	League string
	Routes []Route
}

func kmToAngle(km float64) unit.Angle { return unit.Angle(km / EarthRadiusKm) }
func angleToKm(a unit.Angle) float64  { return float64(a) * EarthRadiusKm }

func runs(complexity, gate int) bool { return complexity < 0 || complexity >= gate }

var ffvlNames = map[int][]string{
	2: {"BD", "BA"},
	3: {"BD", "B1", "BA"},
	4: {"BD", "B1", "B2", "BA"},
	5: {"BD", "B1", "B2", "B3", "BA"},
}

var ukNames = map[int][]string{
	2: {"Start", "Finish"},
	3: {"Start", "TP1", "Finish"},
	4: {"Start", "TP1", "TP2", "Finish"},
	5: {"Start", "TP1", "TP2", "TP3", "Finish"},
}

func points(t *track.Track, names []string, indices []int) []Point {
	pts := make([]Point, len(indices))
	for i, idx := range indices {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		pts[i] = Point{Index: idx, Name: name, Fix: t.Fixes[idx]}
	}
	return pts
}

func route(league, typ string, circuit bool, multiplier float64, dist unit.Angle, names []string, indices []int, t *track.Track) Route {
	km := angleToKm(dist)
	return Route{
		League:     league,
		Type:       typ,
		Circuit:    circuit,
		Distance:   km,
		Multiplier: multiplier,
		Scored:     km * multiplier,
		Points:     points(t, names, indices),
	}
}

// Optimize runs the given league's pipeline against a preprocessed
// Track, up to the gate named by complexity (-1 runs every step the
// league defines), and returns the routes found. decl is accepted for
// signature parity and not otherwise used; see Declaration.
func Optimize(t *track.Track, lg League, complexity int, decl *Declaration) *Result {
	switch lg {
	case UKNational:
		return optimizeUKNational(t, complexity)
	case UKXCL:
		return optimizeUKXCL(t, complexity)
	default:
		return optimizeFFVL(t, complexity)
	}
}

func optimizeFFVL(t *track.Track, complexity int) *Result {
	res := &Result{League: FFVL.String()}
	var bound unit.Angle

	bound, idx0 := search.OpenDistance0(t, bound)
	if idx0[0] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open0", false, 1.0, bound, ffvlNames[2], idx0[:], t))
	}
	if !runs(complexity, 1) {
		return res
	}
	var idx1 [3]int
	bound, idx1 = search.OpenDistance1(t, bound)
	if idx1[1] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open1", false, 1.0, bound, ffvlNames[3], idx1[:], t))
	}
	if !runs(complexity, 2) {
		return res
	}
	var idx2 [4]int
	bound, idx2 = search.OpenDistance2(t, bound)
	if idx2[1] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open2", false, 1.0, bound, ffvlNames[4], idx2[:], t))
	}

	t.ComputeCircuitTables(kmToAngle(3))

	// The out-and-return search always starts from its own 15km floor,
	// discarding whatever bound the open-distance chain reached — it is
	// an independent search, not a tightening of the open-distance
	// result, exactly as the original driver has it.
	var arIdx [4]int
	bound, arIdx = search.AllerRetour(t, kmToAngle(15))
	if arIdx[1] >= 0 {
		dist := search.CircuitDistance(t, arIdx[:])
		res.Routes = append(res.Routes, route(res.League, "aller_retour", true, 1.2, dist, ffvlNames[4], arIdx[:], t))
	}
	if !runs(complexity, 3) {
		return res
	}
	var faiIdx [5]int
	bound, faiIdx = search.TriangleFAI(t, bound)
	if faiIdx[1] >= 0 {
		dist := search.CircuitDistance(t, faiIdx[:])
		res.Routes = append(res.Routes, route(res.League, "triangle_fai", true, 1.4, dist, ffvlNames[5], faiIdx[:], t))
	}
	var platIdx [5]int
	bound, platIdx = search.TrianglePlat(t, bound)
	if platIdx[1] >= 0 {
		dist := search.CircuitDistance(t, platIdx[:])
		res.Routes = append(res.Routes, route(res.League, "triangle_plat", true, 1.2, dist, ffvlNames[5], platIdx[:], t))
	}

	return res
}

func optimizeUKNational(t *track.Track, complexity int) *Result {
	res := &Result{League: UKNational.String()}
	var bound unit.Angle

	bound, idx0 := search.OpenDistance0(t, bound)
	if idx0[0] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open0", false, 1.0, bound, ukNames[2], idx0[:], t))
	}
	if !runs(complexity, 1) {
		return res
	}
	var idx1 [3]int
	bound, idx1 = search.OpenDistance1(t, bound)
	if idx1[1] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open1", false, 1.0, bound, ukNames[3], idx1[:], t))
	}
	if !runs(complexity, 2) {
		return res
	}
	var idx2 [4]int
	bound, idx2 = search.OpenDistance2(t, bound)
	if idx2[1] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open2", false, 1.0, bound, ukNames[4], idx2[:], t))
	}

	t.ComputeCircuitTables(kmToAngle(0.4))

	var arIdx [4]int
	bound, arIdx = search.AllerRetour(t, kmToAngle(15))
	if arIdx[1] >= 0 {
		dist := search.CircuitDistance(t, arIdx[:])
		res.Routes = append(res.Routes, route(res.League, "aller_retour", true, 2.0, dist, ukNames[4], arIdx[:], t))
	}
	if !runs(complexity, 3) {
		return res
	}
	var faiIdx [5]int
	bound, faiIdx = search.TriangleFAI(t, bound)
	if faiIdx[1] >= 0 {
		dist := search.CircuitDistance(t, faiIdx[:])
		res.Routes = append(res.Routes, route(res.League, "triangle_fai", true, 2.5, dist, ukNames[5], faiIdx[:], t))
	}
	var platIdx [5]int
	bound, platIdx = search.TrianglePlat(t, bound)
	if platIdx[1] >= 0 {
		dist := search.CircuitDistance(t, platIdx[:])
		res.Routes = append(res.Routes, route(res.League, "triangle_plat", true, 2.0, dist, ukNames[5], platIdx[:], t))
	}

	return res
}

func optimizeUKXCL(t *track.Track, complexity int) *Result {
	res := &Result{League: UKXCL.String()}

	bound, idx0 := search.OpenDistance0(t, kmToAngle(10))
	if idx0[0] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open0", false, 1.0, bound, ukNames[2], idx0[:], t))
	}
	if !runs(complexity, 3) {
		return res
	}
	if floor := kmToAngle(15); bound < floor {
		bound = floor
	}
	if b, idx := search.OpenDistance3(t, bound); idx[1] >= 0 {
		res.Routes = append(res.Routes, route(res.League, "open3", false, 1.0, b, ukNames[5], idx[:], t))
	}

	return res
}

// SortByScore orders Routes within a Result by descending scored
// distance, for deterministic output when more than one route ties on
// pipeline order but not on score.
func SortByScore(res *Result) {
	slices.SortFunc(res.Routes, func(a, b Route) int {
		switch {
		case a.Scored > b.Scored:
			return -1
		case a.Scored < b.Scored:
			return 1
		default:
			return 0
		}
	})
}
