// Package resultio renders a league.Result as text or KML, and encodes
// it to/from a compact binary form for the route cache.
package resultio

import (
	"fmt"
	"io"

	"github.com/xcscore/xcscore/internal/league"
)

// WriteText writes one line per route: league, route type, distance,
// multiplier, scored distance and the named waypoint chain.
func WriteText(w io.Writer, res *league.Result) error {
	for _, r := range res.Routes {
		names := make([]string, len(r.Points))
		for i, p := range r.Points {
			names[i] = p.Name
		}
		_, err := fmt.Fprintf(w, "%s\t%s\t%.3fkm\tx%.1f\t%.3fkm\t%v\n",
			res.League, r.Type, r.Distance, r.Multiplier, r.Scored, names)
		if err != nil {
			return err
		}
	}
	return nil
}
