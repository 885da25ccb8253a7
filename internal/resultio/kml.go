package resultio

import (
	"fmt"
	"io"

	"github.com/xcscore/xcscore/internal/league"
)

const kmlDegPerUnit = 1.0 / 60000.0

// WriteKML writes one Placemark/LineString per route so a route can be
// dropped onto a map viewer.
func WriteKML(w io.Writer, res *league.Result) error {
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return err
	}
	for _, r := range res.Routes {
		if err := writePlacemark(w, res.League, r); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, xmlFooter)
	return err
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
`

const xmlFooter = `</Document>
</kml>
`

func writePlacemark(w io.Writer, leagueName string, r league.Route) error {
	if _, err := fmt.Fprintf(w, "<Placemark><name>%s %s (%.3fkm)</name><LineString><coordinates>\n",
		leagueName, r.Type, r.Distance); err != nil {
		return err
	}
	for _, p := range r.Points {
		lon := float64(p.Fix.Lon) * kmlDegPerUnit
		lat := float64(p.Fix.Lat) * kmlDegPerUnit
		if _, err := fmt.Fprintf(w, "%f,%f,%d\n", lon, lat, p.Fix.Ele); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</coordinates></LineString></Placemark>\n")
	return err
}
