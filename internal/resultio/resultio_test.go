package resultio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcscore/xcscore/internal/league"
	"github.com/xcscore/xcscore/internal/track"
)

func sampleResult() *league.Result {
	return &league.Result{
		League: "frcfd",
		Routes: []league.Route{
			{
				League:     "frcfd",
				Type:       "open0",
				Circuit:    false,
				Distance:   10.0,
				Multiplier: 1.0,
				Scored:     10.0,
				Points: []league.Point{
					{Index: 0, Name: "BD", Fix: track.Trkpt{Lat: 45 * 60000, Lon: 6 * 60000, Ele: 100}},
					{Index: 1, Name: "BA", Fix: track.Trkpt{Lat: 46 * 60000, Lon: 7 * 60000, Ele: 200}},
				},
			},
			{
				League:     "frcfd",
				Type:       "triangle_fai",
				Circuit:    true,
				Distance:   60.0,
				Multiplier: 1.4,
				Scored:     84.0,
				Points: []league.Point{
					{Index: 0, Name: "BD", Fix: track.Trkpt{Lat: 45 * 60000, Lon: 6 * 60000}},
					{Index: 1, Name: "B1", Fix: track.Trkpt{Lat: 45*60000 + 1000, Lon: 6 * 60000}},
					{Index: 2, Name: "B2", Fix: track.Trkpt{Lat: 45 * 60000, Lon: 6*60000 + 1000}},
					{Index: 3, Name: "BA", Fix: track.Trkpt{Lat: 45 * 60000, Lon: 6 * 60000}},
				},
			},
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	res := sampleResult()
	blob, err := Encode(res)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	got, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, got.Routes, 2)
	assert.Equal(t, res.League, got.League)
	assert.Equal(t, res.Routes[0].Type, got.Routes[0].Type)
	assert.Equal(t, res.Routes[1].Scored, got.Routes[1].Scored)
	require.Len(t, got.Routes[1].Points, 4)
	assert.Equal(t, "B2", got.Routes[1].Points[2].Name)
}

func TestWriteTextHasOneLinePerRoute(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResult()))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "open0")
	assert.Contains(t, lines[0], "10.000km")
	assert.Contains(t, lines[1], "triangle_fai")
	assert.Contains(t, lines[1], "84.000km")
}

func TestWriteKMLWellFormed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, sampleResult()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, 2, strings.Count(out, "<Placemark>"))
	assert.Equal(t, 2, strings.Count(out, "</Placemark>"))
	assert.Contains(t, out, "<coordinates>")
	assert.Contains(t, out, "6.000000,45.000000,100")
}
