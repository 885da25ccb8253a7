package igcfmt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIGC = "" +
	"AXXX001Flight computer\r\n" +
	"HFDTE010816\r\n" +
	"C0001000N00600000EST TAKEOFF\r\n" +
	"C0002000N00700000ETP1\r\n" +
	"B1100004500000N00600000EA0012300128\r\n" +
	"B1100504500500N00600300EA0012400129\r\n" +
	"B1101004501000N00600600EA0012500130\r\n"

func TestParsePlainIGC(t *testing.T) {
	tr, err := Parse(strings.NewReader(sampleIGC))
	require.NoError(t, err)
	require.Equal(t, 3, tr.N())

	assert.Equal(t, int32(45*60000), tr.Fixes[0].Lat)
	assert.Equal(t, int32(6*60000), tr.Fixes[0].Lon)
	assert.Equal(t, byte('A'), tr.Fixes[0].Val)

	require.Len(t, tr.Task, 2)
	assert.Equal(t, "ST TAKEOFF", tr.Task[0].Name)
	assert.Equal(t, "TP1", tr.Task[1].Name)
}

func TestParseGzippedIGC(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sampleIGC))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tr, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.N())
}

func TestParseSkipsMalformedLines(t *testing.T) {
	const malformed = "HFDTE010816\r\n" +
		"Bgarbage\r\n" +
		"B1100004500000N00600000EA0012300128\r\n"
	tr, err := Parse(strings.NewReader(malformed))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.N())
}

func TestParseHFDTE(t *testing.T) {
	d, ok := parseHFDTE("HFDTE250696")
	require.True(t, ok)
	assert.Equal(t, 1996, d.Year())
	assert.Equal(t, 6, int(d.Month()))
	assert.Equal(t, 25, d.Day())

	_, ok = parseHFDTE("Bnotadate")
	assert.False(t, ok)
}

func TestParseBRecordHemisphereSigns(t *testing.T) {
	day := time.Date(2016, 8, 1, 0, 0, 0, 0, time.UTC)
	fix, ok := parseBRecord("B1100004500000S00600000WA0012300128", day)
	require.True(t, ok)
	assert.Less(t, fix.Lat, int32(0))
	assert.Less(t, fix.Lon, int32(0))
}

func TestParseBRecordRejectsBadValidity(t *testing.T) {
	day := time.Date(2016, 8, 1, 0, 0, 0, 0, time.UTC)
	_, ok := parseBRecord("B1100004500000N00600000EX0012300128", day)
	assert.False(t, ok)
}
