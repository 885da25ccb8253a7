// Package igcfmt parses IGC flight-log files into the track package's
// Trkpt/Wpt sequences. It skips malformed lines rather than rejecting
// the whole file; the field checks made here are the only validation
// the fixes receive, since the core performs none.
package igcfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/xcscore/xcscore/internal/track"
)

// Parse reads IGC file bytes (optionally gzip-compressed) and returns a
// Track ready for Preprocess. Malformed B/C/H records are skipped; an
// error is returned only when r cannot be read, when gzip-compressed
// input cannot be decompressed, or when a line exceeds 1 MiB.
func Parse(r io.Reader) (*track.Track, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("igcfmt: read: %w", err)
	}
	body := raw
	if looksGzipped(raw) {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("igcfmt: gzip: %w", err)
		}
		defer zr.Close()
		body, err = io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("igcfmt: gzip: %w", err)
		}
	}

	p := &parser{date: time.Now().UTC()}
	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		p.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("igcfmt: scan: %w", err)
	}

	return track.New(p.fixes, p.waypoints, raw), nil
}

func looksGzipped(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}

type parser struct {
	date       time.Time // UTC calendar date from the HFDTE record, if any
	dateKnown  bool
	fixes      []track.Trkpt
	waypoints  []track.Wpt
}

func (p *parser) line(s string) {
	if s == "" {
		return
	}
	switch s[0] {
	case 'B':
		if fix, ok := parseBRecord(s, p.dayStart()); ok {
			p.fixes = append(p.fixes, fix)
		}
	case 'C':
		if wpt, ok := parseCRecord(s); ok {
			p.waypoints = append(p.waypoints, wpt)
		}
	case 'H':
		if d, ok := parseHFDTE(s); ok {
			p.date = d
			p.dateKnown = true
		}
	}
}

// dayStart returns midnight UTC of the flight's date. Fixes observed
// before any HFDTE record use the time Parse started running, since
// there is no better fallback — this only affects the absolute
// timestamp, never the relative ordering search depends on.
func (p *parser) dayStart() time.Time {
	y, m, d := p.date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseBRecord matches a B record: time-of-day, latitude (ddmmmmm +
// hemisphere), longitude (dddmmmmm + hemisphere), fix validity, pressure
// altitude and GNSS altitude, field by field as match_b_record does.
func parseBRecord(s string, day time.Time) (track.Trkpt, bool) {
	if len(s) < 35 {
		return track.Trkpt{}, false
	}
	hour, ok1 := atoiFixed(s[1:3])
	min, ok2 := atoiFixed(s[3:5])
	sec, ok3 := atoiFixed(s[5:7])
	latDeg, ok4 := atoiFixed(s[7:9])
	latMMin, ok5 := atoiFixed(s[9:14])
	latHemi := s[14]
	lonDeg, ok6 := atoiFixed(s[15:18])
	lonMMin, ok7 := atoiFixed(s[18:23])
	lonHemi := s[23]
	val := s[24]
	alt, ok8 := atoiFixed(s[25:30])
	ele, ok9 := atoiFixed(s[30:35])

	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8 && ok9) {
		return track.Trkpt{}, false
	}
	if (latHemi != 'N' && latHemi != 'S') || (lonHemi != 'E' && lonHemi != 'W') {
		return track.Trkpt{}, false
	}
	if val != 'A' && val != 'V' {
		return track.Trkpt{}, false
	}

	lat := int32(60000*latDeg + latMMin)
	if latHemi == 'S' {
		lat = -lat
	}
	lon := int32(60000*lonDeg + lonMMin)
	if lonHemi == 'W' {
		lon = -lon
	}

	t := day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second)

	return track.Trkpt{
		Time: t.Unix(),
		Lat:  lat,
		Lon:  lon,
		Val:  val,
		Alt:  alt,
		Ele:  ele,
	}, true
}

// parseCRecord matches a task declaration waypoint: latitude, longitude
// and a free-text name running to end of line.
func parseCRecord(s string) (track.Wpt, bool) {
	if len(s) < 19 {
		return track.Wpt{}, false
	}
	latDeg, ok1 := atoiFixed(s[1:3])
	latMMin, ok2 := atoiFixed(s[3:8])
	latHemi := s[8]
	lonDeg, ok3 := atoiFixed(s[9:12])
	lonMMin, ok4 := atoiFixed(s[12:17])
	lonHemi := s[17]

	if !(ok1 && ok2 && ok3 && ok4) {
		return track.Wpt{}, false
	}
	if (latHemi != 'N' && latHemi != 'S') || (lonHemi != 'E' && lonHemi != 'W') {
		return track.Wpt{}, false
	}

	lat := int32(60000*latDeg + latMMin)
	if latHemi == 'S' {
		lat = -lat
	}
	lon := int32(60000*lonDeg + lonMMin)
	if lonHemi == 'W' {
		lon = -lon
	}

	name := ""
	if len(s) > 18 {
		name = s[18:]
	}

	return track.Wpt{Lat: lat, Lon: lon, Name: name, Val: 'A'}, true
}

// parseHFDTE matches the flight date header: HFDTE followed by
// DDMMYY, two-digit year offset from 2000 as the original does.
func parseHFDTE(s string) (time.Time, bool) {
	const prefix = "HFDTE"
	if len(s) < len(prefix)+6 || s[:len(prefix)] != prefix {
		return time.Time{}, false
	}
	body := s[len(prefix) : len(prefix)+6]
	mday, ok1 := atoiFixed(body[0:2])
	mon, ok2 := atoiFixed(body[2:4])
	year, ok3 := atoiFixed(body[4:6])
	if !(ok1 && ok2 && ok3) || mon < 1 || mon > 12 || mday < 1 || mday > 31 {
		return time.Time{}, false
	}
	return time.Date(2000+year, time.Month(mon), mday, 0, 0, 0, 0, time.UTC), true
}

func atoiFixed(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
