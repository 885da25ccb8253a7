/*
Command xcscore computes optimal cross-country flight routes from an IGC
flight log, scored under the FFVL, UK National XC and UK XC League
rulesets.

Usage:

	xcscore [options] <file.igc>    score a flight log
	xcscore [options] -             score a flight log from stdin

Options:

	-league <name>    frcfd, uknxcl, ukxcl, or all (default "all")
	-complexity <n>   pipeline depth, -1 for everything a league defines (default -1)
	-cache <path>     SQLite route cache file; empty disables caching
	-out <format>     text or kml (default "text")
	-open             open the rendered KML in the system viewer (implies -out kml)
	-debug            dump each league's result structure (the track is not dumped)
	-log <path>       rotate output through this file instead of stderr

Input is an IGC file (optionally gzip-compressed); output is one line
(or one KML Placemark) per candidate route found.
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goforj/godump"
	"github.com/pkg/browser"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/xcscore/xcscore/internal/cache"
	"github.com/xcscore/xcscore/internal/igcfmt"
	"github.com/xcscore/xcscore/internal/league"
	"github.com/xcscore/xcscore/internal/resultio"
)

// fatal carries an error value up to main's recover handler, so that
// deferred cleanup still runs before the process exits with a plain
// error message instead of a stack trace.
type fatal struct {
	err interface{}
}

func exit(err interface{}) {
	panic(fatal{err})
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			if f, ok := err.(fatal); ok {
				log.Fatal(f.err)
			}
			panic(err)
		}
	}()

	cl := parseCommandLine()
	setupLogging(cl)

	raw := readInput(cl)

	leagues := selectedLeagues(cl.league)
	var store cache.Store
	if cl.cachePath != "" {
		c, err := cache.Open(cl.cachePath, 64)
		if err != nil {
			log.Printf("%v; running without the route cache", err)
		} else {
			defer c.Close()
			store = c
		}
	}

	var out bytes.Buffer
	for _, lg := range leagues {
		res := resultFor(raw, lg, cl.complexity, store)
		if cl.debug {
			godump.Dump(res)
		}
		if err := writeResult(&out, cl.outFormat, res); err != nil {
			exit(err)
		}
	}

	if cl.open {
		tmp, err := os.CreateTemp("", "xcscore-*.kml")
		if err != nil {
			exit(err)
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(out.Bytes()); err != nil {
			exit(err)
		}
		tmp.Close()
		if err := browser.OpenFile(tmp.Name()); err != nil {
			exit(err)
		}
		return
	}

	if _, err := os.Stdout.Write(out.Bytes()); err != nil {
		exit(err)
	}
}

func resultFor(raw []byte, lg league.League, complexity int, store cache.Store) *league.Result {
	key := cache.Key{TrackHash: cache.HashIGC(raw), League: lg.String(), Complexity: complexity}
	if store != nil {
		if blob, ok := store.Get(key); ok {
			if res, err := resultio.Decode(blob); err == nil {
				return res
			}
		}
	}

	t, err := igcfmt.Parse(bytes.NewReader(raw))
	if err != nil {
		exit(err)
	}
	if err := t.Preprocess(); err != nil {
		exit(err)
	}

	res := league.Optimize(t, lg, complexity, nil)

	if store != nil {
		if blob, err := resultio.Encode(res); err == nil {
			store.Put(key, blob, time.Now().Unix())
		}
	}
	return res
}

func writeResult(w io.Writer, format string, res *league.Result) error {
	switch format {
	case "kml":
		return resultio.WriteKML(w, res)
	default:
		return resultio.WriteText(w, res)
	}
}

type commandLine struct {
	league     string
	complexity int
	cachePath  string
	outFormat  string
	open       bool
	debug      bool
	logPath    string
	input      string
}

func parseCommandLine() *commandLine {
	cl := new(commandLine)
	flag.StringVar(&cl.league, "league", "all", "")
	flag.IntVar(&cl.complexity, "complexity", -1, "")
	flag.StringVar(&cl.cachePath, "cache", "", "")
	flag.StringVar(&cl.outFormat, "out", "text", "")
	flag.BoolVar(&cl.open, "open", false, "")
	flag.BoolVar(&cl.debug, "debug", false, "")
	flag.StringVar(&cl.logPath, "log", "", "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: xcscore [options] <file.igc>    score a flight log
       xcscore [options] -             score a flight log from stdin

Options:
       -league <name>    frcfd, uknxcl, ukxcl, or all (default "all")
       -complexity <n>   pipeline depth, -1 for everything (default -1)
       -cache <path>     SQLite route cache file
       -out <format>     text or kml (default "text")
       -open             open rendered KML in the system viewer
       -debug            dump each league's result structure
       -log <path>       rotate output through this file
`)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	cl.input = flag.Arg(0)
	if cl.open {
		cl.outFormat = "kml"
	}
	return cl
}

func setupLogging(cl *commandLine) {
	if cl.logPath == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   cl.logPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	})
}

func readInput(cl *commandLine) []byte {
	var r io.Reader
	if cl.input == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(cl.input)
		if err != nil {
			exit(err)
		}
		defer f.Close()
		r = f
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		exit(err)
	}
	return raw
}

func selectedLeagues(name string) []league.League {
	switch strings.ToLower(name) {
	case "frcfd":
		return []league.League{league.FFVL}
	case "uknxcl":
		return []league.League{league.UKNational}
	case "ukxcl":
		return []league.League{league.UKXCL}
	case "all", "":
		return []league.League{league.FFVL, league.UKNational, league.UKXCL}
	default:
		exit(fmt.Sprintf("unrecognized league: %s", name))
		return nil
	}
}
