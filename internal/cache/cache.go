// Package cache provides a two-tier route cache fronting the optimizer:
// an in-process LRU backed by a SQLite table, keyed by track content
// hash, league and complexity. Caching is strictly optional — every
// failure here is treated as a miss, never a fatal error, since the
// core always has the authoritative recomputation path available.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Key identifies one cached optimization result.
type Key struct {
	TrackHash  string
	League     string
	Complexity int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d", k.TrackHash, k.League, k.Complexity)
}

// HashIGC derives the TrackHash component of a Key from the raw IGC
// bytes a Track was parsed from.
func HashIGC(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Store is the interface the CLI depends on; Cache is its only
// implementation, but tests can substitute a trivial stub.
type Store interface {
	Get(k Key) ([]byte, bool)
	Put(k Key, blob []byte, computedAtUnix int64)
}

// Cache is an LRU-fronted SQLite-backed Store.
type Cache struct {
	lru *lru.Cache[string, []byte]
	db  *sql.DB
}

// Open creates a Cache with the given in-process LRU capacity, backed
// by the SQLite database at path (use ":memory:" for a purely in-
// process cache, or "" to disable the SQLite tier entirely).
func Open(path string, lruSize int) (*Cache, error) {
	l, err := lru.New[string, []byte](lruSize)
	if err != nil {
		return nil, fmt.Errorf("cache: lru: %w", err)
	}
	c := &Cache{lru: l}
	if path == "" {
		return c, nil
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	// go-sqlite3 gives each connection its own database when path is
	// ":memory:"; one connection keeps the pool's view consistent.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS route_cache (
		key TEXT PRIMARY KEY,
		result BLOB NOT NULL,
		computed_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: schema: %w", err)
	}
	c.db = db
	return c, nil
}

// Close releases the SQLite handle, if any.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get checks the LRU tier, then falls through to SQLite, repopulating
// the LRU on a SQLite hit. Any SQLite error is logged and treated as a
// miss.
func (c *Cache) Get(k Key) ([]byte, bool) {
	key := k.String()
	if b, ok := c.lru.Get(key); ok {
		return b, true
	}
	if c.db == nil {
		return nil, false
	}
	var blob []byte
	err := c.db.QueryRow(`SELECT result FROM route_cache WHERE key = ?`, key).Scan(&blob)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("cache: lookup %s: %v", key, err)
		}
		return nil, false
	}
	c.lru.Add(key, blob)
	return blob, true
}

// Put installs blob in both tiers. A SQLite write failure is logged,
// not returned — the LRU write still succeeds, and a failed persist
// only costs a future process its warm start, not correctness.
func (c *Cache) Put(k Key, blob []byte, computedAtUnix int64) {
	key := k.String()
	c.lru.Add(key, blob)
	if c.db == nil {
		return
	}
	_, err := c.db.Exec(`INSERT OR REPLACE INTO route_cache (key, result, computed_at) VALUES (?, ?, ?)`,
		key, blob, computedAtUnix)
	if err != nil {
		log.Printf("cache: persist %s: %v", key, err)
	}
}
