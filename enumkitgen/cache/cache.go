// Package cache remembers the last snapshot and generated output of every
// enum declaration so unchanged declarations are not emitted again.
package cache

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/broady/enumkit/enumkitgen/model"
)

// Key identifies one declaration across passes.
type Key struct {
	// Package is the import path of the declaring package.
	Package string
	// Name is the enum type name.
	Name string
}

func (k Key) String() string { return k.Package + "." + k.Name }

// KeyOf returns the key of snap.
func KeyOf(snap model.Snapshot) Key {
	return Key{Package: snap.Namespace, Name: snap.Name}
}

// Entry is the cached state of one declaration. Entries are never mutated
// after they are stored.
type Entry struct {
	Snapshot model.Snapshot
	Hash     uint64
	FileName string
	Output   []byte
}

// EmitFunc renders a snapshot. It is called outside the cache lock.
type EmitFunc func(model.Snapshot) (fileName string, output []byte, err error)

// Stats counts cache outcomes since creation or the last Reset.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*Entry
	hits    int
	misses  int
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]*Entry)}
}

// Resolve returns the output for snap. If the stored entry for key holds an
// equal snapshot its output is returned and hit is true. Otherwise emit is
// called and its result replaces the entry.
//
// A failed emit leaves the previous entry in place.
func (c *Cache) Resolve(key Key, snap model.Snapshot, emit EmitFunc) (e *Entry, hit bool, err error) {
	h := snap.Hash()

	c.mu.Lock()
	prev := c.entries[key]
	if prev != nil && prev.Hash == h && prev.Snapshot.Equal(snap) {
		c.hits++
		c.mu.Unlock()
		return prev, true, nil
	}
	c.mu.Unlock()

	name, out, err := emit(snap)
	if err != nil {
		return nil, false, fmt.Errorf("emit %s: %w", key, err)
	}
	next := &Entry{Snapshot: snap, Hash: h, FileName: name, Output: out}

	c.mu.Lock()
	c.entries[key] = next
	c.misses++
	c.mu.Unlock()
	return next, false, nil
}

// Lookup returns the stored entry for key.
func (c *Cache) Lookup(key Key) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Forget drops the entry for key.
func (c *Cache) Forget(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Retain drops every entry whose key is not in keep and returns the dropped
// keys sorted by package then name.
func (c *Cache) Retain(keep []Key) []Key {
	want := make(map[Key]bool, len(keep))
	for _, k := range keep {
		want[k] = true
	}

	c.mu.Lock()
	var dropped []Key
	for k := range c.entries {
		if !want[k] {
			dropped = append(dropped, k)
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	slices.SortFunc(dropped, compareKeys)
	return dropped
}

// Reset removes all entries and zeroes the counters.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.hits, c.misses = 0, 0
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

func compareKeys(a, b Key) int {
	return cmp.Or(strings.Compare(a.Package, b.Package), strings.Compare(a.Name, b.Name))
}
