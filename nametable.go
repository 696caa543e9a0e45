package enumkit

import (
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NameTable maps display names back to enum values under a Comparison.
//
// Entries are inserted in the order given to NewNameTable; when two names
// compare equal under the mode, the later one wins. A NameTable is safe for
// concurrent use.
type NameTable[T any] struct {
	mode    Comparison
	entries map[string]T

	// Collators are stateful, so culture-aware lookups serialize on mu.
	mu   sync.Mutex
	coll *collate.Collator
	buf  collate.Buffer
}

// NewNameTable builds a table from parallel name and value slices.
// It panics if the slices differ in length.
func NewNameTable[T any](mode Comparison, names []string, values []T) *NameTable[T] {
	if len(names) != len(values) {
		panic("enumkit: NewNameTable called with mismatched names and values")
	}
	t := &NameTable[T]{
		mode:    mode,
		entries: make(map[string]T, len(names)),
	}
	if mode.Cultural() {
		tag := language.Und
		if mode == CurrentCulture || mode == CurrentCultureIgnoreCase {
			tag = CurrentLanguage()
		}
		var opts []collate.Option
		if mode.IgnoreCase() {
			opts = append(opts, collate.IgnoreCase)
		}
		t.coll = collate.New(tag, opts...)
	}
	for i, name := range names {
		t.entries[t.key(name)] = values[i]
	}
	return t
}

// Mode returns the comparison the table was built with.
func (t *NameTable[T]) Mode() Comparison { return t.mode }

// Len returns the number of distinct keys in the table.
func (t *NameTable[T]) Len() int { return len(t.entries) }

// Lookup returns the value registered for name. The empty string never
// matches.
func (t *NameTable[T]) Lookup(name string) (T, bool) {
	if name == "" {
		var zero T
		return zero, false
	}
	v, ok := t.entries[t.key(name)]
	return v, ok
}

// key maps name to its lookup key. Ignoring case in ordinal mode uppercases
// one rune at a time, so "Straße" and "STRASSE" stay distinct.
func (t *NameTable[T]) key(name string) string {
	switch {
	case t.mode == OrdinalIgnoreCase:
		return strings.Map(unicode.ToUpper, name)
	case t.coll != nil:
		t.mu.Lock()
		defer t.mu.Unlock()
		k := string(t.coll.KeyFromString(&t.buf, name))
		t.buf.Reset()
		return k
	default:
		return name
	}
}

// CurrentLanguage returns the collation language of the process, taken from
// the first of LC_ALL, LC_COLLATE and LANG that parses. It returns
// language.Und when none is set or the locale is C/POSIX.
func CurrentLanguage() language.Tag {
	for _, env := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		v := os.Getenv(env)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if tag, err := language.Parse(strings.ReplaceAll(v, "_", "-")); err == nil {
			return tag
		}
	}
	return language.Und
}
