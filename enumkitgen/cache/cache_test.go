package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/enumkit"
	"github.com/broady/enumkit/enumkitgen/model"
)

func snapshot(members ...string) model.Snapshot {
	ms := make([]model.Member, len(members))
	for i, m := range members {
		ms[i] = model.NewMember(m, model.FromInt32(int32(i)))
	}
	return model.Snapshot{
		Namespace:   "example.com/paint",
		PackageName: "paint",
		Name:        "Color",
		Kind:        enumkit.Int32,
		Members:     model.NewSeq(ms...),
	}
}

type countingEmitter struct{ calls atomic.Int32 }

func (c *countingEmitter) emit(snap model.Snapshot) (string, []byte, error) {
	n := c.calls.Add(1)
	return snap.Name + ".go", fmt.Appendf(nil, "%s #%d", snap.QualifiedName(), n), nil
}

func TestResolve_Idempotent(t *testing.T) {
	c := New()
	var em countingEmitter
	key := KeyOf(snapshot())

	first, hit, err := c.Resolve(key, snapshot("Red", "Green"), em.emit)
	require.NoError(t, err)
	assert.False(t, hit)

	// A structurally equal snapshot built separately reuses the output.
	second, hit, err := c.Resolve(key, snapshot("Red", "Green"), em.emit)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, int32(1), em.calls.Load())

	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, c.Stats())
}

func TestResolve_ChangedSnapshotReemits(t *testing.T) {
	c := New()
	var em countingEmitter
	key := KeyOf(snapshot())

	_, _, err := c.Resolve(key, snapshot("Red"), em.emit)
	require.NoError(t, err)
	e, hit, err := c.Resolve(key, snapshot("Red", "Green"), em.emit)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "example.com/paint.Color #2", string(e.Output))

	stored, ok := c.Lookup(key)
	require.True(t, ok)
	assert.Same(t, e, stored)
	assert.Equal(t, 2, stored.Snapshot.Members.Len())
}

func TestResolve_EmitFailureKeepsPrevious(t *testing.T) {
	c := New()
	var em countingEmitter
	key := KeyOf(snapshot())

	prev, _, err := c.Resolve(key, snapshot("Red"), em.emit)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, _, err = c.Resolve(key, snapshot("Red", "Green"), func(model.Snapshot) (string, []byte, error) {
		return "", nil, boom
	})
	require.ErrorIs(t, err, boom)

	stored, ok := c.Lookup(key)
	require.True(t, ok)
	assert.Same(t, prev, stored)
}

func TestRetain(t *testing.T) {
	c := New()
	var em countingEmitter
	keys := []Key{
		{Package: "b", Name: "Y"},
		{Package: "a", Name: "X"},
		{Package: "a", Name: "W"},
	}
	for _, k := range keys {
		_, _, err := c.Resolve(k, snapshot("Red"), em.emit)
		require.NoError(t, err)
	}

	dropped := c.Retain([]Key{{Package: "a", Name: "X"}})
	assert.Equal(t, []Key{{Package: "a", Name: "W"}, {Package: "b", Name: "Y"}}, dropped)
	assert.Equal(t, 1, c.Stats().Entries)

	_, ok := c.Lookup(Key{Package: "a", Name: "X"})
	assert.True(t, ok)
}

func TestReset(t *testing.T) {
	c := New()
	var em countingEmitter
	key := KeyOf(snapshot())
	_, _, err := c.Resolve(key, snapshot("Red"), em.emit)
	require.NoError(t, err)

	c.Reset()
	assert.Equal(t, Stats{}, c.Stats())

	_, hit, err := c.Resolve(key, snapshot("Red"), em.emit)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestResolve_Concurrent(t *testing.T) {
	c := New()
	var em countingEmitter

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := Key{Package: "p", Name: fmt.Sprintf("E%d", i%4)}
			_, _, err := c.Resolve(key, snapshot("Red"), em.emit)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s := c.Stats()
	assert.Equal(t, 4, s.Entries)
	assert.Equal(t, 32, s.Hits+s.Misses)
}
