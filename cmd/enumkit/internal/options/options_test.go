package options

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/enumkit/enumkitgen"
)

type cli struct {
	Scan  Scan  `embed:""`
	Watch Watch `embed:""`
}

func parse(t *testing.T, args ...string) cli {
	t.Helper()
	var c cli
	p, err := kong.New(&c, kong.Exit(func(int) { t.Fatal("exit") }))
	require.NoError(t, err)
	_, err = p.Parse(args)
	require.NoError(t, err)
	return c
}

func TestScan_Defaults(t *testing.T) {
	c := parse(t)
	assert.Equal(t, []string{"."}, c.Scan.Patterns)
	assert.Equal(t, enumkitgen.Config{Patterns: []string{"."}}, c.Scan.Config())
	assert.False(t, c.Watch.Watch)
	assert.Equal(t, "200ms", c.Watch.Debounce.String())
}

func TestScan_Flags(t *testing.T) {
	c := parse(t, "./...", "./cmd", "--tags", "a,b", "--delimiter", ", ", "--suffix", "_enum.go",
		"--runtime", "example.com/rt", "-j", "3", "-w", "--debounce", "1s")
	assert.Equal(t, enumkitgen.Config{
		Patterns:      []string{"./...", "./cmd"},
		BuildTags:     []string{"a", "b"},
		Delimiter:     ", ",
		FileSuffix:    "_enum.go",
		RuntimeImport: "example.com/rt",
		Concurrency:   3,
	}, c.Scan.Config())
	assert.True(t, c.Watch.Watch)
}
