// Package bad holds enums that fail extraction.
package bad

//enumkit:generate
type Wide int

//enumkit:generate
type Alias = int32

//enumkit:generate comparison=fancy
type Level int8

const (
	Low    Level = -1
	High   Level = 127
	Broken Level = missing
)

//enumkit:generate
type Label string

const L Label = "x"
