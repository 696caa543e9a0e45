// Package colors is input for the source provider tests.
package colors

//enumkit:generate
type Color int32

const (
	Red Color = iota
	//enumkit:name "Vert"
	Green
	Blue
	Crimson = Red
)

// Perm is a set of permissions.
//
//enumkit:generate comparison=ordinal-ignore-case
//enumkit:flags
type Perm uint8

const (
	None  Perm = 0
	Read  Perm = 1
	Write Perm = 2
	Exec  Perm = 4 //enumkit:name "Execute"
)

// Plain has constants but no directive.
type Plain int8

const P Plain = 1

const untyped = 3
