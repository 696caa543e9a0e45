// Package enumkit is the runtime support imported by code that the enumkit
// generator emits for integer enums.
//
// The generator itself lives in the enumkitgen package and the enumkit
// command. Generated files depend on this package for the name table that
// backs TryParse and Parse, for the ParseError returned by Parse, and for the
// Kind reported by the UnderlyingKind accessors.
//
// An enum opts in with a directive on its type declaration:
//
//	//enumkit:generate comparison=ordinal-ignore-case
//	//enumkit:flags
//	type Permission uint8
//
//	const (
//		PermissionRead Permission = 1 << iota
//		//enumkit:name "write-access"
//		PermissionWrite
//		PermissionExec
//	)
package enumkit
