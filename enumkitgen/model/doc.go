// Package model defines the structural data model of one enum declaration.
//
// Every type here compares by value through explicit Equal and Hash methods,
// so two snapshots extracted from the same unchanged declaration in
// consecutive passes are equal even though they share no memory. The cache
// relies on this to skip re-emission.
package model
