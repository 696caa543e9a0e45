package model

import "github.com/broady/enumkit"

// Snapshot captures everything about one enum declaration that influences
// its generated file. Output is a pure function of a Snapshot, so equal
// snapshots may share output.
//
// Snapshots are values. Copying one never aliases another's members.
type Snapshot struct {
	// Namespace is the import path of the declaring package.
	Namespace string

	// PackageName is the name used in the generated package clause.
	PackageName string

	// Name is the enum type name.
	Name string

	// IsFlags marks enums whose members compose bitwise.
	IsFlags bool

	// Kind is the underlying integer kind.
	Kind enumkit.Kind

	// Comparison is the name matching mode of the parse functions.
	Comparison enumkit.Comparison

	// Members in declaration order.
	Members Seq[Member]
}

// Equal compares every field, cheapest first.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.IsFlags == o.IsFlags &&
		s.Kind == o.Kind &&
		s.Comparison == o.Comparison &&
		s.Members.Len() == o.Members.Len() &&
		s.Name == o.Name &&
		s.Namespace == o.Namespace &&
		s.PackageName == o.PackageName &&
		s.Members.Equal(o.Members)
}

// Hash is consistent with Equal.
func (s Snapshot) Hash() uint64 {
	h := mixString(hashOffset, s.Namespace)
	h = mixString(h, s.PackageName)
	h = mixString(h, s.Name)
	h = mixBool(h, s.IsFlags)
	h = mix(h, uint64(s.Kind))
	h = mix(h, uint64(s.Comparison))
	return mix(h, s.Members.Hash())
}

// QualifiedName returns "<import path>.<Name>".
func (s Snapshot) QualifiedName() string {
	if s.Namespace == "" {
		return s.Name
	}
	return s.Namespace + "." + s.Name
}
