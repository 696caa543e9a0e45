package model

// Member is one enum member.
//
// Build members with NewMember or NewCustomMember; they keep DisplayName equal
// to Identifier unless a custom name was given.
type Member struct {
	// Identifier is the Go constant name. Never empty.
	Identifier string

	// DisplayName is the string form used by String and the parse functions.
	DisplayName string

	// HasCustomName is set when DisplayName came from an //enumkit:name directive.
	HasCustomName bool

	Value Value
}

// NewMember returns a member displayed by its identifier.
func NewMember(identifier string, v Value) Member {
	return Member{Identifier: identifier, DisplayName: identifier, Value: v}
}

// NewCustomMember returns a member with an explicit display name.
func NewCustomMember(identifier, displayName string, v Value) Member {
	return Member{Identifier: identifier, DisplayName: displayName, HasCustomName: true, Value: v}
}

// Equal reports whether every field of m and o is equal.
func (m Member) Equal(o Member) bool {
	return m.HasCustomName == o.HasCustomName &&
		m.Value.Equal(o.Value) &&
		m.Identifier == o.Identifier &&
		m.DisplayName == o.DisplayName
}

// Hash is consistent with Equal.
func (m Member) Hash() uint64 {
	h := mixString(hashOffset, m.Identifier)
	h = mixString(h, m.DisplayName)
	h = mixBool(h, m.HasCustomName)
	return mix(h, m.Value.Hash())
}
