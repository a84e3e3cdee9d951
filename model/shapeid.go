package model

import (
	"fmt"
	"strings"
)

// ShapeID identifies a shape as namespace#name, optionally with a $member
// suffix. Equality is structural: two ShapeID values are equal iff their
// fields are equal.
type ShapeID struct {
	Namespace string
	Name      string
	Member    string // empty when this id does not reference a member
}

// NewShapeID builds a top-level shape id (namespace#name).
func NewShapeID(namespace, name string) ShapeID {
	return ShapeID{Namespace: namespace, Name: name}
}

// WithMember returns the member id namespace#name$member.
func (id ShapeID) WithMember(member string) ShapeID {
	id.Member = member
	return id
}

// IsMember reports whether this id references a member.
func (id ShapeID) IsMember() bool { return id.Member != "" }

// String renders the id in namespace#name[$member] form.
func (id ShapeID) String() string {
	s := id.Namespace + "#" + id.Name
	if id.Member != "" {
		s += "$" + id.Member
	}
	return s
}

// ParseShapeID parses a namespace#name or namespace#name$member string.
func ParseShapeID(s string) (ShapeID, error) {
	hashIdx := strings.IndexByte(s, '#')
	if hashIdx < 0 {
		return ShapeID{}, fmt.Errorf("model: invalid shape id %q: missing '#'", s)
	}
	namespace := s[:hashIdx]
	rest := s[hashIdx+1:]
	if namespace == "" || rest == "" {
		return ShapeID{}, fmt.Errorf("model: invalid shape id %q", s)
	}
	if dollarIdx := strings.IndexByte(rest, '$'); dollarIdx >= 0 {
		name := rest[:dollarIdx]
		member := rest[dollarIdx+1:]
		if name == "" || member == "" {
			return ShapeID{}, fmt.Errorf("model: invalid shape id %q", s)
		}
		return ShapeID{Namespace: namespace, Name: name, Member: member}, nil
	}
	return ShapeID{Namespace: namespace, Name: rest}, nil
}
