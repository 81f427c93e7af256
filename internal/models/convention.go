package models

import "go/types"

// ConventionParameter is a parameter of a convention declaration. A nil Type
// renders as any.
type ConventionParameter struct {
	Name      string
	Type      types.Type
	NameMatch NameMatchBehavior
	TypeMatch TypeMatchBehavior
}

// ConventionDeclaration is a bodyless function that handlers match by name and
// parameter shape instead of repeating axon::produces lines.
type ConventionDeclaration struct {
	Name        string
	Parameters  []ConventionParameter
	StatusCodes []int // ascending, distinct
	NameMatch   NameMatchBehavior
}

// Ref returns the declaration ref of the convention inside pkg
func (c ConventionDeclaration) Ref(pkg string) DeclarationRef {
	return NewDeclarationRef(pkg, c.Name)
}

// Metadata returns the explicit metadata the convention contributes
func (c ConventionDeclaration) Metadata(pkg string) []ResponseMetadata {
	owner := c.Ref(pkg)
	result := make([]ResponseMetadata, 0, len(c.StatusCodes))
	for _, code := range c.StatusCodes {
		result = append(result, Explicit(owner, code))
	}
	return result
}

// Equal reports whether two declarations render identically
func (c ConventionDeclaration) Equal(other ConventionDeclaration) bool {
	if c.Name != other.Name || c.NameMatch != other.NameMatch {
		return false
	}
	if len(c.StatusCodes) != len(other.StatusCodes) || len(c.Parameters) != len(other.Parameters) {
		return false
	}
	for i := range c.StatusCodes {
		if c.StatusCodes[i] != other.StatusCodes[i] {
			return false
		}
	}
	for i, p := range c.Parameters {
		o := other.Parameters[i]
		if p.Name != o.Name || p.NameMatch != o.NameMatch || p.TypeMatch != o.TypeMatch {
			return false
		}
		if (p.Type == nil) != (o.Type == nil) {
			return false
		}
		if p.Type != nil && !types.Identical(p.Type, o.Type) {
			return false
		}
	}
	return true
}
