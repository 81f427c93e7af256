package models

import (
	"fmt"
	"go/types"
)

// DeclarationRef identifies a declaration that can carry annotations.
// Handlers use "pkg.Controller.Method", controllers "pkg.Controller" and
// package-level functions "pkg.Func".
type DeclarationRef string

// NewDeclarationRef joins the package name and declaration names into a ref
func NewDeclarationRef(pkg string, names ...string) DeclarationRef {
	ref := pkg
	for _, name := range names {
		if name == "" {
			continue
		}
		ref += "." + name
	}
	return DeclarationRef(ref)
}

// IsZero reports whether the ref points at nothing
func (r DeclarationRef) IsZero() bool {
	return r == ""
}

// Parameter is a single handler parameter. Type is treated as an identity token.
type Parameter struct {
	Name string
	Type types.Type
}

// RouteInfo is the route a handler is bound to
type RouteInfo struct {
	Method string
	Path   string
}

// ActionMethod is a controller method annotated with axon::route
type ActionMethod struct {
	Ref        DeclarationRef
	Name       string
	Controller string
	Parameters []Parameter
	Route      RouteInfo
}

// NameMatchBehavior governs how a method or parameter name is matched against a convention
type NameMatchBehavior int

const (
	NameMatchExact NameMatchBehavior = iota
	NameMatchPrefix
	NameMatchSuffix
	NameMatchAny
)

// String returns the string representation of the name match behavior
func (b NameMatchBehavior) String() string {
	switch b {
	case NameMatchExact:
		return "Exact"
	case NameMatchPrefix:
		return "Prefix"
	case NameMatchSuffix:
		return "Suffix"
	case NameMatchAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// ParseNameMatchBehavior converts a string to a NameMatchBehavior
func ParseNameMatchBehavior(s string) (NameMatchBehavior, error) {
	switch s {
	case "Exact":
		return NameMatchExact, nil
	case "Prefix":
		return NameMatchPrefix, nil
	case "Suffix":
		return NameMatchSuffix, nil
	case "Any":
		return NameMatchAny, nil
	default:
		return 0, fmt.Errorf("unknown name match behavior: %s", s)
	}
}

// TypeMatchBehavior governs how a parameter type is matched against a convention
type TypeMatchBehavior int

const (
	TypeMatchExact TypeMatchBehavior = iota
	TypeMatchAssignableFrom
	TypeMatchAny
)

// String returns the string representation of the type match behavior
func (b TypeMatchBehavior) String() string {
	switch b {
	case TypeMatchExact:
		return "Exact"
	case TypeMatchAssignableFrom:
		return "AssignableFrom"
	case TypeMatchAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// ParseTypeMatchBehavior converts a string to a TypeMatchBehavior
func ParseTypeMatchBehavior(s string) (TypeMatchBehavior, error) {
	switch s {
	case "Exact":
		return TypeMatchExact, nil
	case "AssignableFrom":
		return TypeMatchAssignableFrom, nil
	case "Any":
		return TypeMatchAny, nil
	default:
		return 0, fmt.Errorf("unknown type match behavior: %s", s)
	}
}
