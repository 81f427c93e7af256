package codefix

import (
	"fmt"
	"go/token"
	"go/types"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/axon-conventions/internal/models"
)

// Strategy selects which fix kinds the provider may offer
type Strategy int

const (
	// StrategyAuto extracts when a sibling handler would match the convention
	// and annotates in place otherwise
	StrategyAuto Strategy = iota
	// StrategyAnnotateOnly never extracts
	StrategyAnnotateOnly
	// StrategyExtractOnly always extracts and declines when it cannot
	StrategyExtractOnly
)

// String returns the string representation of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyAnnotateOnly:
		return "annotate"
	case StrategyExtractOnly:
		return "extract"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a string to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "auto":
		return StrategyAuto, nil
	case "annotate":
		return StrategyAnnotateOnly, nil
	case "extract":
		return StrategyExtractOnly, nil
	default:
		return 0, fmt.Errorf("unknown fix strategy %q (want auto, annotate or extract)", s)
	}
}

// ValidateDeclaration reports why a convention cannot be rendered as Go
func ValidateDeclaration(declaration models.ConventionDeclaration) error {
	if !token.IsIdentifier(declaration.Name) {
		return fmt.Errorf("convention name %q is not a Go identifier", declaration.Name)
	}
	if first, _ := utf8.DecodeRuneInString(declaration.Name); !unicode.IsUpper(first) {
		return fmt.Errorf("convention name %q is not exported", declaration.Name)
	}

	seen := make(map[string]bool, len(declaration.Parameters))
	for _, parameter := range declaration.Parameters {
		name := parameter.Name
		switch {
		case name == "" || name == "_":
			return fmt.Errorf("convention %s has an unnamed parameter", declaration.Name)
		case !token.IsIdentifier(name):
			return fmt.Errorf("parameter name %q is not a Go identifier", name)
		case types.Universe.Lookup(name) != nil:
			return fmt.Errorf("parameter name %q shadows a predeclared identifier", name)
		case seen[name]:
			return fmt.Errorf("convention %s has duplicate parameter %q", declaration.Name, name)
		}
		seen[name] = true
	}
	return nil
}
