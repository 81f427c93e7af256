package conventions

import (
	"go/types"
	"sort"
	"strings"
	"unicode"

	"github.com/toyz/axon-conventions/internal/models"
)

// Matches reports whether method is covered by convention: the method name
// matches by the declaration's name behavior and each parameter, in order,
// matches the convention parameter at the same position.
func Matches(convention models.ConventionDeclaration, method models.ActionMethod) bool {
	if !NameMatches(convention.NameMatch, convention.Name, method.Name) {
		return false
	}
	if len(convention.Parameters) != len(method.Parameters) {
		return false
	}
	for i, parameter := range method.Parameters {
		cp := convention.Parameters[i]
		if !NameMatches(cp.NameMatch, cp.Name, parameter.Name) {
			return false
		}
		if !TypeMatches(cp.TypeMatch, cp.Type, parameter.Type) {
			return false
		}
	}
	return true
}

// FindMatching returns the conventions covering method, sorted by name
func FindMatching(candidates []models.ConventionDeclaration, method models.ActionMethod) []models.ConventionDeclaration {
	var matched []models.ConventionDeclaration
	for _, convention := range candidates {
		if Matches(convention, method) {
			matched = append(matched, convention)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})
	return matched
}

// NameMatches applies a name match behavior
func NameMatches(behavior models.NameMatchBehavior, conventionName, name string) bool {
	switch behavior {
	case models.NameMatchAny:
		return true
	case models.NameMatchExact:
		return conventionName == name
	case models.NameMatchPrefix:
		return isNameMatchPrefix(conventionName, name)
	case models.NameMatchSuffix:
		return isNameMatchSuffix(conventionName, name)
	default:
		return false
	}
}

// TypeMatches applies a type match behavior. A nil convention type matches anything.
func TypeMatches(behavior models.TypeMatchBehavior, conventionType, parameterType types.Type) bool {
	if behavior == models.TypeMatchAny || conventionType == nil {
		return true
	}
	if parameterType == nil {
		return false
	}
	switch behavior {
	case models.TypeMatchExact:
		return types.Identical(conventionType, parameterType)
	case models.TypeMatchAssignableFrom:
		return types.AssignableTo(parameterType, conventionType)
	default:
		return false
	}
}

// Post matches Post and PostUser but not Postal
func isNameMatchPrefix(conventionName, name string) bool {
	if !strings.HasPrefix(name, conventionName) {
		return false
	}
	rest := []rune(name[len(conventionName):])
	return len(rest) == 0 || unicode.IsUpper(rest[0])
}

// name matches name, userName and firstName but not username
func isNameMatchSuffix(conventionName, name string) bool {
	convention := []rune(conventionName)
	target := []rune(name)
	if len(target) < len(convention) {
		return false
	}
	if len(target) == len(convention) {
		return conventionName == name
	}
	if len(convention) == 0 {
		return false
	}

	index := len(target) - len(convention) - 1
	if !unicode.IsLower(target[index]) {
		return false
	}
	index++
	if target[index] != unicode.ToUpper(convention[0]) {
		return false
	}
	index++
	return string(target[index:]) == string(convention[1:])
}
