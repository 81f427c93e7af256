package conventions

import "unicode"

// DeriveConventionMethodName returns the leading camel-case word of a handler
// name: PostItem -> Post. Names without a lower-to-upper boundary are returned
// unchanged.
func DeriveConventionMethodName(name string) string {
	runes := []rune(name)
	if len(runes) < 2 {
		return name
	}

	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) && unicode.IsLower(runes[i-1]) {
			return string(runes[:i])
		}
	}

	return name
}

// DeriveConventionParameterName returns the trailing camel-case word of a
// parameter name, lower-cased: userName -> name. The last rune never starts a
// word.
func DeriveConventionParameterName(name string) string {
	runes := []rune(name)
	if len(runes) < 2 {
		return name
	}

	for i := len(runes) - 2; i > 0; i-- {
		if unicode.IsUpper(runes[i]) && unicode.IsLower(runes[i-1]) {
			return string(unicode.ToLower(runes[i])) + string(runes[i+1:])
		}
	}

	return name
}
