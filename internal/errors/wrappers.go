package errors

import "fmt"

// Common error wrapping patterns used throughout the checker

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)
}

// WrapLoadError wraps a package loading error
func WrapLoadError(patterns []string, cause error) *BaseError {
	return Wrap(LoadErrorCode, fmt.Sprintf("failed to load %v", patterns), cause).
		WithContext("patterns", patterns).
		WithSuggestion("run 'go build' on the patterns to see the underlying problem")
}

// WrapAnalysisError wraps an analyzer failure on one package
func WrapAnalysisError(pkgPath string, cause error) *BaseError {
	return Wrap(AnalysisErrorCode, fmt.Sprintf("failed to analyze %s", pkgPath), cause).
		WithContext("package", pkgPath)
}

// WrapFixError wraps a failure applying suggested fixes to a file
func WrapFixError(path string, cause error) *BaseError {
	return Wrap(FixErrorCode, fmt.Sprintf("failed to apply fixes to %s", path), cause).
		WithLocation(SourceLocation{File: path})
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configFile, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configFile)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_file", configFile).
		WithContext("operation", operation)
}
