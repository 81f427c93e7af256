package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError(t *testing.T) {
	err := New(AnalysisErrorCode, "analyzer failed").
		WithLocation(SourceLocation{File: "users.go", Line: 12, Column: 3}).
		WithContext("package", "example.com/app/users").
		WithSuggestion("re-run with -verbose")

	assert.Equal(t, "users.go:12:3: analyzer failed", err.Error())
	assert.Equal(t, AnalysisErrorCode, err.ErrorCode())
	assert.Equal(t, "AnalysisError", err.ErrorCode().String())
	assert.Equal(t, "example.com/app/users", err.Context()["package"])
	assert.Equal(t, []string{"re-run with -verbose"}, err.Suggestions())
	assert.Nil(t, err.Unwrap())
}

func TestSourceLocation(t *testing.T) {
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.go", SourceLocation{File: "a.go"}.String())
	assert.Equal(t, "a.go:4", SourceLocation{File: "a.go", Line: 4}.String())
	assert.True(t, SourceLocation{}.IsEmpty())
}

func TestWrappers(t *testing.T) {
	tests := []struct {
		name    string
		err     *BaseError
		code    ErrorCode
		message string
	}{
		{
			name:    "parse",
			err:     WrapParseError("users.go", fs.ErrInvalid),
			code:    SyntaxErrorCode,
			message: "failed to parse users.go: invalid argument",
		},
		{
			name:    "load",
			err:     WrapLoadError([]string{"./..."}, fs.ErrNotExist),
			code:    LoadErrorCode,
			message: "failed to load [./...]: file does not exist",
		},
		{
			name:    "analysis",
			err:     WrapAnalysisError("example.com/app", fs.ErrClosed),
			code:    AnalysisErrorCode,
			message: "failed to analyze example.com/app: file already closed",
		},
		{
			name:    "fix",
			err:     WrapFixError("users.go", fs.ErrPermission),
			code:    FixErrorCode,
			message: "users.go: failed to apply fixes to users.go: permission denied",
		},
		{
			name:    "file system",
			err:     WrapFileSystemError("write", "users.go", fs.ErrPermission),
			code:    FileSystemErrorCode,
			message: "failed to write file 'users.go': permission denied",
		},
		{
			name:    "configuration",
			err:     WrapConfigurationError(".axonconv.yaml", "parse", fs.ErrInvalid),
			code:    ConfigurationErrorCode,
			message: "failed to parse configuration '.axonconv.yaml': invalid argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.ErrorCode())
			assert.Equal(t, tt.message, tt.err.Error())
			assert.NotNil(t, tt.err.Unwrap())
		})
	}
}

func TestWrapPreservesChain(t *testing.T) {
	err := WrapFileSystemError("read", "users.go", fs.ErrNotExist)

	assert.True(t, stderrors.Is(err, fs.ErrNotExist))

	var base *BaseError
	require.True(t, stderrors.As(error(err), &base))
	assert.Equal(t, "read", base.Context()["operation"])
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("Config.Strategy", "bogus", "oneof", "Strategy must be one of [auto annotate extract], got bogus").
		WithSuggestion("use auto")

	assert.Equal(t, "invalid config: Strategy must be one of [auto annotate extract], got bogus", err.Error())
	assert.Equal(t, ValidationErrorCode, err.ErrorCode())
	assert.Equal(t, "Config.Strategy", err.Field)
	assert.Equal(t, "bogus", err.Value)
	assert.Equal(t, []string{"use auto"}, err.Suggestions())
}

func TestMultipleErrors(t *testing.T) {
	multi := &MultipleErrors{}
	assert.Nil(t, multi.ErrorOrNil())
	assert.Equal(t, "no errors", multi.Error())

	multi.Add(nil)
	multi.Add(New(SyntaxErrorCode, "bad annotation"))
	assert.Equal(t, "bad annotation", multi.Error())

	multi.Add(WrapFileSystemError("read", "a.go", fs.ErrNotExist))
	require.Error(t, multi.ErrorOrNil())
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.True(t, multi.HasCode(FileSystemErrorCode))
	assert.False(t, multi.HasCode(LoadErrorCode))
	assert.True(t, stderrors.Is(multi, fs.ErrNotExist))
}
