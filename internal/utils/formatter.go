package utils

import (
	"go/format"
	"os"

	axonerrors "github.com/toyz/axon-conventions/internal/errors"
)

// FormatGoCode formats Go source code using the same logic as gofmt
func FormatGoCode(source []byte) ([]byte, error) {
	return format.Source(source)
}

// FormatAndWriteGoFile formats code and writes it to filename, keeping the
// file's permissions. Unformattable code is not written.
func FormatAndWriteGoFile(filename string, code []byte) error {
	formatted, err := FormatGoCode(code)
	if err != nil {
		return axonerrors.WrapFixError(filename, err).WithSuggestion("the edited source is not valid Go; the file was left unchanged")
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(filename); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(filename, formatted, mode); err != nil {
		return axonerrors.WrapFileSystemError("write", filename, err)
	}
	return nil
}
