package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	axonerrors "github.com/toyz/axon-conventions/internal/errors"
)

// GoModParser provides utilities for parsing go.mod files
type GoModParser struct {
	readFile func(string) ([]byte, error)
}

// NewGoModParser creates a new go.mod parser reading from disk
func NewGoModParser() *GoModParser {
	return &GoModParser{readFile: os.ReadFile}
}

// ParseModuleName extracts the module name from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if !strings.HasSuffix(cleanPath, "go.mod") {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := p.readFile(cleanPath)
	if err != nil {
		return "", axonerrors.WrapFileSystemError("read", cleanPath, err)
	}

	modFile, err := modfile.ParseLax(cleanPath, content, nil)
	if err != nil {
		return "", axonerrors.WrapParseError(cleanPath, err)
	}

	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in go.mod")
	}

	return modFile.Module.Mod.Path, nil
}

// FindGoModFile searches for go.mod file starting from the given directory and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if content, err := p.readFile(goModPath); err == nil && len(content) > 0 {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// FindModuleRoot returns the directory of the nearest go.mod and its module path
func (p *GoModParser) FindModuleRoot(startDir string) (string, string, error) {
	goModPath, err := p.FindGoModFile(startDir)
	if err != nil {
		return "", "", err
	}
	modulePath, err := p.ParseModuleName(goModPath)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(goModPath), modulePath, nil
}
