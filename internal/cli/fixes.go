package cli

import (
	"bytes"
	"fmt"
	"go/token"
	"os"
	"sort"

	"golang.org/x/tools/go/analysis"

	axonerrors "github.com/toyz/axon-conventions/internal/errors"
	"github.com/toyz/axon-conventions/internal/utils"
)

// offsetEdit is a text edit resolved to byte offsets in one file
type offsetEdit struct {
	start, end int
	text       []byte
}

func (e offsetEdit) equal(other offsetEdit) bool {
	return e.start == other.start && e.end == other.end && bytes.Equal(e.text, other.text)
}

// conflicts reports whether two distinct edits cannot both be applied.
// Insertions at the same offset conflict unless they are identical.
func (e offsetEdit) conflicts(other offsetEdit) bool {
	if e.start == e.end && other.start == other.end {
		return e.start == other.start && !bytes.Equal(e.text, other.text)
	}
	return e.start < other.end && other.start < e.end
}

// fixSet collects suggested fixes, keeping each fix atomic: a fix whose edits
// conflict with an accepted fix is skipped as a whole.
type fixSet struct {
	fset    *token.FileSet
	edits   map[string][]offsetEdit
	applied int
	skipped int
}

func newFixSet(fset *token.FileSet) *fixSet {
	return &fixSet{fset: fset, edits: make(map[string][]offsetEdit)}
}

// add accepts fix unless it conflicts with an earlier one. Edits identical to
// accepted ones are folded into them.
func (s *fixSet) add(fix analysis.SuggestedFix) bool {
	type fileEdit struct {
		file string
		edit offsetEdit
	}

	var pending []fileEdit
	for _, edit := range fix.TextEdits {
		start := s.fset.Position(edit.Pos)
		end := start
		if edit.End.IsValid() {
			end = s.fset.Position(edit.End)
		}
		candidate := fileEdit{
			file: start.Filename,
			edit: offsetEdit{start: start.Offset, end: end.Offset, text: edit.NewText},
		}

		duplicate := false
		for _, accepted := range s.edits[candidate.file] {
			if accepted.equal(candidate.edit) {
				duplicate = true
				break
			}
			if accepted.conflicts(candidate.edit) {
				s.skipped++
				return false
			}
		}
		for _, other := range pending {
			if other.file == candidate.file && other.edit.conflicts(candidate.edit) {
				s.skipped++
				return false
			}
		}
		if !duplicate {
			pending = append(pending, candidate)
		}
	}

	if len(pending) == 0 {
		return false
	}
	for _, p := range pending {
		s.edits[p.file] = append(s.edits[p.file], p.edit)
	}
	s.applied++
	return true
}

// files returns the names of files with accepted edits, sorted
func (s *fixSet) files() []string {
	names := make([]string, 0, len(s.edits))
	for name := range s.edits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// write applies the accepted edits to disk and gofmts every changed file. A
// file that fails does not stop the others; every failure is returned.
func (s *fixSet) write() ([]string, error) {
	var written []string
	failures := &axonerrors.MultipleErrors{}
	for _, name := range s.files() {
		content, err := os.ReadFile(name)
		if err != nil {
			failures.Add(axonerrors.WrapFileSystemError("read", name, err))
			continue
		}

		edited, err := applyEdits(content, s.edits[name])
		if err != nil {
			failures.Add(axonerrors.WrapFixError(name, err))
			continue
		}

		if err := utils.FormatAndWriteGoFile(name, edited); err != nil {
			failures.Add(err)
			continue
		}
		written = append(written, name)
	}
	return written, failures.ErrorOrNil()
}

// applyEdits applies non-conflicting edits front to back. Edits sharing a
// start offset keep their acceptance order.
func applyEdits(content []byte, edits []offsetEdit) ([]byte, error) {
	sorted := append([]offsetEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	var out bytes.Buffer
	cursor := 0
	for _, edit := range sorted {
		if edit.start < cursor || edit.end > len(content) || edit.start > edit.end {
			return nil, fmt.Errorf("edit [%d,%d) is out of range", edit.start, edit.end)
		}
		out.Write(content[cursor:edit.start])
		out.Write(edit.text)
		cursor = edit.end
	}
	out.Write(content[cursor:])
	return out.Bytes(), nil
}
