// Package responses merges declared and inferred response metadata.
package responses

import (
	"sort"

	"github.com/toyz/axon-conventions/internal/models"
)

// DefaultStatusCode is used for default responses and unreadable status codes
const DefaultStatusCode = models.DefaultStatusCode

// AggregateStatusCodes merges declared and undocumented metadata into a sorted,
// duplicate-free list of status codes. The result depends only on the set of
// inputs, never on their order.
func AggregateStatusCodes(declared, undocumented []models.ResponseMetadata) []int {
	seen := make(map[int]struct{}, len(declared)+len(undocumented))
	for _, metadata := range declared {
		seen[metadata.StatusCode] = struct{}{}
	}
	for _, metadata := range undocumented {
		if metadata.IsDefaultResponse {
			seen[DefaultStatusCode] = struct{}{}
			continue
		}
		seen[metadata.StatusCode] = struct{}{}
	}

	codes := make([]int, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// SelectOwnExplicitMetadata returns the metadata written directly on owner, in
// declared order. Implicit metadata and metadata inherited from another
// declaration are skipped.
func SelectOwnExplicitMetadata(declared []models.ResponseMetadata, owner models.DeclarationRef) []models.ResponseMetadata {
	var own []models.ResponseMetadata
	for _, metadata := range declared {
		if metadata.IsImplicit {
			continue
		}
		if metadata.AttachedTo != owner {
			continue
		}
		own = append(own, metadata)
	}
	return own
}

// StatusCodeSet returns the normalized codes of metadata as a set
func StatusCodeSet(metadata []models.ResponseMetadata) map[int]struct{} {
	set := make(map[int]struct{}, len(metadata))
	for _, m := range metadata {
		set[m.NormalizedStatusCode()] = struct{}{}
	}
	return set
}

// Undocumented returns the actual metadata whose code is not covered by
// declared, deduplicated by normalized code and kept in first-seen order.
func Undocumented(declared, actual []models.ResponseMetadata) []models.ResponseMetadata {
	documented := StatusCodeSet(declared)
	var result []models.ResponseMetadata
	for _, metadata := range actual {
		code := metadata.NormalizedStatusCode()
		if _, ok := documented[code]; ok {
			continue
		}
		documented[code] = struct{}{}
		result = append(result, metadata)
	}
	return result
}
