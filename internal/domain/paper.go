package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Author represents a paper author with the institution they submitted under.
type Author struct {
	Name        string
	Institution string
}

// String returns a formatted string representation of the author.
func (a Author) String() string {
	if a.Institution == "" {
		return a.Name
	}
	return a.Name + " (" + a.Institution + ")"
}

// Paper represents a submitted conference paper. Papers are immutable after
// ingestion; all derived data (conflict sets, candidate pairs, assignments)
// lives outside the entity.
type Paper struct {
	// ID is the internal identifier assigned at ingestion.
	ID uuid.UUID

	// Title is the paper title as it appears in the submission sheet.
	Title string

	// Authors lists every author row ingested for this title.
	Authors []Author

	// Topics is the deduplicated, order-preserving topic set (at most 3).
	Topics []string
}

// Institutions returns the normalized institutions of all authors, used for
// conflict detection. Empty institutions are skipped: an author without an
// institution cannot create an institutional conflict.
func (p *Paper) Institutions() []string {
	seen := make(map[string]struct{}, len(p.Authors))
	out := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		inst := NormalizeInstitution(a.Institution)
		if inst == "" {
			continue
		}
		if _, ok := seen[inst]; ok {
			continue
		}
		seen[inst] = struct{}{}
		out = append(out, inst)
	}
	return out
}

// NormalizeInstitution normalizes an institution name for equality checks by
// trimming whitespace and lowercasing.
func NormalizeInstitution(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
