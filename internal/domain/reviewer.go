package domain

import "github.com/google/uuid"

// Reviewer represents a member of the reviewing committee. Immutable after
// ingestion.
type Reviewer struct {
	// ID is the internal identifier assigned at ingestion.
	ID uuid.UUID

	// Name is the reviewer's name as it appears in the committee sheet.
	Name string

	// Institution is the reviewer's institution. Optional: some committee
	// exports omit it, in which case the reviewer never conflicts with any
	// paper.
	Institution string

	// Topics is the reviewer's research topic set (unbounded size).
	Topics []string
}

// ConflictsWith reports whether the reviewer shares an institution with any
// of the paper's authors. Institutions are compared in normalized form; a
// reviewer or author without an institution never conflicts.
func (r *Reviewer) ConflictsWith(p *Paper) bool {
	inst := NormalizeInstitution(r.Institution)
	if inst == "" {
		return false
	}
	for _, pi := range p.Institutions() {
		if pi == inst {
			return true
		}
	}
	return false
}
