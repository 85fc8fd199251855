package attendance

import "context"

// OwnershipResolver answers whether a teacher may act on a class/section.
// Assignments change between requests, so every call hits the store; no
// caching.
type OwnershipResolver struct {
	Assignments AssignmentStore
}

// Owns reports whether at least one teaching assignment exists for the exact
// (teacher, class, section) triple. Absence is not an error; callers turn a
// false result into an authorization failure.
func (r *OwnershipResolver) Owns(ctx context.Context, teacherID, classID, sectionID uint) (bool, error) {
	return r.Assignments.AssignmentExists(ctx, teacherID, classID, sectionID)
}
