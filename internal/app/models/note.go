package models

import (
	"strings"
	"time"
)

// Note is a published study resource attached to a section. The catalog ids are a snapshot
// of the section's ancestry taken when the section was assigned.
type Note struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	OwnerID     *int64    `json:"owner" db:"owner_id"`
	FileID      *int64    `json:"file" db:"file_id"`
	Link        *string   `json:"link" db:"link"`
	Tags        []string  `json:"tags" db:"tags"`
	SectionID   int64     `json:"section" db:"section_id"`
	CourseID    int64     `json:"course" db:"course_id"`
	MajorID     int64     `json:"major" db:"major_id"`
	SchoolID    int64     `json:"school" db:"school_id"`
	SemesterID  int64     `json:"semester" db:"semester_id"`
	CreatedAt   time.Time `json:"createdDate" db:"created_at"`
	TotalLikes  int64     `json:"totalLikes" db:"total_likes"`
	Anonymous   bool      `json:"anonymous" db:"anonymous"`
}

// Anonymize hides the owner of an anonymous note. It only touches the projection,
// never the stored row.
func (n *Note) Anonymize() {
	if n.Anonymous {
		n.OwnerID = nil
	}
}

// IsOwnedBy reports whether accountID authored the note
func (n *Note) IsOwnedBy(accountID int64) bool {
	return n.OwnerID != nil && *n.OwnerID == accountID
}

// ApplyContext copies a resolved catalog chain onto the note
func (n *Note) ApplyContext(c CatalogContext) {
	n.SectionID = c.SectionID
	n.CourseID = c.CourseID
	n.MajorID = c.MajorID
	n.SchoolID = c.SchoolID
	n.SemesterID = c.SemesterID
}

// NormalizeTags trims, drops empties and de-duplicates while keeping first-seen order
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
