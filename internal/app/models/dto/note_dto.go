package dto

// CreateNoteRequest carries the form fields of a new note
type CreateNoteRequest struct {
	Title       string   `form:"title" binding:"required,max=200"`
	Description string   `form:"description" binding:"max=5000"`
	Link        *string  `form:"link" binding:"omitempty,url"`
	SectionID   int64    `form:"sectionID" binding:"required,min=1"`
	Tags        []string `form:"tags"`
	Anonymous   bool     `form:"anonymous"`
}

// UpdateNoteRequest holds the fields to change. Nil means keep.
type UpdateNoteRequest struct {
	Title       *string   `form:"title" binding:"omitempty,min=1,max=200"`
	Description *string   `form:"description" binding:"omitempty,max=5000"`
	Link        *string   `form:"link" binding:"omitempty,url"`
	SectionID   *int64    `form:"sectionID" binding:"omitempty,min=1"`
	Tags        *[]string `form:"-"`
	Anonymous   *bool     `form:"anonymous"`
}

// NoteListRequest is the query string of a note listing
type NoteListRequest struct {
	Query         string   `form:"query"`
	Tags          []string `form:"tags"`
	OwnerID       *int64   `form:"ownerID"`
	SectionID     *int64   `form:"sectionID"`
	SectionNumber string   `form:"sectionNumber"`
	CourseID      *int64   `form:"courseID"`
	CourseCode    string   `form:"courseCode"`
	MajorID       *int64   `form:"majorID"`
	MajorCode     string   `form:"majorCode"`
	SchoolID      *int64   `form:"schoolID"`
	SchoolName    string   `form:"schoolName"`
	SemesterID    *int64   `form:"semesterID"`
	SemesterName  string   `form:"semesterName"`
	Sort          string   `form:"sort,default=likes"`
	Order         string   `form:"order,default=asc"`
	Return        string   `form:"return,default=id"`
}
