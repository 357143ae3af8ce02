package models

// Semester is the root of the catalog tree
type Semester struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Season string `json:"season" db:"season"`
	Year   int    `json:"year" db:"year"`
}

type School struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	SemesterID int64  `json:"semesterId" db:"semester_id"`
}

type Major struct {
	ID       int64  `json:"id" db:"id"`
	Code     string `json:"code" db:"code"`
	Name     string `json:"name" db:"name"`
	SchoolID int64  `json:"schoolId" db:"school_id"`
}

type Course struct {
	ID      int64  `json:"id" db:"id"`
	Code    string `json:"code" db:"code"`
	Name    string `json:"name" db:"name"`
	MajorID int64  `json:"majorId" db:"major_id"`
}

// Section is the leaf a note is attached to
type Section struct {
	ID         int64    `json:"id" db:"id"`
	Number     string   `json:"number" db:"number"`
	Professors []string `json:"professors" db:"professors"`
	CourseID   int64    `json:"courseId" db:"course_id"`
}

// CatalogContext is the resolved ancestor chain of a section
type CatalogContext struct {
	SectionID  int64
	CourseID   int64
	MajorID    int64
	SchoolID   int64
	SemesterID int64
}

// CatalogLevel names one level of the catalog tree
type CatalogLevel string

const (
	LevelSemester CatalogLevel = "semester"
	LevelSchool   CatalogLevel = "school"
	LevelMajor    CatalogLevel = "major"
	LevelCourse   CatalogLevel = "course"
	LevelSection  CatalogLevel = "section"
)
