package listing

// Filterable note fields
const (
	NoteTitle       Field = "title"
	NoteDescription Field = "description"
	NoteOwner       Field = "owner"
	NoteSection     Field = "section"
	NoteCourse      Field = "course"
	NoteMajor       Field = "major"
	NoteSchool      Field = "school"
	NoteSemester    Field = "semester"
	NoteTags        Field = "tags"
	NoteAnonymous   Field = "anonymous"
)

// Filterable comment fields
const (
	CommentNote  Field = "note"
	CommentOwner Field = "owner"
	CommentBody  Field = "body"
)

// NoteColumns is the projection scanned by the note repository
var NoteColumns = []string{
	"n.id", "n.title", "n.description", "n.owner_id", "n.file_id", "n.link", "n.tags",
	"n.section_id", "n.course_id", "n.major_id", "n.school_id", "n.semester_id",
	"n.created_at", "n.total_likes", "n.anonymous",
}

// CommentColumns is the projection scanned by the comment repository
var CommentColumns = []string{
	"c.id", "c.account_id", "c.note_id", "c.description", "c.created_at", "c.total_likes",
}

var (
	dateSort  = SortColumn{Expr: "n.created_at"}
	likesSort = SortColumn{Expr: "n.total_likes"}
	yearSort  = SortColumn{Expr: "sem.year", Join: "semesters sem ON sem.id = n.semester_id"}
)

// NoteSchema maps note fields and sort keys. Sort keys accept the short and the long names.
var NoteSchema = Schema{
	From:     "notes n",
	IDColumn: "n.id",
	Columns:  NoteColumns,
	Fields: map[Field]string{
		NoteTitle:       "n.title",
		NoteDescription: "n.description",
		NoteOwner:       "n.owner_id",
		NoteSection:     "n.section_id",
		NoteCourse:      "n.course_id",
		NoteMajor:       "n.major_id",
		NoteSchool:      "n.school_id",
		NoteSemester:    "n.semester_id",
		NoteTags:        "n.tags",
		NoteAnonymous:   "n.anonymous",
	},
	SortKeys: map[string]SortColumn{
		"title":       {Expr: "n.title"},
		"date":        dateSort,
		"createdDate": dateSort,
		"likes":       likesSort,
		"totalLikes":  likesSort,
		"semester":    yearSort,
		"year":        yearSort,
	},
}

// CommentSchema maps comment fields and sort keys
var CommentSchema = Schema{
	From:     "comments c",
	IDColumn: "c.id",
	Columns:  CommentColumns,
	Fields: map[Field]string{
		CommentNote:  "c.note_id",
		CommentOwner: "c.account_id",
		CommentBody:  "c.description",
	},
	SortKeys: map[string]SortColumn{
		"date":        {Expr: "c.created_at"},
		"createdDate": {Expr: "c.created_at"},
		"likes":       {Expr: "c.total_likes"},
		"totalLikes":  {Expr: "c.total_likes"},
	},
}
