package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pucknotes/server/internal/app/models"
)

type catalogTable struct {
	name string
	key  string
}

// catalogTables maps each catalog level to its table and natural key column
var catalogTables = map[models.CatalogLevel]catalogTable{
	models.LevelSemester: {name: "semesters", key: "name"},
	models.LevelSchool:   {name: "schools", key: "name"},
	models.LevelMajor:    {name: "majors", key: "code"},
	models.LevelCourse:   {name: "courses", key: "code"},
	models.LevelSection:  {name: "sections", key: "number"},
}

// CatalogRepository reads the semester/school/major/course/section tree
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func tableFor(level models.CatalogLevel) (catalogTable, error) {
	t, ok := catalogTables[level]
	if !ok {
		return catalogTable{}, fmt.Errorf("unknown catalog level %q", level)
	}
	return t, nil
}

// Exists reports whether the level has a row with id
func (r *CatalogRepository) Exists(ctx context.Context, level models.CatalogLevel, id int64) (bool, error) {
	t, err := tableFor(level)
	if err != nil {
		return false, err
	}
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, t.name)
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s exists: %w", level, err)
	}
	return exists, nil
}

// IDByKey resolves a natural key (name, code or number) to an id
func (r *CatalogRepository) IDByKey(ctx context.Context, level models.CatalogLevel, key string) (int64, error) {
	t, err := tableFor(level)
	if err != nil {
		return 0, err
	}
	sql, args, err := psql.Select("id").From(t.name).Where(squirrel.Eq{t.key: key}).ToSql()
	if err != nil {
		return 0, buildErr("resolve "+string(level), err)
	}
	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, notFound(err, string(level))
	}
	return id, nil
}

// SectionContext walks a section up to its semester in one statement
func (r *CatalogRepository) SectionContext(ctx context.Context, sectionID int64) (*models.CatalogContext, error) {
	const query = `
		SELECT sec.id, c.id, m.id, sch.id, sem.id
		FROM sections sec
		JOIN courses c ON c.id = sec.course_id
		JOIN majors m ON m.id = c.major_id
		JOIN schools sch ON sch.id = m.school_id
		JOIN semesters sem ON sem.id = sch.semester_id
		WHERE sec.id = $1`

	var cc models.CatalogContext
	err := r.db.QueryRow(ctx, query, sectionID).Scan(&cc.SectionID, &cc.CourseID, &cc.MajorID, &cc.SchoolID, &cc.SemesterID)
	if err != nil {
		return nil, notFound(err, "section")
	}
	return &cc, nil
}

// EnsureSemester inserts the semester if its name is new and returns its id either way
func (r *CatalogRepository) EnsureSemester(ctx context.Context, s *models.Semester) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO semesters (name, season, year) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, s.Name, s.Season, s.Year).Scan(&s.ID)
}

// EnsureSchool inserts the school if its name is new and returns its id either way
func (r *CatalogRepository) EnsureSchool(ctx context.Context, s *models.School) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO schools (name, semester_id) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, s.Name, s.SemesterID).Scan(&s.ID)
}

// EnsureMajor inserts the major if its code is new and returns its id either way
func (r *CatalogRepository) EnsureMajor(ctx context.Context, m *models.Major) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO majors (code, name, school_id) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		RETURNING id`, m.Code, m.Name, m.SchoolID).Scan(&m.ID)
}

// EnsureCourse inserts the course if its code is new and returns its id either way
func (r *CatalogRepository) EnsureCourse(ctx context.Context, c *models.Course) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO courses (code, name, major_id) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		RETURNING id`, c.Code, c.Name, c.MajorID).Scan(&c.ID)
}

// EnsureSection inserts the section if its number is new and returns its id either way
func (r *CatalogRepository) EnsureSection(ctx context.Context, s *models.Section) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO sections (number, professors, course_id) VALUES ($1, $2, $3)
		ON CONFLICT (number) DO UPDATE SET number = EXCLUDED.number
		RETURNING id`, s.Number, s.Professors, s.CourseID).Scan(&s.ID)
}
