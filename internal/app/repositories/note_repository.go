package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pucknotes/server/internal/app/listing"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/db"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/pucknotes/server/internal/pkg/logger"
)

// NoteRepository handles database operations for notes
type NoteRepository struct {
	db *db.PostgresDB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(database *db.PostgresDB) *NoteRepository {
	return &NoteRepository{db: database}
}

// scanNote reads a row laid out as listing.NoteColumns
func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	err := row.Scan(
		&n.ID, &n.Title, &n.Description, &n.OwnerID, &n.FileID, &n.Link, &n.Tags,
		&n.SectionID, &n.CourseID, &n.MajorID, &n.SchoolID, &n.SemesterID,
		&n.CreatedAt, &n.TotalLikes, &n.Anonymous,
	)
	if err != nil {
		return nil, notFound(err, "note")
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

// Create inserts a note and fills in its id and creation time
func (r *NoteRepository) Create(ctx context.Context, n *models.Note) error {
	sql, args, err := psql.Insert("notes").
		Columns("title", "description", "owner_id", "file_id", "link", "tags",
			"section_id", "course_id", "major_id", "school_id", "semester_id", "anonymous").
		Values(n.Title, n.Description, n.OwnerID, n.FileID, n.Link, n.Tags,
			n.SectionID, n.CourseID, n.MajorID, n.SchoolID, n.SemesterID, n.Anonymous).
		Suffix("RETURNING id, created_at, total_likes").
		ToSql()
	if err != nil {
		return buildErr("create note", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.CreatedAt, &n.TotalLikes); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// GetByID retrieves a single note
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	sql, args, err := psql.Select(listing.NoteColumns...).From("notes n").Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		return nil, buildErr("get note", err)
	}
	return scanNote(r.db.Pool.QueryRow(ctx, sql, args...))
}

// Exists reports whether a note with id exists
func (r *NoteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notes WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check note exists: %w", err)
	}
	return exists, nil
}

// Update writes every mutable column of n. The like counter is never touched here.
func (r *NoteRepository) Update(ctx context.Context, n *models.Note) error {
	sql, args, err := psql.Update("notes").
		Set("title", n.Title).
		Set("description", n.Description).
		Set("file_id", n.FileID).
		Set("link", n.Link).
		Set("tags", n.Tags).
		Set("section_id", n.SectionID).
		Set("course_id", n.CourseID).
		Set("major_id", n.MajorID).
		Set("school_id", n.SchoolID).
		Set("semester_id", n.SemesterID).
		Set("anonymous", n.Anonymous).
		Where(squirrel.Eq{"id": n.ID}).
		ToSql()
	if err != nil {
		return buildErr("update note", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("note not found")
	}
	return nil
}

// Delete removes the note together with its comments and every like on either, atomically
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM likes
			WHERE item_kind = 'comment' AND item_id IN (SELECT id FROM comments WHERE note_id = $1)`, id); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE item_kind = 'note' AND item_id = $1`, id); err != nil {
			return fmt.Errorf("delete note likes: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewResourceNotFoundError("note not found")
		}
		return nil
	})
}

// Find runs a listing query and returns full notes
func (r *NoteRepository) Find(ctx context.Context, q listing.Query) ([]*models.Note, error) {
	b, err := listing.NoteSchema.SelectObjects(q)
	if err != nil {
		return nil, err
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr("list notes", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// FindIDs runs a listing query and returns only ids
func (r *NoteRepository) FindIDs(ctx context.Context, q listing.Query) ([]int64, error) {
	b, err := listing.NoteSchema.SelectIDs(q)
	if err != nil {
		return nil, err
	}
	return queryIDs(ctx, r.db.Pool, b)
}

// Count runs a listing query and returns the number of matches
func (r *NoteRepository) Count(ctx context.Context, q listing.Query) (int64, error) {
	b, err := listing.NoteSchema.SelectCount(q)
	if err != nil {
		return 0, err
	}
	return queryCount(ctx, r.db.Pool, b)
}
