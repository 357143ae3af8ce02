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
	"github.com/pucknotes/server/internal/pkg/dberrors"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *db.PostgresDB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(database *db.PostgresDB) *CommentRepository {
	return &CommentRepository{db: database}
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.AccountID, &c.NoteID, &c.Description, &c.CreatedAt, &c.TotalLikes); err != nil {
		return nil, notFound(err, "comment")
	}
	return &c, nil
}

// Create inserts a comment. A note deleted in the meantime surfaces as not found.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	sql, args, err := psql.Insert("comments").
		Columns("account_id", "note_id", "description").
		Values(c.AccountID, c.NoteID, c.Description).
		Suffix("RETURNING id, created_at, total_likes").
		ToSql()
	if err != nil {
		return buildErr("create comment", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt, &c.TotalLikes); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("note not found")
		}
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a single comment
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := psql.Select(listing.CommentColumns...).From("comments c").Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, buildErr("get comment", err)
	}
	return scanComment(r.db.Pool.QueryRow(ctx, sql, args...))
}

// Exists reports whether a comment with id exists
func (r *CommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check comment exists: %w", err)
	}
	return exists, nil
}

// UpdateBody replaces the text of a comment
func (r *CommentRepository) UpdateBody(ctx context.Context, id int64, body string) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE comments SET description = $1 WHERE id = $2`, body, id)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("comment not found")
	}
	return nil
}

// Delete removes the comment and its likes atomically
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE item_kind = 'comment' AND item_id = $1`, id); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewResourceNotFoundError("comment not found")
		}
		return nil
	})
}

// Find runs a listing query and returns full comments
func (r *CommentRepository) Find(ctx context.Context, q listing.Query) ([]*models.Comment, error) {
	b, err := listing.CommentSchema.SelectObjects(q)
	if err != nil {
		return nil, err
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr("list comments", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// FindIDs runs a listing query and returns only ids
func (r *CommentRepository) FindIDs(ctx context.Context, q listing.Query) ([]int64, error) {
	b, err := listing.CommentSchema.SelectIDs(q)
	if err != nil {
		return nil, err
	}
	return queryIDs(ctx, r.db.Pool, b)
}

// Count runs a listing query and returns the number of matches
func (r *CommentRepository) Count(ctx context.Context, q listing.Query) (int64, error) {
	b, err := listing.CommentSchema.SelectCount(q)
	if err != nil {
		return 0, err
	}
	return queryCount(ctx, r.db.Pool, b)
}
