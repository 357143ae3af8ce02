package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/apperrors"
)

// FileRepository handles database operations for file metadata
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// GetByID retrieves a file by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := `
		SELECT id, file_name, object_key, content_type, size, COALESCE(uploaded_by, 0), created_at
		FROM files
		WHERE id = $1
	`

	var file models.File
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.FileName,
		&file.ObjectKey,
		&file.ContentType,
		&file.Size,
		&file.UploadedBy,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "file")
	}

	return &file, nil
}

// Create inserts the metadata row and fills in its id
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (file_name, object_key, content_type, size, uploaded_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, 0))
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		file.FileName,
		file.ObjectKey,
		file.ContentType,
		file.Size,
		file.UploadedBy,
	).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	return nil
}

// Delete deletes a file row
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
