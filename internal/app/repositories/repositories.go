package repositories

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pucknotes/server/internal/db"
	"github.com/pucknotes/server/internal/pkg/apperrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository *AccountRepository
	CatalogRepository *CatalogRepository
	NoteRepository    *NoteRepository
	CommentRepository *CommentRepository
	LikeRepository    *LikeRepository
	ReportRepository  *ReportRepository
	FileRepository    *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		AccountRepository: NewAccountRepository(database.Pool),
		CatalogRepository: NewCatalogRepository(database.Pool),
		NoteRepository:    NewNoteRepository(database),
		CommentRepository: NewCommentRepository(database),
		LikeRepository:    NewLikeRepository(database.Pool),
		ReportRepository:  NewReportRepository(database.Pool),
		FileRepository:    NewFileRepository(database.Pool),
	}
}

// psql is the statement builder every repository starts from
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// notFound maps pgx.ErrNoRows onto the resource-not-found category
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError(what + " not found")
	}
	return err
}

func buildErr(op string, err error) error {
	return fmt.Errorf("build %s query: %w", op, err)
}
