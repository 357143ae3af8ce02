package services

import (
	"context"
	"time"

	"github.com/pucknotes/server/internal/app/listing"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/session"
)

// The interfaces below are the slices of the repositories each service needs.
// The pgx repositories in internal/app/repositories satisfy them.

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CatalogRepository interface {
	Exists(ctx context.Context, level models.CatalogLevel, id int64) (bool, error)
	IDByKey(ctx context.Context, level models.CatalogLevel, key string) (int64, error)
	SectionContext(ctx context.Context, sectionID int64) (*models.CatalogContext, error)
}

type NoteRepository interface {
	listing.Source[*models.Note]
	Create(ctx context.Context, n *models.Note) error
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, n *models.Note) error
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	listing.Source[*models.Comment]
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	UpdateBody(ctx context.Context, id int64, body string) error
	Delete(ctx context.Context, id int64) error
}

// LikeRepository must apply Like and Unlike atomically together with the item's counter.
// The bool result reports whether membership changed.
type LikeRepository interface {
	Like(ctx context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error)
	Unlike(ctx context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error)
	HasLiked(ctx context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error)
	TotalLikes(ctx context.Context, kind models.ItemKind, itemID int64) (int64, error)
}

type ReportRepository interface {
	Create(ctx context.Context, r *models.Report) error
	List(ctx context.Context) ([]*models.Report, error)
	Delete(ctx context.Context, id int64) error
}

type FileRepository interface {
	Create(ctx context.Context, f *models.File) error
	GetByID(ctx context.Context, id int64) (*models.File, error)
	Delete(ctx context.Context, id int64) error
}

// SessionStore is the registry of live logins
type SessionStore interface {
	Save(ctx context.Context, sessionID string, accountID int64, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (*session.Data, error)
	Revoke(ctx context.Context, sessionID string) error
}
