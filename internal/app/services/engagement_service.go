package services

import (
	"context"
	"fmt"

	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// EngagementService toggles likes on notes and comments
type EngagementService interface {
	Like(ctx context.Context, acct *models.Account, kind models.ItemKind, itemID int64) error
	Unlike(ctx context.Context, acct *models.Account, kind models.ItemKind, itemID int64) error
	HasLiked(ctx context.Context, acct *models.Account, kind models.ItemKind, itemID int64) (bool, error)
	TotalLikes(ctx context.Context, kind models.ItemKind, itemID int64) (int64, error)
}

type engagementServiceImpl struct {
	likeRepo    LikeRepository
	noteRepo    NoteRepository
	commentRepo CommentRepository
	logger      zerolog.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(likeRepo LikeRepository, noteRepo NoteRepository, commentRepo CommentRepository, logger zerolog.Logger) EngagementService {
	return &engagementServiceImpl{
		likeRepo:    likeRepo,
		noteRepo:    noteRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// ensureItem fails with not found unless the item is live
func (s *engagementServiceImpl) ensureItem(ctx context.Context, kind models.ItemKind, itemID int64) error {
	if itemID <= 0 {
		return apperrors.NewInvalidFieldError("id", fmt.Sprintf("invalid %s id", kind))
	}

	var (
		exists bool
		err    error
	)
	switch kind {
	case models.KindNote:
		exists, err = s.noteRepo.Exists(ctx, itemID)
	case models.KindComment:
		exists, err = s.commentRepo.Exists(ctx, itemID)
	default:
		return apperrors.NewInvalidFieldError("type", fmt.Sprintf("unknown item kind %q", kind))
	}
	if err != nil {
		return fmt.Errorf("error checking %s: %w", kind, err)
	}
	if !exists {
		return apperrors.NewResourceNotFoundError(string(kind) + " not found")
	}
	return nil
}

func (s *engagementServiceImpl) prepare(ctx context.Context, acct *models.Account, kind models.ItemKind, itemID int64) error {
	if acct == nil {
		return apperrors.NewForbiddenError("you must be logged in")
	}
	return s.ensureItem(ctx, kind, itemID)
}

// Like is idempotent: liking twice counts once
func (s *engagementServiceImpl) Like(ctx context.Context, acct *models.Account, kind models.ItemKind, itemID int64) error {
	if err := s.prepare(ctx, acct, kind, itemID); err != nil {
		return err
	}
	changed, err := s.likeRepo.Like(ctx, kind, itemID, acct.ID)
	if err != nil {
		return fmt.Errorf("error liking %s: %w", kind, err)
	}
	s.logger.Debug().Str("kind", string(kind)).Int64("itemID", itemID).Int64("accountID", acct.ID).Bool("changed", changed).Msg("Like")
	return nil
}

// Unlike is idempotent: removing a like that does not exist changes nothing
func (s *engagementServiceImpl) Unlike(ctx context.Context, acct *models.Account, kind models.ItemKind, itemID int64) error {
	if err := s.prepare(ctx, acct, kind, itemID); err != nil {
		return err
	}
	changed, err := s.likeRepo.Unlike(ctx, kind, itemID, acct.ID)
	if err != nil {
		return fmt.Errorf("error unliking %s: %w", kind, err)
	}
	s.logger.Debug().Str("kind", string(kind)).Int64("itemID", itemID).Int64("accountID", acct.ID).Bool("changed", changed).Msg("Unlike")
	return nil
}

// HasLiked checks membership by account id
func (s *engagementServiceImpl) HasLiked(ctx context.Context, acct *models.Account, kind models.ItemKind, itemID int64) (bool, error) {
	if err := s.prepare(ctx, acct, kind, itemID); err != nil {
		return false, err
	}
	return s.likeRepo.HasLiked(ctx, kind, itemID, acct.ID)
}

// TotalLikes reads the cached counter
func (s *engagementServiceImpl) TotalLikes(ctx context.Context, kind models.ItemKind, itemID int64) (int64, error) {
	if err := s.ensureItem(ctx, kind, itemID); err != nil {
		return 0, err
	}
	return s.likeRepo.TotalLikes(ctx, kind, itemID)
}
