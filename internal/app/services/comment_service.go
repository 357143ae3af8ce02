package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pucknotes/server/internal/app/auth"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	CreateComment(ctx context.Context, acct *models.Account, req *dto.CreateCommentRequest) (*models.Comment, error)
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	UpdateComment(ctx context.Context, acct *models.Account, id int64, body string) (*models.Comment, error)
	DeleteComment(ctx context.Context, acct *models.Account, id int64) error
}

type commentServiceImpl struct {
	commentRepo CommentRepository
	noteRepo    NoteRepository
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo CommentRepository, noteRepo NoteRepository, logger zerolog.Logger) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		noteRepo:    noteRepo,
		logger:      logger,
	}
}

// CreateComment adds a comment to an existing note
func (s *commentServiceImpl) CreateComment(ctx context.Context, acct *models.Account, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if err := RequirePoster(acct, "comments"); err != nil {
		return nil, err
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, apperrors.NewInvalidFieldError("body", "comment body is required")
	}

	exists, err := s.noteRepo.Exists(ctx, req.NoteID)
	if err != nil {
		return nil, fmt.Errorf("error checking note: %w", err)
	}
	if !exists {
		return nil, apperrors.NewResourceNotFoundError("note not found")
	}

	comment := &models.Comment{
		AccountID:   acct.ID,
		NoteID:      req.NoteID,
		Description: body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	s.logger.Info().Int64("commentID", comment.ID).Int64("noteID", comment.NoteID).Msg("Comment created")
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *commentServiceImpl) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	if id <= 0 {
		return nil, apperrors.NewInvalidFieldError("id", "invalid comment id")
	}
	return s.commentRepo.GetByID(ctx, id)
}

// UpdateComment rewrites the body. Only the author may do this.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, acct *models.Account, id int64, body string) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanEdit(acct, comment.AccountID) {
		return nil, apperrors.NewForbiddenError("you are not allowed to edit this comment")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewInvalidFieldError("body", "comment body is required")
	}

	if err := s.commentRepo.UpdateBody(ctx, id, body); err != nil {
		return nil, fmt.Errorf("error updating comment: %w", err)
	}
	comment.Description = body
	return comment, nil
}

// DeleteComment removes a comment. Authors and moderators may do this.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, acct *models.Account, id int64) error {
	comment, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutate(acct, comment.AccountID) {
		return apperrors.NewForbiddenError("you are not allowed to delete this comment")
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	s.logger.Info().Int64("commentID", id).Int64("actorID", acct.ID).Msg("Comment deleted")
	return nil
}
