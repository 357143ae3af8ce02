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

// ReportService files and manages abuse reports
type ReportService interface {
	CreateReport(ctx context.Context, acct *models.Account, req *dto.CreateReportRequest) (*models.Report, error)
	ListReports(ctx context.Context, acct *models.Account) ([]*models.Report, error)
	DeleteReport(ctx context.Context, acct *models.Account, id int64) error
}

type reportServiceImpl struct {
	reportRepo  ReportRepository
	noteRepo    NoteRepository
	commentRepo CommentRepository
	logger      zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo ReportRepository, noteRepo NoteRepository, commentRepo CommentRepository, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		reportRepo:  reportRepo,
		noteRepo:    noteRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// CreateReport records a report against a live note or comment
func (s *reportServiceImpl) CreateReport(ctx context.Context, acct *models.Account, req *dto.CreateReportRequest) (*models.Report, error) {
	if acct == nil {
		return nil, apperrors.NewForbiddenError("you must be logged in to report content")
	}

	kind, err := models.ParseItemKind(req.Type)
	if err != nil {
		return nil, apperrors.NewInvalidFieldError("type", "type must be note or comment")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewInvalidFieldError("title", "title is required")
	}

	var exists bool
	if kind == models.KindNote {
		exists, err = s.noteRepo.Exists(ctx, req.ItemID)
	} else {
		exists, err = s.commentRepo.Exists(ctx, req.ItemID)
	}
	if err != nil {
		return nil, fmt.Errorf("error checking reported %s: %w", kind, err)
	}
	if !exists {
		return nil, apperrors.NewResourceNotFoundError(string(kind) + " not found")
	}

	report := &models.Report{
		OwnerID:     acct.ID,
		Kind:        kind,
		ItemID:      req.ItemID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("error creating report: %w", err)
	}

	s.logger.Info().Int64("reportID", report.ID).Str("kind", string(kind)).Int64("itemID", report.ItemID).Msg("Report filed")
	return report, nil
}

// ListReports returns every report to moderators
func (s *reportServiceImpl) ListReports(ctx context.Context, acct *models.Account) ([]*models.Report, error) {
	if !auth.CanViewAllReports(acct) {
		return nil, apperrors.NewForbiddenError("only moderators can view reports")
	}
	return s.reportRepo.List(ctx)
}

// DeleteReport removes a handled report
func (s *reportServiceImpl) DeleteReport(ctx context.Context, acct *models.Account, id int64) error {
	if !auth.CanModerate(acct) {
		return apperrors.NewForbiddenError("only moderators can delete reports")
	}
	if id <= 0 {
		return apperrors.NewInvalidFieldError("id", "invalid report id")
	}
	return s.reportRepo.Delete(ctx, id)
}
