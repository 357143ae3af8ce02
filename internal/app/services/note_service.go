package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pucknotes/server/internal/app/auth"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// NoteService defines the interface for note operations
type NoteService interface {
	CreateNote(ctx context.Context, acct *models.Account, req *dto.CreateNoteRequest, upload *dto.Upload) (*models.Note, error)
	GetNote(ctx context.Context, id int64) (*models.Note, error)
	GetNoteFile(ctx context.Context, id int64) (*models.File, io.ReadCloser, error)
	UpdateNote(ctx context.Context, acct *models.Account, id int64, req *dto.UpdateNoteRequest, upload *dto.Upload) (*models.Note, error)
	DeleteNote(ctx context.Context, acct *models.Account, id int64) error
}

// noteServiceImpl implements NoteService
type noteServiceImpl struct {
	noteRepo NoteRepository
	catalog  CatalogService
	files    FileService
	logger   zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo NoteRepository, catalog CatalogService, files FileService, logger zerolog.Logger) NoteService {
	return &noteServiceImpl{
		noteRepo: noteRepo,
		catalog:  catalog,
		files:    files,
		logger:   logger,
	}
}

// RequirePoster is the post-permission gate shared by the note and comment endpoints
func RequirePoster(acct *models.Account, what string) error {
	if acct == nil {
		return apperrors.NewForbiddenError("you must be logged in to post " + what)
	}
	if !auth.CanPost(acct) {
		return apperrors.NewForbiddenError("your account is not allowed to post " + what)
	}
	return nil
}

func normalizeLink(link *string) *string {
	if link == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*link)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// CreateNote publishes a note under the acting account
func (s *noteServiceImpl) CreateNote(ctx context.Context, acct *models.Account, req *dto.CreateNoteRequest, upload *dto.Upload) (*models.Note, error) {
	if err := RequirePoster(acct, "notes"); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewInvalidFieldError("title", "title is required")
	}

	cc, err := s.catalog.ResolveSection(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	ownerID := acct.ID
	note := &models.Note{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     &ownerID,
		Link:        normalizeLink(req.Link),
		Tags:        models.NormalizeTags(req.Tags),
		Anonymous:   req.Anonymous,
	}
	note.ApplyContext(*cc)

	if upload != nil {
		file, err := s.files.Store(ctx, acct.ID, upload)
		if err != nil {
			return nil, err
		}
		note.FileID = &file.ID
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		if note.FileID != nil {
			s.deleteFile(ctx, *note.FileID)
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	s.logger.Info().Int64("noteID", note.ID).Int64("ownerID", acct.ID).Int64("sectionID", note.SectionID).Msg("Note created")
	return note, nil
}

// GetNote returns a single note with the owner hidden when the note is anonymous
func (s *noteServiceImpl) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	if id <= 0 {
		return nil, apperrors.NewInvalidFieldError("id", "invalid note id")
	}
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Anonymize()
	return note, nil
}

// GetNoteFile opens the attachment of a note
func (s *noteServiceImpl) GetNoteFile(ctx context.Context, id int64) (*models.File, io.ReadCloser, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if note.FileID == nil {
		return nil, nil, apperrors.NewResourceNotFoundError("note has no file")
	}
	return s.files.Fetch(ctx, *note.FileID)
}

// loadForMutation fetches the note and checks that acct may change it
func (s *noteServiceImpl) loadForMutation(ctx context.Context, acct *models.Account, id int64) (*models.Note, error) {
	if id <= 0 {
		return nil, apperrors.NewInvalidFieldError("id", "invalid note id")
	}
	if acct == nil {
		return nil, apperrors.NewForbiddenError("you must be logged in")
	}
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateNote(acct, note) {
		return nil, apperrors.NewForbiddenError("you are not allowed to modify this note")
	}
	return note, nil
}

// UpdateNote applies the supplied fields. A new section re-snapshots the catalog ids and
// a new upload replaces the old file.
func (s *noteServiceImpl) UpdateNote(ctx context.Context, acct *models.Account, id int64, req *dto.UpdateNoteRequest, upload *dto.Upload) (*models.Note, error) {
	note, err := s.loadForMutation(ctx, acct, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewInvalidFieldError("title", "title cannot be empty")
		}
		note.Title = title
	}
	if req.Description != nil {
		note.Description = strings.TrimSpace(*req.Description)
	}
	if req.Link != nil {
		note.Link = normalizeLink(req.Link)
	}
	if req.Tags != nil {
		note.Tags = models.NormalizeTags(*req.Tags)
	}
	if req.Anonymous != nil {
		note.Anonymous = *req.Anonymous
	}
	if req.SectionID != nil && *req.SectionID != note.SectionID {
		cc, err := s.catalog.ResolveSection(ctx, *req.SectionID)
		if err != nil {
			return nil, err
		}
		note.ApplyContext(*cc)
	}

	var replaced *int64
	if upload != nil {
		file, err := s.files.Store(ctx, acct.ID, upload)
		if err != nil {
			return nil, err
		}
		replaced = note.FileID
		note.FileID = &file.ID
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		if upload != nil {
			s.deleteFile(ctx, *note.FileID)
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	if replaced != nil {
		s.deleteFile(ctx, *replaced)
	}

	s.logger.Info().Int64("noteID", note.ID).Int64("actorID", acct.ID).Msg("Note updated")
	note.Anonymize()
	return note, nil
}

// DeleteNote removes the note, then its file on a best effort basis
func (s *noteServiceImpl) DeleteNote(ctx context.Context, acct *models.Account, id int64) error {
	note, err := s.loadForMutation(ctx, acct, id)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	if note.FileID != nil {
		s.deleteFile(ctx, *note.FileID)
	}

	s.logger.Info().Int64("noteID", note.ID).Int64("actorID", acct.ID).Msg("Note deleted")
	return nil
}

// deleteFile is best effort: failures are logged and swallowed
func (s *noteServiceImpl) deleteFile(ctx context.Context, fileID int64) {
	if err := s.files.Delete(ctx, fileID); err != nil {
		s.logger.Warn().Err(err).Int64("fileID", fileID).Msg("Failed to delete note file")
	}
}
