package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/pucknotes/server/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// FileService ties the metadata rows in the files table to the objects in the blob store
type FileService interface {
	Store(ctx context.Context, uploaderID int64, upload *dto.Upload) (*models.File, error)
	Fetch(ctx context.Context, fileID int64) (*models.File, io.ReadCloser, error)
	Delete(ctx context.Context, fileID int64) error
}

type fileServiceImpl struct {
	fileRepo FileRepository
	store    filestorage.ObjectStore
	logger   zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(fileRepo FileRepository, store filestorage.ObjectStore, logger zerolog.Logger) FileService {
	return &fileServiceImpl{
		fileRepo: fileRepo,
		store:    store,
		logger:   logger,
	}
}

// objectKey generates a collision free key that still hints at the original name
func objectKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := slug.Make(strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	return uuid.NewString() + "-" + base + ext
}

// Store writes the upload to the blob store and records its metadata
func (s *fileServiceImpl) Store(ctx context.Context, uploaderID int64, upload *dto.Upload) (*models.File, error) {
	if upload == nil || upload.Reader == nil {
		return nil, apperrors.NewInvalidFieldError("file", "file is empty")
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := objectKey(upload.FileName)
	if err := s.store.Put(ctx, key, upload.Reader, upload.Size, contentType); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to store uploaded file")
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	file := &models.File{
		FileName:    filepath.Base(upload.FileName),
		ObjectKey:   key,
		ContentType: contentType,
		Size:        upload.Size,
		UploadedBy:  uploaderID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if rmErr := s.store.Remove(ctx, key); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("key", key).Msg("Failed to remove orphaned object")
		}
		return nil, fmt.Errorf("error recording file: %w", err)
	}

	s.logger.Debug().Int64("fileID", file.ID).Str("key", key).Msg("File stored")
	return file, nil
}

// Fetch opens a stored file. The caller closes the reader.
func (s *fileServiceImpl) Fetch(ctx context.Context, fileID int64) (*models.File, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Get(ctx, file.ObjectKey)
	if err != nil {
		if errors.Is(err, filestorage.ErrObjectNotFound) {
			return nil, nil, apperrors.NewResourceNotFoundError("file not found")
		}
		return nil, nil, fmt.Errorf("error reading file: %w", err)
	}
	return file, rc, nil
}

// Delete removes the metadata row and the object. An already missing file is not an error.
func (s *fileServiceImpl) Delete(ctx context.Context, fileID int64) error {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil
		}
		return err
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil && !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if err := s.store.Remove(ctx, file.ObjectKey); err != nil {
		return fmt.Errorf("error deleting file object: %w", err)
	}

	s.logger.Debug().Int64("fileID", fileID).Msg("File deleted")
	return nil
}
