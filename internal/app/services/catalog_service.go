package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/apperrors"
)

// CatalogService resolves catalog entities by id or by their human readable key
type CatalogService interface {
	Exists(ctx context.Context, level models.CatalogLevel, id int64) (bool, error)
	ResolveKey(ctx context.Context, level models.CatalogLevel, key string) (int64, error)
	ResolveSection(ctx context.Context, sectionID int64) (*models.CatalogContext, error)
}

type catalogServiceImpl struct {
	catalogRepo CatalogRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo CatalogRepository) CatalogService {
	return &catalogServiceImpl{catalogRepo: catalogRepo}
}

func (s *catalogServiceImpl) Exists(ctx context.Context, level models.CatalogLevel, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	ok, err := s.catalogRepo.Exists(ctx, level, id)
	if err != nil {
		return false, fmt.Errorf("error checking %s: %w", level, err)
	}
	return ok, nil
}

// ResolveKey maps a name, code or number onto an id. Unknown keys are not found.
func (s *catalogServiceImpl) ResolveKey(ctx context.Context, level models.CatalogLevel, key string) (int64, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, apperrors.NewResourceNotFoundError(string(level) + " not found")
	}
	return s.catalogRepo.IDByKey(ctx, level, key)
}

// ResolveSection returns the full ancestor chain of a section
func (s *catalogServiceImpl) ResolveSection(ctx context.Context, sectionID int64) (*models.CatalogContext, error) {
	if sectionID <= 0 {
		return nil, apperrors.NewResourceNotFoundError("section not found")
	}
	return s.catalogRepo.SectionContext(ctx, sectionID)
}
