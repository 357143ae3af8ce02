package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pucknotes/server/internal/app/listing"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

const (
	defaultSortKey   = "likes"
	defaultSortOrder = "asc"
)

// ListingService validates listing parameters and runs them through the listing engine
type ListingService interface {
	ListNotes(ctx context.Context, req *dto.NoteListRequest) (*listing.Result, error)
	ListComments(ctx context.Context, req *dto.CommentListRequest) (*listing.Result, error)
}

type listingServiceImpl struct {
	catalog     CatalogService
	accountRepo AccountRepository
	noteRepo    NoteRepository
	notes       *listing.Engine[*models.Note]
	comments    *listing.Engine[*models.Comment]
	logger      zerolog.Logger
}

// NewListingService creates a new ListingService
func NewListingService(
	catalog CatalogService,
	accountRepo AccountRepository,
	noteRepo NoteRepository,
	commentRepo CommentRepository,
	logger zerolog.Logger,
) ListingService {
	return &listingServiceImpl{
		catalog:     catalog,
		accountRepo: accountRepo,
		noteRepo:    noteRepo,
		notes:       listing.NewEngine[*models.Note](noteRepo),
		comments:    listing.NewEngine[*models.Comment](commentRepo),
		logger:      logger,
	}
}

// dimension is one catalog filter that may arrive as an id, a key, or both
type dimension struct {
	level    models.CatalogLevel
	idField  string
	id       *int64
	keyField string
	key      string
	field    listing.Field
}

// resolve validates the id and the key. When both are given the id wins.
func (s *listingServiceImpl) resolve(ctx context.Context, d dimension) (*int64, error) {
	id := d.id
	if id != nil {
		ok, err := s.catalog.Exists(ctx, d.level, *id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NewInvalidFieldError(d.idField, fmt.Sprintf("%s %d does not exist", d.level, *id))
		}
	}

	if key := strings.TrimSpace(d.key); key != "" {
		resolved, err := s.catalog.ResolveKey(ctx, d.level, key)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, apperrors.NewInvalidFieldError(d.keyField, fmt.Sprintf("%s %q does not exist", d.level, key))
			}
			return nil, err
		}
		if id == nil {
			id = &resolved
		}
	}
	return id, nil
}

func (s *listingServiceImpl) requireAccount(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.accountRepo.Exists(ctx, *id)
	if err != nil {
		return fmt.Errorf("error checking account: %w", err)
	}
	if !ok {
		return apperrors.NewResourceNotFoundError("account not found")
	}
	return nil
}

// splitTags accepts both repeated parameters and comma separated values
func splitTags(raw []string) []string {
	var tags []string
	for _, r := range raw {
		tags = append(tags, strings.Split(r, ",")...)
	}
	return models.NormalizeTags(tags)
}

func sortDefaults(key, order string) (string, string) {
	if strings.TrimSpace(key) == "" {
		key = defaultSortKey
	}
	if strings.TrimSpace(order) == "" {
		order = defaultSortOrder
	}
	return key, order
}

// ListNotes resolves every filter before querying, so an invalid filter never yields an
// empty result instead of an error
func (s *listingServiceImpl) ListNotes(ctx context.Context, req *dto.NoteListRequest) (*listing.Result, error) {
	if err := s.requireAccount(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	dims := []dimension{
		{models.LevelSection, "sectionID", req.SectionID, "sectionNumber", req.SectionNumber, listing.NoteSection},
		{models.LevelCourse, "courseID", req.CourseID, "courseCode", req.CourseCode, listing.NoteCourse},
		{models.LevelMajor, "majorID", req.MajorID, "majorCode", req.MajorCode, listing.NoteMajor},
		{models.LevelSchool, "schoolID", req.SchoolID, "schoolName", req.SchoolName, listing.NoteSchool},
		{models.LevelSemester, "semesterID", req.SemesterID, "semesterName", req.SemesterName, listing.NoteSemester},
	}

	q := listing.NewQuery().Eq(listing.NoteOwner, req.OwnerID)
	if req.OwnerID != nil {
		// anonymous notes must not be attributable through the owner filter
		q.Where(listing.Equals{Field: listing.NoteAnonymous, Value: false})
	}
	for _, d := range dims {
		id, err := s.resolve(ctx, d)
		if err != nil {
			return nil, err
		}
		q.Eq(d.field, id)
	}

	sortKey, order := sortDefaults(req.Sort, req.Order)
	q.AnyOf(listing.NoteTags, splitTags(req.Tags)).
		Search(req.Query, listing.NoteTitle, listing.NoteDescription).
		SortBy(sortKey, order).
		Return(req.Return)

	s.logger.Debug().Int("clauses", len(q.Clauses)).Str("sort", sortKey).Str("shape", string(q.Shape)).Msg("Listing notes")
	return s.notes.Run(ctx, q)
}

// ListComments lists comments of a note and/or an author
func (s *listingServiceImpl) ListComments(ctx context.Context, req *dto.CommentListRequest) (*listing.Result, error) {
	if req.NoteID != nil {
		ok, err := s.noteRepo.Exists(ctx, *req.NoteID)
		if err != nil {
			return nil, fmt.Errorf("error checking note: %w", err)
		}
		if !ok {
			return nil, apperrors.NewResourceNotFoundError("note not found")
		}
	}
	if err := s.requireAccount(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	sortKey, order := sortDefaults(req.Sort, req.Order)
	q := listing.NewQuery().
		Eq(listing.CommentNote, req.NoteID).
		Eq(listing.CommentOwner, req.OwnerID).
		Search(req.Query, listing.CommentBody).
		SortBy(sortKey, order).
		Return(req.Return)

	return s.comments.Run(ctx, q)
}
