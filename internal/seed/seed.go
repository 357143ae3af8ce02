package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/pucknotes/server/internal/app/models"
	appRepos "github.com/pucknotes/server/internal/app/repositories"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/pucknotes/server/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// ModeratorAccount describes the bootstrap moderator. Seeding it is skipped when the
// password is empty.
type ModeratorAccount struct {
	Email    string
	Username string
	Password string
}

// catalogSeed is one section with its full ancestry
type catalogSeed struct {
	semester models.Semester
	school   string
	major    models.Major
	course   models.Course
	section  models.Section
}

var defaultCatalog = []catalogSeed{
	{
		semester: models.Semester{Name: "Fall 2024", Season: "fall", Year: 2024},
		school:   "Puck University",
		major:    models.Major{Code: "CS", Name: "Computer Science"},
		course:   models.Course{Code: "CS101", Name: "Introduction to Programming"},
		section:  models.Section{Number: "CS101-01", Professors: []string{"Ada Lovelace"}},
	},
	{
		semester: models.Semester{Name: "Fall 2024", Season: "fall", Year: 2024},
		school:   "Puck University",
		major:    models.Major{Code: "MATH", Name: "Mathematics"},
		course:   models.Course{Code: "MATH201", Name: "Linear Algebra"},
		section:  models.Section{Number: "MATH201-01", Professors: []string{"Emmy Noether"}},
	},
}

// CreateDefaultData makes sure the catalog has something to attach notes to and that a
// moderator exists. It is idempotent and keeps going after individual failures.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, mod ModeratorAccount, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (catalog, moderator)...")
	var finalErr error

	for _, c := range defaultCatalog {
		if err := ensureSection(ctx, repos.CatalogRepository, c); err != nil {
			lgr.Error().Err(err).Str("section", c.section.Number).Msg("Error creating catalog entry")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if strings.TrimSpace(mod.Password) == "" {
		lgr.Warn().Msg("No moderator password configured, skipping moderator account")
		return finalErr
	}

	hash, err := auth.HashPassword(mod.Password)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	account := &models.Account{
		Email:        mod.Email,
		Username:     mod.Username,
		PasswordHash: hash,
		Role:         models.RoleModerator,
	}
	err = repos.AccountRepository.Create(ctx, account)
	switch {
	case err == nil:
		lgr.Info().Str("email", mod.Email).Msg("Moderator account created")
	case apperrors.Is(err, apperrors.ErrConflict):
		lgr.Debug().Str("email", mod.Email).Msg("Moderator account already exists")
	default:
		lgr.Error().Err(err).Msg("Error creating moderator account")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func ensureSection(ctx context.Context, catalog *appRepos.CatalogRepository, c catalogSeed) error {
	semester := c.semester
	if err := catalog.EnsureSemester(ctx, &semester); err != nil {
		return err
	}
	school := models.School{Name: c.school, SemesterID: semester.ID}
	if err := catalog.EnsureSchool(ctx, &school); err != nil {
		return err
	}
	major := c.major
	major.SchoolID = school.ID
	if err := catalog.EnsureMajor(ctx, &major); err != nil {
		return err
	}
	course := c.course
	course.MajorID = major.ID
	if err := catalog.EnsureCourse(ctx, &course); err != nil {
		return err
	}
	section := c.section
	section.CourseID = course.ID
	return catalog.EnsureSection(ctx, &section)
}
