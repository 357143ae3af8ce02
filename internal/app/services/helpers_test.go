package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/rs/zerolog"
)

var (
	guest      = &models.Account{ID: 1, Email: "guest@puck.edu", Role: models.RoleGuest}
	restricted = &models.Account{ID: 2, Email: "restricted@puck.edu", Role: models.RoleRestricted}
	alice      = &models.Account{ID: 3, Email: "alice@puck.edu", Role: models.RoleStandard}
	bob        = &models.Account{ID: 4, Email: "bob@puck.edu", Role: models.RoleStandard}
	moderator  = &models.Account{ID: 5, Email: "mod@puck.edu", Role: models.RoleModerator}

	sectionS1 = models.CatalogContext{SectionID: 11, CourseID: 21, MajorID: 31, SchoolID: 41, SemesterID: 51}
	sectionS2 = models.CatalogContext{SectionID: 12, CourseID: 22, MajorID: 31, SchoolID: 41, SemesterID: 51}
)

type testEnv struct {
	accounts *mockAccountRepo
	catalog  *mockCatalogRepo
	notes    *mockNoteRepo
	comments *mockCommentRepo
	likes    *mockLikeRepo
	reports  *mockReportRepo
	files    *mockFileRepo
	store    *recordingStore

	catalogSvc    CatalogService
	fileSvc       FileService
	noteSvc       NoteService
	commentSvc    CommentService
	listingSvc    ListingService
	engagementSvc EngagementService
	reportSvc     ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()

	e := &testEnv{
		accounts: newMockAccountRepo(guest, restricted, alice, bob, moderator),
		catalog:  newMockCatalogRepo(),
		notes:    newMockNoteRepo(),
		comments: newMockCommentRepo(),
		reports:  newMockReportRepo(),
		files:    newMockFileRepo(),
		store:    newRecordingStore(),
	}
	e.likes = newMockLikeRepo(e.notes, e.comments)
	e.catalog.addSection(sectionS1, "S1")
	e.catalog.addSection(sectionS2, "S2")

	e.catalogSvc = NewCatalogService(e.catalog)
	e.fileSvc = NewFileService(e.files, e.store, log)
	e.noteSvc = NewNoteService(e.notes, e.catalogSvc, e.fileSvc, log)
	e.commentSvc = NewCommentService(e.comments, e.notes, log)
	e.listingSvc = NewListingService(e.catalogSvc, e.accounts, e.notes, e.comments, log)
	e.engagementSvc = NewEngagementService(e.likes, e.notes, e.comments, log)
	e.reportSvc = NewReportService(e.reports, e.notes, e.comments, log)
	return e
}

// mustCreateNote publishes a note as acct or fails the test
func (e *testEnv) mustCreateNote(t *testing.T, acct *models.Account, title string, section int64, tags ...string) *models.Note {
	t.Helper()
	note, err := e.noteSvc.CreateNote(context.Background(), acct, &dto.CreateNoteRequest{
		Title:     title,
		SectionID: section,
		Tags:      tags,
	}, nil)
	if err != nil {
		t.Fatalf("CreateNote(%q) failed: %v", title, err)
	}
	return note
}

func upload(name, body string) *dto.Upload {
	return &dto.Upload{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}
