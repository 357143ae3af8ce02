package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pucknotes/server/internal/app/listing"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/pucknotes/server/internal/pkg/filestorage"
)

// ── Mock AccountRepository ──

type mockAccountRepo struct {
	accounts map[int64]*models.Account
}

func newMockAccountRepo(accounts ...*models.Account) *mockAccountRepo {
	m := &mockAccountRepo{accounts: make(map[int64]*models.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountRepo) GetByID(_ context.Context, id int64) (*models.Account, error) {
	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperrors.NewResourceNotFoundError("account not found")
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("account not found")
}

func (m *mockAccountRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.accounts[id]
	return ok, nil
}

// ── Mock CatalogRepository ──

type mockCatalogRepo struct {
	ids      map[models.CatalogLevel]map[int64]bool
	keys     map[models.CatalogLevel]map[string]int64
	sections map[int64]models.CatalogContext
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		ids:      make(map[models.CatalogLevel]map[int64]bool),
		keys:     make(map[models.CatalogLevel]map[string]int64),
		sections: make(map[int64]models.CatalogContext),
	}
}

func (m *mockCatalogRepo) add(level models.CatalogLevel, id int64, key string) {
	if m.ids[level] == nil {
		m.ids[level] = make(map[int64]bool)
		m.keys[level] = make(map[string]int64)
	}
	m.ids[level][id] = true
	m.keys[level][key] = id
}

// addSection registers a section and its full ancestry under the given ids
func (m *mockCatalogRepo) addSection(cc models.CatalogContext, number string) {
	m.add(models.LevelSemester, cc.SemesterID, "sem-"+strconv.FormatInt(cc.SemesterID, 10))
	m.add(models.LevelSchool, cc.SchoolID, "school-"+strconv.FormatInt(cc.SchoolID, 10))
	m.add(models.LevelMajor, cc.MajorID, "major-"+strconv.FormatInt(cc.MajorID, 10))
	m.add(models.LevelCourse, cc.CourseID, "course-"+strconv.FormatInt(cc.CourseID, 10))
	m.add(models.LevelSection, cc.SectionID, number)
	m.sections[cc.SectionID] = cc
}

func (m *mockCatalogRepo) Exists(_ context.Context, level models.CatalogLevel, id int64) (bool, error) {
	return m.ids[level][id], nil
}

func (m *mockCatalogRepo) IDByKey(_ context.Context, level models.CatalogLevel, key string) (int64, error) {
	if id, ok := m.keys[level][key]; ok {
		return id, nil
	}
	return 0, apperrors.NewResourceNotFoundError(string(level) + " not found")
}

func (m *mockCatalogRepo) SectionContext(_ context.Context, sectionID int64) (*models.CatalogContext, error) {
	if cc, ok := m.sections[sectionID]; ok {
		return &cc, nil
	}
	return nil, apperrors.NewResourceNotFoundError("section not found")
}

// ── Mock NoteRepository ──

type mockNoteRepo struct {
	mu      sync.Mutex
	notes   map[int64]*models.Note
	nextID  int64
	queries int
	failOn  string
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[int64]*models.Note)}
}

func copyNote(n *models.Note) *models.Note {
	cp := *n
	cp.Tags = append([]string(nil), n.Tags...)
	if n.OwnerID != nil {
		owner := *n.OwnerID
		cp.OwnerID = &owner
	}
	if n.FileID != nil {
		file := *n.FileID
		cp.FileID = &file
	}
	return &cp
}

func (m *mockNoteRepo) Create(_ context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "create" {
		return errors.New("insert failed")
	}
	m.nextID++
	n.ID = m.nextID
	n.CreatedAt = time.Unix(1700000000+n.ID, 0).UTC()
	n.TotalLikes = 0
	m.notes[n.ID] = copyNote(n)
	return nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id int64) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notes[id]; ok {
		return copyNote(n), nil
	}
	return nil, apperrors.NewResourceNotFoundError("note not found")
}

func (m *mockNoteRepo) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.notes[id]
	return ok, nil
}

func (m *mockNoteRepo) Update(_ context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "update" {
		return errors.New("update failed")
	}
	old, ok := m.notes[n.ID]
	if !ok {
		return apperrors.NewResourceNotFoundError("note not found")
	}
	cp := copyNote(n)
	cp.TotalLikes = old.TotalLikes
	m.notes[n.ID] = cp
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return apperrors.NewResourceNotFoundError("note not found")
	}
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepo) bumpLikes(id, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notes[id]; ok {
		n.TotalLikes += delta
	}
}

func noteField(n *models.Note, f listing.Field) any {
	switch f {
	case listing.NoteOwner:
		if n.OwnerID == nil {
			return nil
		}
		return *n.OwnerID
	case listing.NoteSection:
		return n.SectionID
	case listing.NoteCourse:
		return n.CourseID
	case listing.NoteMajor:
		return n.MajorID
	case listing.NoteSchool:
		return n.SchoolID
	case listing.NoteSemester:
		return n.SemesterID
	case listing.NoteTitle:
		return n.Title
	case listing.NoteDescription:
		return n.Description
	case listing.NoteTags:
		return n.Tags
	case listing.NoteAnonymous:
		return n.Anonymous
	}
	return nil
}

// matches evaluates the closed clause set in memory the way the SQL schema does
func matches(get func(listing.Field) any, clauses []listing.Clause) bool {
	for _, c := range clauses {
		switch c := c.(type) {
		case listing.Equals:
			if get(c.Field) != c.Value {
				return false
			}
		case listing.Substring:
			found := false
			for _, f := range c.Fields {
				s, _ := get(f).(string)
				if strings.Contains(strings.ToLower(s), strings.ToLower(c.Text)) {
					found = true
				}
			}
			if !found {
				return false
			}
		case listing.ContainsAny:
			have, _ := get(c.Field).([]string)
			if !overlaps(have, c.Values) {
				return false
			}
		case listing.ContainsAll:
			have, _ := get(c.Field).([]string)
			for _, v := range c.Values {
				if !overlaps(have, []string{v}) {
					return false
				}
			}
		}
	}
	return true
}

func overlaps(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (m *mockNoteRepo) Find(_ context.Context, q listing.Query) ([]*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++

	var out []*models.Note
	for _, n := range m.notes {
		if matches(func(f listing.Field) any { return noteField(n, f) }, q.Clauses) {
			out = append(out, copyNote(n))
		}
	}

	less := func(a, b *models.Note) (bool, bool) {
		switch q.Sort.Key {
		case "likes", "totalLikes":
			return a.TotalLikes < b.TotalLikes, a.TotalLikes == b.TotalLikes
		case "title":
			return a.Title < b.Title, a.Title == b.Title
		case "date", "createdDate":
			return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		return false, true
	}
	sort.Slice(out, func(i, j int) bool {
		lt, eq := less(out[i], out[j])
		if eq {
			return out[i].ID < out[j].ID
		}
		if q.Sort.Direction == listing.Ascending {
			return lt
		}
		return !lt
	})
	return out, nil
}

func (m *mockNoteRepo) FindIDs(ctx context.Context, q listing.Query) ([]int64, error) {
	notes, err := m.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids, nil
}

func (m *mockNoteRepo) Count(ctx context.Context, q listing.Query) (int64, error) {
	notes, err := m.Find(ctx, q)
	return int64(len(notes)), err
}

// ── Mock CommentRepository ──

type mockCommentRepo struct {
	mu       sync.Mutex
	comments map[int64]*models.Comment
	nextID   int64
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int64]*models.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Unix(1700000000+c.ID, 0).UTC()
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.NewResourceNotFoundError("comment not found")
}

func (m *mockCommentRepo) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.comments[id]
	return ok, nil
}

func (m *mockCommentRepo) UpdateBody(_ context.Context, id int64, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("comment not found")
	}
	c.Description = body
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return apperrors.NewResourceNotFoundError("comment not found")
	}
	delete(m.comments, id)
	return nil
}

func (m *mockCommentRepo) bumpLikes(id, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.comments[id]; ok {
		c.TotalLikes += delta
	}
}

func (m *mockCommentRepo) Find(_ context.Context, q listing.Query) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Comment
	for _, c := range m.comments {
		get := func(f listing.Field) any {
			switch f {
			case listing.CommentNote:
				return c.NoteID
			case listing.CommentOwner:
				return c.AccountID
			case listing.CommentBody:
				return c.Description
			}
			return nil
		}
		if matches(get, q.Clauses) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCommentRepo) FindIDs(ctx context.Context, q listing.Query) ([]int64, error) {
	comments, _ := m.Find(ctx, q)
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (m *mockCommentRepo) Count(ctx context.Context, q listing.Query) (int64, error) {
	comments, _ := m.Find(ctx, q)
	return int64(len(comments)), nil
}

// ── Mock LikeRepository ──

type likeKey struct {
	kind    models.ItemKind
	item    int64
	account int64
}

// mockLikeRepo updates membership and the owning repo's counter under one lock,
// the in-memory equivalent of the single statement the SQL repository issues
type mockLikeRepo struct {
	mu       sync.Mutex
	members  map[likeKey]bool
	notes    *mockNoteRepo
	comments *mockCommentRepo
}

func newMockLikeRepo(notes *mockNoteRepo, comments *mockCommentRepo) *mockLikeRepo {
	return &mockLikeRepo{members: make(map[likeKey]bool), notes: notes, comments: comments}
}

func (m *mockLikeRepo) bump(kind models.ItemKind, item, delta int64) {
	if kind == models.KindNote {
		m.notes.bumpLikes(item, delta)
	} else {
		m.comments.bumpLikes(item, delta)
	}
}

func (m *mockLikeRepo) Like(_ context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey{kind, itemID, accountID}
	if m.members[k] {
		return false, nil
	}
	m.members[k] = true
	m.bump(kind, itemID, 1)
	return true, nil
}

func (m *mockLikeRepo) Unlike(_ context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey{kind, itemID, accountID}
	if !m.members[k] {
		return false, nil
	}
	delete(m.members, k)
	m.bump(kind, itemID, -1)
	return true, nil
}

func (m *mockLikeRepo) HasLiked(_ context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[likeKey{kind, itemID, accountID}], nil
}

func (m *mockLikeRepo) TotalLikes(ctx context.Context, kind models.ItemKind, itemID int64) (int64, error) {
	if kind == models.KindNote {
		n, err := m.notes.GetByID(ctx, itemID)
		if err != nil {
			return 0, err
		}
		return n.TotalLikes, nil
	}
	c, err := m.comments.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return c.TotalLikes, nil
}

// memberCount recounts membership for the counter invariant
func (m *mockLikeRepo) memberCount(kind models.ItemKind, itemID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.members {
		if k.kind == kind && k.item == itemID {
			n++
		}
	}
	return n
}

// ── Mock ReportRepository ──

type mockReportRepo struct {
	reports map[int64]*models.Report
	nextID  int64
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{reports: make(map[int64]*models.Report)}
}

func (m *mockReportRepo) Create(_ context.Context, r *models.Report) error {
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now().UTC()
	m.reports[r.ID] = r
	return nil
}

func (m *mockReportRepo) List(_ context.Context) ([]*models.Report, error) {
	out := make([]*models.Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockReportRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.reports[id]; !ok {
		return apperrors.NewResourceNotFoundError("report not found")
	}
	delete(m.reports, id)
	return nil
}

// ── Mock FileRepository ──

type mockFileRepo struct {
	files      map[int64]*models.File
	nextID     int64
	failCreate bool
}

func newMockFileRepo() *mockFileRepo {
	return &mockFileRepo{files: make(map[int64]*models.File)}
}

func (m *mockFileRepo) Create(_ context.Context, f *models.File) error {
	if m.failCreate {
		return errors.New("insert failed")
	}
	m.nextID++
	f.ID = m.nextID
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *mockFileRepo) GetByID(_ context.Context, id int64) (*models.File, error) {
	if f, ok := m.files[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, apperrors.NewResourceNotFoundError("file not found")
}

func (m *mockFileRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.files[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(m.files, id)
	return nil
}

// ── Recording ObjectStore ──

type recordingStore struct {
	objects    map[string][]byte
	removed    []string
	failRemove bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{objects: make(map[string][]byte)}
}

func (s *recordingStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *recordingStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, filestorage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *recordingStore) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	if s.failRemove {
		return errors.New("blob store unavailable")
	}
	delete(s.objects, key)
	return nil
}
