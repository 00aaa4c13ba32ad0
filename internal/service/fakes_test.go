package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/repository"
)

var testLog = zerolog.New(io.Discard)

func intPtr(v int) *int { return &v }

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// ─── Users ───────────────────────────────────────────────────────────

type fakeUsers struct {
	byID    map[int]*model.User
	nextID  int
	updated *model.User
}

func newFakeUsers(users ...model.User) *fakeUsers {
	f := &fakeUsers{byID: map[int]*model.User{}, nextID: 100}
	for i := range users {
		u := users[i]
		f.byID[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) ListPaginated(_ context.Context, _ model.UserFilter, limit, offset int) ([]model.User, int, error) {
	var out []model.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	total := len(out)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return out[offset:end], total, nil
}

func (f *fakeUsers) ListStudents(_ context.Context, standardID int) ([]model.User, error) {
	var out []model.User
	for _, u := range f.byID {
		if u.Role == model.RoleStudent && u.StandardID != nil && *u.StandardID == standardID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) StudentIDsInStandard(_ context.Context, standardID int, ids []int) (map[int]bool, error) {
	out := map[int]bool{}
	for _, id := range ids {
		u, ok := f.byID[id]
		if ok && u.Role == model.RoleStudent && u.StandardID != nil && *u.StandardID == standardID {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	existing, ok := f.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	sent := *u
	f.updated = &sent
	cp := *u
	if cp.PasswordHash == "" {
		cp.PasswordHash = existing.PasswordHash
	}
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// ─── Sessions ────────────────────────────────────────────────────────

type fakeSessions struct {
	jti     map[int]string
	deleted []int
	err     error
}

func newFakeSessions() *fakeSessions { return &fakeSessions{jti: map[int]string{}} }

func (f *fakeSessions) Set(_ context.Context, userID int, jti string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.jti[userID] = jti
	return nil
}

func (f *fakeSessions) Get(_ context.Context, userID int) (string, error) {
	return f.jti[userID], f.err
}

func (f *fakeSessions) Delete(_ context.Context, userID int) error {
	delete(f.jti, userID)
	f.deleted = append(f.deleted, userID)
	return f.err
}

// ─── Catalog ─────────────────────────────────────────────────────────

type fakeSubjects map[int]model.Subject

func (f fakeSubjects) GetByID(_ context.Context, id int) (*model.Subject, error) {
	s, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

type fakeStandards []model.Standard

func (f fakeStandards) GetAll(context.Context) ([]model.Standard, error) { return f, nil }

func (f fakeStandards) GetByID(_ context.Context, id int) (*model.Standard, error) {
	for _, s := range f {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ─── Lectures ────────────────────────────────────────────────────────

type fakeLectures struct {
	byID      map[int]*model.Lecture
	nextID    int
	listCalls int
}

func newFakeLectures(lectures ...model.Lecture) *fakeLectures {
	f := &fakeLectures{byID: map[int]*model.Lecture{}, nextID: 1000}
	for i := range lectures {
		l := lectures[i]
		f.byID[l.ID] = &l
	}
	return f
}

func (f *fakeLectures) GetByID(_ context.Context, id int) (*model.Lecture, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLectures) List(_ context.Context, filter model.LectureFilter) ([]model.Lecture, error) {
	f.listCalls++
	var out []model.Lecture
	for _, l := range f.byID {
		if filter.StandardID != nil && l.StandardID != *filter.StandardID {
			continue
		}
		if filter.TutorID != nil && l.TutorID != *filter.TutorID {
			continue
		}
		if filter.SubjectID != nil && l.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.From != nil && l.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.Date.After(*filter.To) {
			continue
		}
		out = append(out, *l)
	}
	sortLectures(out)
	return out, nil
}

func sortLectures(ls []model.Lecture) {
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && ls[j].ID < ls[j-1].ID; j-- {
			ls[j], ls[j-1] = ls[j-1], ls[j]
		}
	}
}

func (f *fakeLectures) Create(_ context.Context, l *model.Lecture) error {
	f.nextID++
	l.ID = f.nextID
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLectures) Update(_ context.Context, l *model.Lecture) error {
	if _, ok := f.byID[l.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLectures) Delete(_ context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// ─── Schedule cache ──────────────────────────────────────────────────

type fakeCache struct {
	mu         sync.Mutex
	version    int64
	data       map[string][]byte
	versionErr error
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) Version(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, c.versionErr
}

func (c *fakeCache) Bump(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

// ─── Attendance ──────────────────────────────────────────────────────

type attendanceKey struct{ lecture, student int }

type fakeAttendance struct {
	records map[attendanceKey]model.AttendanceStatus
	rows    []model.LectureAttendance
	upTo    time.Time
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{records: map[attendanceKey]model.AttendanceStatus{}}
}

func (f *fakeAttendance) Upsert(_ context.Context, a *model.Attendance) error {
	f.records[attendanceKey{a.LectureID, a.StudentID}] = a.Status
	return nil
}

func (f *fakeAttendance) ListByLecture(_ context.Context, lectureID int) ([]model.Attendance, error) {
	var out []model.Attendance
	for k, st := range f.records {
		if k.lecture == lectureID {
			out = append(out, model.Attendance{LectureID: k.lecture, StudentID: k.student, Status: st})
		}
	}
	return out, nil
}

func (f *fakeAttendance) Delete(context.Context, int) error { return nil }

func (f *fakeAttendance) Exists(_ context.Context, lectureID, studentID int) (bool, error) {
	_, ok := f.records[attendanceKey{lectureID, studentID}]
	return ok, nil
}

func (f *fakeAttendance) ForStudent(_ context.Context, _, _ int, subjectID *int, upTo time.Time) ([]model.LectureAttendance, error) {
	f.upTo = upTo
	var out []model.LectureAttendance
	for _, r := range f.rows {
		if subjectID != nil && r.SubjectID != *subjectID {
			continue
		}
		if r.Date.After(upTo) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAttendance) Register(_ context.Context, lectureIDs []int) (map[int]map[int]model.AttendanceStatus, error) {
	out := map[int]map[int]model.AttendanceStatus{}
	for _, id := range lectureIDs {
		for k, st := range f.records {
			if k.lecture != id {
				continue
			}
			if out[id] == nil {
				out[id] = map[int]model.AttendanceStatus{}
			}
			out[id][k.student] = st
		}
	}
	return out, nil
}

type fakeQueue struct {
	jobs [][]model.AttendanceJob
	err  error
}

func (q *fakeQueue) Enqueue(_ context.Context, jobs []model.AttendanceJob) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, jobs)
	return nil
}

// ─── Marks ───────────────────────────────────────────────────────────

type fakeMarks struct {
	saved []model.Mark
}

func (f *fakeMarks) Upsert(_ context.Context, m *model.Mark) error {
	m.ID = len(f.saved) + 1
	f.saved = append(f.saved, *m)
	return nil
}

func (f *fakeMarks) ListByLecture(_ context.Context, lectureID int) ([]model.Mark, error) {
	var out []model.Mark
	for _, m := range f.saved {
		if m.LectureID == lectureID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMarks) ListByStudent(_ context.Context, studentID int, subjectID *int) ([]model.Mark, error) {
	var out []model.Mark
	for _, m := range f.saved {
		if m.StudentID != studentID || (subjectID != nil && m.SubjectID != *subjectID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMarks) Delete(context.Context, int) error { return nil }

var errBoom = errors.New("boom")
