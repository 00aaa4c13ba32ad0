package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/export"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Grade 8":       "grade-8",
		"  Std. X (B) ": "std-x-b",
		"!!!":           "report",
		"Asha Kumar":    "asha-kumar",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func reportFixture() (*ReportService, *fakeAttendance) {
	users := newFakeUsers(
		model.User{ID: 1, Name: "Asha", Role: model.RoleStudent, StandardID: intPtr(8)},
		model.User{ID: 2, Name: "Ravi", Role: model.RoleStudent, StandardID: intPtr(8)},
		model.User{ID: 4, Name: "Mr. Rao", Role: model.RoleTutor},
	)
	lectures := newFakeLectures(
		model.Lecture{ID: 10, StandardID: 8, SubjectID: 1, SubjectName: "Maths", Date: date("2024-06-10"), StartTime: "09:00", EndTime: "10:00"},
		model.Lecture{ID: 11, StandardID: 8, SubjectID: 1, SubjectName: "Maths", Date: date("2024-07-10"), StartTime: "09:00", EndTime: "10:00"},
	)
	standards := fakeStandards{{ID: 8, Name: "Grade 8"}}
	att := newFakeAttendance()
	att.records[attendanceKey{10, 1}] = model.AttendancePresent

	marks := NewMarkService(lectures, &fakeMarks{}, att, users, testLog)
	schedule := NewLectureService(lectures, users, fakeSubjects{}, standards, nil, testLog)
	return NewReportService(standards, users, lectures, att, marks, schedule, time.UTC, testLog), att
}

func TestAttendanceWorkbookReport(t *testing.T) {
	svc, _ := reportFixture()

	f, name, err := svc.AttendanceWorkbook(context.Background(), 8, date("2024-06-01"), date("2024-06-30"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if name != "attendance-grade-8-2024-06-01-2024-06-30.xlsx" {
		t.Errorf("name = %q", name)
	}

	rows, err := f.GetRows(export.RegisterSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || len(rows[0]) != 2 {
		t.Fatalf("rows = %v, want one lecture column and two students", rows)
	}
}

func TestAttendanceWorkbookRejectsRange(t *testing.T) {
	svc, _ := reportFixture()
	ctx := context.Background()

	if _, _, err := svc.AttendanceWorkbook(ctx, 8, date("2024-06-30"), date("2024-06-01")); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("reversed range: %v", err)
	}
	if _, _, err := svc.AttendanceWorkbook(ctx, 8, date("2023-01-01"), date("2024-06-01")); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("long range: %v", err)
	}
}

func TestWeekCalendarReport(t *testing.T) {
	svc, _ := reportFixture()
	var buf bytes.Buffer
	if err := svc.WeekCalendar(context.Background(), &buf, date("2024-06-12"), ScheduleScope{StandardID: intPtr(8)}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Count(out, "BEGIN:VEVENT") != 1 {
		t.Errorf("calendar = %s", out)
	}
}

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(&config.Config{UploadDir: dir, MaxUploadBytes: 8}, testLog)

	up, err := svc.SaveUpload(strings.NewReader("%PDF-1"), "../../worksheet.pdf", "Application/PDF; charset=binary", 6)
	if err != nil {
		t.Fatal(err)
	}
	url := up.URL
	if up.Name != "worksheet.pdf" || up.ContentType != "application/pdf" || up.Size != 6 {
		t.Errorf("upload = %+v", up)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".pdf") {
		t.Errorf("url = %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))); err != nil {
		t.Errorf("stored file: %v", err)
	}

	if _, err := svc.SaveUpload(strings.NewReader("x"), "setup.exe", "application/x-msdownload", 1); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("exe: %v", err)
	}
	if _, err := svc.SaveUpload(strings.NewReader("123456789012"), "scan.png", "image/png", 2); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("understated size: %v", err)
	}
}
