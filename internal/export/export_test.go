package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
	"github.com/xuri/excelize/v2"
)

func day(s string) time.Time {
	t, _ := time.Parse(model.DateLayout, s)
	return t
}

func reopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	out, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { out.Close() })
	return out
}

func TestAttendanceWorkbook(t *testing.T) {
	reg := AttendanceRegister{
		StandardName: "Grade 8",
		From:         day("2024-06-09"),
		To:           day("2024-06-15"),
		Students: []model.User{
			{ID: 1, Name: "Asha"},
			{ID: 2, Name: "Ravi"},
		},
		Lectures: []model.Lecture{
			{ID: 10, SubjectName: "Maths", Date: day("2024-06-10"), Description: model.LectureKindLecture},
			{ID: 11, SubjectName: "Science", Date: day("2024-06-11"), Description: model.LectureKindTest},
			{ID: 12, SubjectName: "Maths", Date: day("2024-06-12"), Description: model.LectureKindLecture},
			{ID: 13, SubjectName: "English", Date: day("2024-06-13"), Description: model.LectureKindLecture},
		},
		Statuses: map[int]map[int]model.AttendanceStatus{
			10: {1: model.AttendancePresent, 2: model.AttendanceAbsent},
			11: {1: model.AttendanceAbsent},
			12: {1: model.AttendancePresent, 2: model.AttendancePresent},
		},
	}

	f, err := AttendanceWorkbook(reg)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	wb := reopen(t, f)

	rows, err := wb.GetRows(RegisterSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("register rows = %d, want header + 2 students", len(rows))
	}
	if len(rows[0]) != 5 {
		t.Fatalf("header = %v, want Student + 4 lectures", rows[0])
	}
	if rows[0][2] != "2024-06-11 Science (Test)" {
		t.Errorf("test lecture header = %q", rows[0][2])
	}
	if got := strings.Join(rows[1], ","); got != "Asha,P,A,P" {
		t.Errorf("Asha row = %q", got)
	}

	summary, err := wb.GetRows(SummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	// Title, blank, header, two students.
	if len(summary) != 5 {
		t.Fatalf("summary rows = %d: %v", len(summary), summary)
	}

	for i, st := range reg.Students {
		var statuses []model.AttendanceStatus
		for _, l := range reg.Lectures {
			statuses = append(statuses, reg.Statuses[l.ID][st.ID])
		}
		want := progress.SummarizeAttendance(len(reg.Lectures), statuses)
		row := summary[i+3]
		if row[0] != st.Name || row[1] != "4" || row[5] != want.Percentage {
			t.Errorf("summary row %v, want %s total 4 %s", row, st.Name, want.Percentage)
		}
	}
	if summary[3][5] != "66.67%" || summary[4][5] != "50.00%" {
		t.Errorf("percentages = %q, %q", summary[3][5], summary[4][5])
	}
}

func TestAttendanceWorkbookEmpty(t *testing.T) {
	f, err := AttendanceWorkbook(AttendanceRegister{StandardName: "Grade 1"})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := reopen(t, f).GetRows(RegisterSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][0] != "Student" {
		t.Errorf("rows = %v", rows)
	}
}

func TestProgressWorkbook(t *testing.T) {
	note := "Good effort"
	marks := []model.Mark{
		{SubjectID: 1, SubjectName: "Maths", LectureDate: day("2024-06-11"), Marks: 18, TotalMarks: 20, Description: &note},
		{SubjectID: 2, SubjectName: "Science", LectureDate: day("2024-06-12"), Marks: 30, TotalMarks: 50},
		{SubjectID: 1, SubjectName: "Maths", LectureDate: day("2024-06-18"), Marks: 7, TotalMarks: 10},
	}

	f, err := ProgressWorkbook("Asha", marks)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	wb := reopen(t, f)

	rows, err := wb.GetRows(MarksSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("marks rows = %d", len(rows))
	}
	if rows[1][4] != "90.00%" || rows[1][5] != note {
		t.Errorf("first mark row = %v", rows[1])
	}

	summary, err := wb.GetRows(SummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	last := summary[len(summary)-1]
	if last[0] != "Overall" || last[4] != "68.75%" {
		t.Errorf("overall row = %v", last)
	}
	if summary[3][0] != "Maths" || summary[3][4] != "83.33%" {
		t.Errorf("maths row = %v", summary[3])
	}
}

func TestWeekCalendar(t *testing.T) {
	lectures := []model.Lecture{
		{ID: 1, SubjectName: "Maths", StandardName: "Grade 8", TutorName: "Mr. Rao", Date: day("2024-06-10"), StartTime: "09:00", EndTime: "10:00", Description: model.LectureKindLecture},
		{ID: 2, SubjectName: "Science", StandardName: "Grade 8", TutorName: "Ms. Iyer", Date: day("2024-06-12"), StartTime: "11:30", EndTime: "12:30", Description: model.LectureKindTest},
	}
	week := progress.BuildWeek(day("2024-06-12"), lectures)
	loc := time.FixedZone("IST", 5*3600+1800)

	var buf bytes.Buffer
	if err := WeekCalendar(&buf, "Grade 8", week, loc); err != nil {
		t.Fatal(err)
	}

	cal, err := ics.ParseCalendar(&buf)
	if err != nil {
		t.Fatalf("parse ics: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	ev := events[1]
	if got := ev.GetProperty(ics.ComponentPropertySummary).Value; got != "[TEST] Science" {
		t.Errorf("summary = %q", got)
	}
	start, err := ev.GetStartAt()
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 6, 12, 6, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %s, want %s", start, want)
	}
}

func TestWeekCalendarRejectsBadTime(t *testing.T) {
	week := progress.BuildWeek(day("2024-06-12"), []model.Lecture{
		{ID: 3, Date: day("2024-06-12"), StartTime: "9am", EndTime: "10:00"},
	})
	if err := WeekCalendar(&bytes.Buffer{}, "x", week, time.UTC); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}
