// Package export renders attendance, progress and schedule data as
// downloadable spreadsheets and calendar feeds.
package export

import (
	"fmt"
	"time"

	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
	"github.com/xuri/excelize/v2"
)

const (
	RegisterSheet = "Register"
	SummarySheet  = "Summary"
)

// AttendanceRegister is everything needed to render a standard's register.
type AttendanceRegister struct {
	StandardName string
	From, To     time.Time
	Students     []model.User
	Lectures     []model.Lecture
	// Statuses is keyed by lecture ID then student ID.
	Statuses map[int]map[int]model.AttendanceStatus
}

func statusCell(s model.AttendanceStatus) string {
	switch s {
	case model.AttendancePresent:
		return "P"
	case model.AttendanceAbsent:
		return "A"
	}
	return ""
}

func lectureHeader(l model.Lecture) string {
	h := l.Date.Format(model.DateLayout) + " " + l.SubjectName
	if l.IsTest() {
		h += " (Test)"
	}
	return h
}

// AttendanceWorkbook renders one register row per student with one column
// per lecture, plus a summary sheet with each student's aggregate.
func AttendanceWorkbook(r AttendanceRegister) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", RegisterSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	// Register
	header := make([]interface{}, 0, len(r.Lectures)+1)
	header = append(header, "Student")
	for _, l := range r.Lectures {
		header = append(header, lectureHeader(l))
	}
	if err := writeRow(f, RegisterSheet, 1, header); err != nil {
		f.Close()
		return nil, err
	}

	for i, st := range r.Students {
		row := make([]interface{}, 0, len(r.Lectures)+1)
		row = append(row, st.Name)
		for _, l := range r.Lectures {
			row = append(row, statusCell(r.Statuses[l.ID][st.ID]))
		}
		if err := writeRow(f, RegisterSheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetCellStyle(RegisterSheet, "A1", lastCol+"1", bold)
	_ = f.SetColWidth(RegisterSheet, "A", "A", 28)
	_ = f.SetPanes(RegisterSheet, &excelize.Panes{
		Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight",
	})

	// Summary
	title := fmt.Sprintf("%s attendance %s to %s", r.StandardName,
		r.From.Format(model.DateLayout), r.To.Format(model.DateLayout))
	if err := f.SetCellValue(SummarySheet, "A1", title); err != nil {
		f.Close()
		return nil, err
	}
	summaryHeader := []interface{}{"Student", "Total Lectures", "Marked", "Present", "Absent", "Percentage"}
	if err := writeRow(f, SummarySheet, 3, summaryHeader); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetCellStyle(SummarySheet, "A1", "A1", bold)
	_ = f.SetCellStyle(SummarySheet, "A3", "F3", bold)
	_ = f.SetColWidth(SummarySheet, "A", "A", 28)
	_ = f.SetColWidth(SummarySheet, "B", "F", 14)

	for i, st := range r.Students {
		statuses := make([]model.AttendanceStatus, 0, len(r.Lectures))
		for _, l := range r.Lectures {
			statuses = append(statuses, r.Statuses[l.ID][st.ID])
		}
		s := progress.SummarizeAttendance(len(r.Lectures), statuses)
		row := []interface{}{st.Name, s.TotalLectures, s.MarkedLectures, s.Present, s.Absent, s.Percentage}
		if err := writeRow(f, SummarySheet, i+4, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
