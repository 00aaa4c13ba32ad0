package export

import (
	"strconv"

	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
	"github.com/xuri/excelize/v2"
)

const MarksSheet = "Marks"

// ProgressWorkbook renders a student's marks and per-subject totals.
func ProgressWorkbook(studentName string, marks []model.Mark) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", MarksSheet); err != nil {
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

	if err := writeRow(f, MarksSheet, 1, []interface{}{"Date", "Subject", "Marks", "Total", "Percentage", "Remarks"}); err != nil {
		f.Close()
		return nil, err
	}
	for i, m := range marks {
		remarks := ""
		if m.Description != nil {
			remarks = *m.Description
		}
		row := []interface{}{
			m.LectureDate.Format(model.DateLayout), m.SubjectName, m.Marks, m.TotalMarks,
			progress.Percent(m.Marks, m.TotalMarks), remarks,
		}
		if err := writeRow(f, MarksSheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}
	_ = f.SetCellStyle(MarksSheet, "A1", "F1", bold)
	_ = f.SetColWidth(MarksSheet, "A", "B", 16)
	_ = f.SetColWidth(MarksSheet, "F", "F", 40)

	if err := f.SetCellValue(SummarySheet, "A1", studentName); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRow(f, SummarySheet, 3, []interface{}{"Subject", "Tests", "Obtained", "Total", "Percentage"}); err != nil {
		f.Close()
		return nil, err
	}

	row := 4
	for _, s := range progress.SummarizeMarksBySubject(marks) {
		if err := writeRow(f, SummarySheet, row, []interface{}{s.SubjectName, s.Tests, s.Obtained, s.Total, s.Percentage}); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	overall := progress.SummarizeMarks(marks)
	if err := writeRow(f, SummarySheet, row, []interface{}{"Overall", overall.Tests, overall.Obtained, overall.Total, overall.Percentage}); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetCellStyle(SummarySheet, "A1", "A1", bold)
	_ = f.SetCellStyle(SummarySheet, "A3", "E3", bold)
	_ = f.SetCellStyle(SummarySheet, "A"+strconv.Itoa(row), "E"+strconv.Itoa(row), bold)
	_ = f.SetColWidth(SummarySheet, "A", "A", 24)

	return f, nil
}
