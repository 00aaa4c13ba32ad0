// Package progress turns already-fetched attendance, mark and lecture
// records into the summaries and week views served to students and staff.
// Nothing here performs I/O.
package progress

import (
	"fmt"

	"github.com/stemsi/tutorhub-backend/internal/model"
)

// AttendanceSummary is the aggregate attendance of one student over a scope.
type AttendanceSummary struct {
	TotalLectures  int    `json:"total_lectures"`
	MarkedLectures int    `json:"marked_lectures"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	Percentage     string `json:"percentage"`
}

// SubjectAttendance is the attendance summary for one subject.
type SubjectAttendance struct {
	SubjectID   int    `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	AttendanceSummary
}

// SummarizeAttendance counts statuses against totalLectures lectures in scope.
// Statuses other than Present and Absent count as unmarked. totalLectures is
// raised to the marked count when the caller passes fewer.
func SummarizeAttendance(totalLectures int, statuses []model.AttendanceStatus) AttendanceSummary {
	var s AttendanceSummary
	for _, st := range statuses {
		switch st {
		case model.AttendancePresent:
			s.Present++
		case model.AttendanceAbsent:
			s.Absent++
		}
	}
	s.MarkedLectures = s.Present + s.Absent
	s.TotalLectures = max(totalLectures, s.MarkedLectures)
	s.Percentage = Percent(float64(s.Present), float64(s.MarkedLectures))
	return s
}

// SummarizeLectures summarizes rows where every row is one lecture in scope.
func SummarizeLectures(rows []model.LectureAttendance) AttendanceSummary {
	statuses := make([]model.AttendanceStatus, len(rows))
	for i, r := range rows {
		statuses[i] = r.Status
	}
	return SummarizeAttendance(len(rows), statuses)
}

// SummarizeBySubject groups rows per subject, in the order subjects first appear.
func SummarizeBySubject(rows []model.LectureAttendance) []SubjectAttendance {
	index := make(map[int]int)
	var groups [][]model.LectureAttendance
	out := []SubjectAttendance{}

	for _, r := range rows {
		i, ok := index[r.SubjectID]
		if !ok {
			i = len(groups)
			index[r.SubjectID] = i
			groups = append(groups, nil)
			out = append(out, SubjectAttendance{SubjectID: r.SubjectID, SubjectName: r.SubjectName})
		}
		groups[i] = append(groups[i], r)
	}
	for i := range out {
		out[i].AttendanceSummary = SummarizeLectures(groups[i])
	}
	return out
}

// Percent formats part/whole as a two-decimal percentage, "0.00%" when whole is zero.
func Percent(part, whole float64) string {
	if whole <= 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", part/whole*100)
}
