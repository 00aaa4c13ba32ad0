package progress

import "github.com/stemsi/tutorhub-backend/internal/model"

// MarksSummary totals a student's marks over a scope.
type MarksSummary struct {
	Tests      int     `json:"tests"`
	Obtained   float64 `json:"obtained"`
	Total      float64 `json:"total"`
	Percentage string  `json:"percentage"`
}

// SubjectMarks is the marks summary for one subject.
type SubjectMarks struct {
	SubjectID   int    `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	MarksSummary
}

// SummarizeMarks adds up marks and total marks of the given records.
func SummarizeMarks(marks []model.Mark) MarksSummary {
	var s MarksSummary
	for _, m := range marks {
		s.Tests++
		s.Obtained += m.Marks
		s.Total += m.TotalMarks
	}
	s.Percentage = Percent(s.Obtained, s.Total)
	return s
}

// SummarizeMarksBySubject groups marks per subject in first-seen order.
func SummarizeMarksBySubject(marks []model.Mark) []SubjectMarks {
	index := make(map[int]int)
	var groups [][]model.Mark
	out := []SubjectMarks{}

	for _, m := range marks {
		i, ok := index[m.SubjectID]
		if !ok {
			i = len(groups)
			index[m.SubjectID] = i
			groups = append(groups, nil)
			out = append(out, SubjectMarks{SubjectID: m.SubjectID, SubjectName: m.SubjectName})
		}
		groups[i] = append(groups[i], m)
	}
	for i := range out {
		out[i].MarksSummary = SummarizeMarks(groups[i])
	}
	return out
}
