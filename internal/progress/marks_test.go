package progress

import (
	"testing"

	"github.com/stemsi/tutorhub-backend/internal/model"
)

func TestSummarizeMarks(t *testing.T) {
	if got := SummarizeMarks(nil); got.Percentage != "0.00%" || got.Tests != 0 {
		t.Fatalf("empty summary = %+v", got)
	}

	marks := []model.Mark{
		{SubjectID: 1, SubjectName: "Maths", Marks: 18, TotalMarks: 20},
		{SubjectID: 2, SubjectName: "Biology", Marks: 30, TotalMarks: 50},
		{SubjectID: 1, SubjectName: "Maths", Marks: 7, TotalMarks: 10},
	}

	got := SummarizeMarks(marks)
	if got.Tests != 3 || got.Obtained != 55 || got.Total != 80 || got.Percentage != "68.75%" {
		t.Fatalf("unexpected summary %+v", got)
	}

	bySubject := SummarizeMarksBySubject(marks)
	if len(bySubject) != 2 {
		t.Fatalf("want 2 subjects, got %d", len(bySubject))
	}
	if bySubject[0].SubjectName != "Maths" || bySubject[0].Percentage != "83.33%" {
		t.Errorf("maths = %+v", bySubject[0])
	}
	if bySubject[1].SubjectName != "Biology" || bySubject[1].Percentage != "60.00%" {
		t.Errorf("biology = %+v", bySubject[1])
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole float64
		want        string
	}{
		{0, 0, "0.00%"},
		{1, 3, "33.33%"},
		{2, 3, "66.67%"},
		{5, 5, "100.00%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%v, %v) = %q, want %q", tt.part, tt.whole, got, tt.want)
		}
	}
}
