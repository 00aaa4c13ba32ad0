package model

import "time"

// Mark is a student's score for one test lecture.
type Mark struct {
	ID          int       `json:"id"`
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	SubjectID   int       `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	LectureID   int       `json:"lecture_id"`
	LectureDate time.Time `json:"lecture_date"`
	Marks       float64   `json:"marks"`
	TotalMarks  float64   `json:"total_marks"`
	Description *string   `json:"description,omitempty"`
	UpdatedBy   int       `json:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MarkRequest is the payload for recording a student's marks on a test lecture.
type MarkRequest struct {
	StudentID   int     `json:"student_id" binding:"required,min=1"`
	Marks       float64 `json:"marks" binding:"gte=0"`
	TotalMarks  float64 `json:"total_marks" binding:"required,gt=0"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}
