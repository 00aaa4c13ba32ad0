package model

import "time"

// LectureKind distinguishes regular classes from tests.
type LectureKind string

const (
	LectureKindLecture LectureKind = "Lecture"
	LectureKindTest    LectureKind = "Test"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Lecture is a scheduled class or test for one subject, tutor and standard.
// Names of the referenced entities are resolved by the repository.
type Lecture struct {
	ID           int         `json:"id"`
	SubjectID    int         `json:"subject_id"`
	SubjectName  string      `json:"subject_name,omitempty"`
	TutorID      int         `json:"tutor_id"`
	TutorName    string      `json:"tutor_name,omitempty"`
	StandardID   int         `json:"standard_id"`
	StandardName string      `json:"standard_name,omitempty"`
	Date         time.Time   `json:"date"`
	StartTime    string      `json:"start_time"`
	EndTime      string      `json:"end_time"`
	Description  LectureKind `json:"description"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsTest reports whether marks may be recorded against the lecture.
func (l *Lecture) IsTest() bool {
	return l.Description == LectureKindTest
}

// LectureRequest is the payload for creating or updating a lecture.
type LectureRequest struct {
	SubjectID   int         `json:"subject_id" binding:"required,min=1"`
	TutorID     int         `json:"tutor_id" binding:"required,min=1"`
	StandardID  int         `json:"standard_id" binding:"required,min=1"`
	Date        string      `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string      `json:"start_time" binding:"required,datetime=15:04"`
	EndTime     string      `json:"end_time" binding:"required,datetime=15:04"`
	Description LectureKind `json:"description" binding:"required,oneof=Lecture Test"`
}

// LectureFilter narrows lecture listings. Zero values mean "any".
type LectureFilter struct {
	StandardID *int
	TutorID    *int
	SubjectID  *int
	From       *time.Time
	To         *time.Time
}
