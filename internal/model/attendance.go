package model

import "time"

// AttendanceStatus is the recorded presence of a student at a lecture.
// The empty value means attendance was not marked.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Valid reports whether s is a markable status.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// Attendance is one student's status for one lecture.
type Attendance struct {
	ID          int              `json:"id"`
	LectureID   int              `json:"lecture_id"`
	StudentID   int              `json:"student_id"`
	StudentName string           `json:"student_name,omitempty"`
	Status      AttendanceStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// LectureAttendance is a lecture in a student's scope joined with the
// student's status for it, which is empty when unmarked.
type LectureAttendance struct {
	LectureID   int              `json:"lecture_id"`
	SubjectID   int              `json:"subject_id"`
	SubjectName string           `json:"subject_name"`
	Date        time.Time        `json:"date"`
	Description LectureKind      `json:"description"`
	Status      AttendanceStatus `json:"status,omitempty"`
}

// MarkAttendanceRequest is the payload for a single attendance upsert.
type MarkAttendanceRequest struct {
	StudentID int              `json:"student_id" binding:"required,min=1"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=Present Absent"`
}

// BulkAttendanceRequest marks many students of one lecture at once.
type BulkAttendanceRequest struct {
	Entries []MarkAttendanceRequest `json:"entries" binding:"required,min=1,max=500,dive"`
}

// AttendanceJob is one queued bulk attendance write.
type AttendanceJob struct {
	LectureID int              `json:"lecture_id"`
	StudentID int              `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	Attempts  int              `json:"attempts,omitempty"`
}
