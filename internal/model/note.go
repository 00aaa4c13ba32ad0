package model

import "time"

// Note is study material uploaded for a subject.
type Note struct {
	ID             int       `json:"id"`
	SubjectID      int       `json:"subject_id"`
	SubjectName    string    `json:"subject_name,omitempty"`
	StandardID     int       `json:"standard_id"`
	UploadedBy     int       `json:"uploaded_by"`
	UploadedByName string    `json:"uploaded_by_name,omitempty"`
	Title          string    `json:"title"`
	FileURL        string    `json:"file_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// NoteRequest is the payload for creating or updating a note.
type NoteRequest struct {
	SubjectID  int    `json:"subject_id" binding:"required,min=1"`
	StandardID int    `json:"standard_id" binding:"required,min=1"`
	Title      string `json:"title" binding:"required,notblank,min=2,max=200"`
	FileURL    string `json:"file_url" binding:"required,max=500,upload_url"`
}
