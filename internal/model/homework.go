package model

import "time"

// Homework is an assignment posted for a subject and standard.
type Homework struct {
	ID            int       `json:"id"`
	SubjectID     int       `json:"subject_id"`
	SubjectName   string    `json:"subject_name,omitempty"`
	StandardID    int       `json:"standard_id"`
	TutorID       int       `json:"tutor_id"`
	TutorName     string    `json:"tutor_name,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"due_date"`
	AttachmentURL *string   `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HomeworkRequest is the payload for creating or updating homework.
type HomeworkRequest struct {
	SubjectID     int     `json:"subject_id" binding:"required,min=1"`
	StandardID    int     `json:"standard_id" binding:"required,min=1"`
	Title         string  `json:"title" binding:"required,notblank,min=2,max=200"`
	Description   string  `json:"description" binding:"max=5000"`
	DueDate       string  `json:"due_date" binding:"required,datetime=2006-01-02"`
	AttachmentURL *string `json:"attachment_url" binding:"omitempty,max=500,upload_url"`
}

// ContentFilter narrows homework and note listings.
type ContentFilter struct {
	StandardID *int
	SubjectID  *int
}
