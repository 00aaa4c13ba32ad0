package model

import "time"

// Subject represents a course taught to one standard.
type Subject struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	StandardID   int       `json:"standard_id"`
	StandardName string    `json:"standard_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubjectRequest is the payload for creating or updating a subject.
type SubjectRequest struct {
	Name       string `json:"name" binding:"required,notblank,min=2,max=100"`
	Code       string `json:"code" binding:"required,min=1,max=20"`
	StandardID int    `json:"standard_id" binding:"required,min=1"`
}
