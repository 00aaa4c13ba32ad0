package model

import "time"

// Standard is a grade level grouping of students.
type Standard struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StandardRequest is the payload for creating or updating a standard.
type StandardRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
	Code string `json:"code" binding:"required,min=1,max=20"`
}
