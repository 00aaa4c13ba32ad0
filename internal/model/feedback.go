package model

import "time"

// Feedback is a message from a user, optionally about a tutor.
type Feedback struct {
	ID         int       `json:"id"`
	FromUserID int       `json:"from_user_id"`
	FromName   string    `json:"from_name,omitempty"`
	TutorID    *int      `json:"tutor_id,omitempty"`
	TutorName  *string   `json:"tutor_name,omitempty"`
	Message    string    `json:"message"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeedbackRequest is the payload for submitting feedback.
type FeedbackRequest struct {
	TutorID *int   `json:"tutor_id" binding:"omitempty,min=1"`
	Message string `json:"message" binding:"required,notblank,min=2,max=2000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}
