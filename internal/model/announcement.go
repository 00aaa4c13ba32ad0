package model

import "time"

// Audience selects who sees an announcement.
type Audience string

const (
	AudienceAll     Audience = "All"
	AudienceStudent Audience = "Student"
	AudienceTutor   Audience = "Tutor"
)

// Announcement is a notice broadcast to an audience, optionally one standard.
type Announcement struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Audience   Audience  `json:"audience"`
	StandardID *int      `json:"standard_id,omitempty"`
	CreatedBy  int       `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// VisibleTo reports whether a user with the given role and standard may read a.
// Admins see everything.
func (a *Announcement) VisibleTo(role Role, standardID *int) bool {
	if role == RoleAdmin {
		return true
	}
	switch a.Audience {
	case AudienceAll:
	case AudienceStudent:
		if role != RoleStudent {
			return false
		}
	case AudienceTutor:
		if role != RoleTutor {
			return false
		}
	default:
		return false
	}
	if a.StandardID == nil || role != RoleStudent {
		return true
	}
	return standardID != nil && *standardID == *a.StandardID
}

// AnnouncementRequest is the payload for creating or updating an announcement.
type AnnouncementRequest struct {
	Title      string   `json:"title" binding:"required,notblank,min=2,max=200"`
	Body       string   `json:"body" binding:"required,notblank,max=5000"`
	Audience   Audience `json:"audience" binding:"required,oneof=All Student Tutor"`
	StandardID *int     `json:"standard_id" binding:"omitempty,min=1"`
}
