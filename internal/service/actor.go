package service

import "github.com/stemsi/tutorhub-backend/internal/model"

// Actor is the authenticated user a request acts on behalf of.
type Actor struct {
	UserID     int
	Role       model.Role
	StandardID *int
}

// IsAdmin reports whether the actor bypasses ownership checks.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// canModify reports whether the actor may edit a record created by ownerID.
func (a Actor) canModify(ownerID int) bool {
	return a.IsAdmin() || a.UserID == ownerID
}

// contentScope narrows content listings for students to their own standard.
func (a Actor) contentScope(f model.ContentFilter) model.ContentFilter {
	if a.Role == model.RoleStudent {
		f.StandardID = a.StandardID
		if f.StandardID == nil {
			none := 0
			f.StandardID = &none
		}
	}
	return f
}
