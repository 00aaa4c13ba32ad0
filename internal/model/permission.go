package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionMediaUpload allows uploading homework and note attachments.
	PermissionMediaUpload Permission = "media:upload"

	PermissionUsersRead         Permission = "users:read"
	PermissionUsersWrite        Permission = "users:write"
	PermissionUsersResetSession Permission = "users:reset_session"

	// PermissionCatalogWrite allows editing standards and subjects.
	PermissionCatalogWrite Permission = "catalog:write"

	PermissionLecturesRead  Permission = "lectures:read"
	PermissionLecturesWrite Permission = "lectures:write"

	PermissionAttendanceRead  Permission = "attendance:read"
	PermissionAttendanceWrite Permission = "attendance:write"

	PermissionMarksRead  Permission = "marks:read"
	PermissionMarksWrite Permission = "marks:write"

	PermissionHomeworkWrite Permission = "homework:write"
	PermissionNotesWrite    Permission = "notes:write"

	PermissionAnnouncementsWrite Permission = "announcements:write"

	// PermissionFeedbackWrite allows submitting feedback (students).
	PermissionFeedbackWrite Permission = "feedback:write"
	// PermissionFeedbackRead allows reading feedback. Tutors only see their own.
	PermissionFeedbackRead Permission = "feedback:read"

	PermissionReportsExport Permission = "reports:export"
	PermissionDashboardRead Permission = "dashboard:read"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionMediaUpload,
	PermissionUsersRead,
	PermissionUsersWrite,
	PermissionUsersResetSession,
	PermissionCatalogWrite,
	PermissionLecturesRead,
	PermissionLecturesWrite,
	PermissionAttendanceRead,
	PermissionAttendanceWrite,
	PermissionMarksRead,
	PermissionMarksWrite,
	PermissionHomeworkWrite,
	PermissionNotesWrite,
	PermissionAnnouncementsWrite,
	PermissionFeedbackWrite,
	PermissionFeedbackRead,
	PermissionReportsExport,
	PermissionDashboardRead,
}

var rolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleTutor: {
		PermissionMediaUpload,
		PermissionUsersRead,
		PermissionLecturesRead,
		PermissionAttendanceRead,
		PermissionMarksRead,
		PermissionHomeworkWrite,
		PermissionNotesWrite,
		PermissionFeedbackRead,
	},
	RoleStudent: {
		PermissionFeedbackWrite,
	},
}

// PermissionsFor returns the permission codes granted to a role.
func PermissionsFor(role Role) []string {
	perms := rolePermissions[role]
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

// AllRoles lists the roles in display order.
var AllRoles = []Role{RoleAdmin, RoleTutor, RoleStudent}
