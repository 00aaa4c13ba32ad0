package model

import (
	"slices"
	"testing"
)

func TestAnnouncementVisibleTo(t *testing.T) {
	three, four := 3, 4

	tests := []struct {
		name     string
		a        Announcement
		role     Role
		standard *int
		want     bool
	}{
		{"admin sees tutor-only", Announcement{Audience: AudienceTutor}, RoleAdmin, nil, true},
		{"all reaches tutors", Announcement{Audience: AudienceAll}, RoleTutor, nil, true},
		{"all reaches students", Announcement{Audience: AudienceAll}, RoleStudent, &three, true},
		{"student-only hidden from tutors", Announcement{Audience: AudienceStudent}, RoleTutor, nil, false},
		{"tutor-only hidden from students", Announcement{Audience: AudienceTutor}, RoleStudent, &three, false},
		{"standard match", Announcement{Audience: AudienceStudent, StandardID: &three}, RoleStudent, &three, true},
		{"standard mismatch", Announcement{Audience: AudienceStudent, StandardID: &three}, RoleStudent, &four, false},
		{"student without standard", Announcement{Audience: AudienceAll, StandardID: &three}, RoleStudent, nil, false},
		{"standard ignored for tutors", Announcement{Audience: AudienceAll, StandardID: &three}, RoleTutor, nil, true},
		{"unknown audience", Announcement{Audience: "Parents"}, RoleTutor, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.VisibleTo(tt.role, tt.standard); got != tt.want {
				t.Errorf("VisibleTo(%s) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestPermissionsFor(t *testing.T) {
	admin := PermissionsFor(RoleAdmin)
	if len(admin) != len(AllPermissions) {
		t.Fatalf("admin has %d permissions, want %d", len(admin), len(AllPermissions))
	}

	tutor := PermissionsFor(RoleTutor)
	if !slices.Contains(tutor, string(PermissionMarksRead)) {
		t.Error("tutor should read marks")
	}
	if slices.Contains(tutor, string(PermissionMarksWrite)) {
		t.Error("tutor should not write marks")
	}

	student := PermissionsFor(RoleStudent)
	if len(student) != 1 || student[0] != string(PermissionFeedbackWrite) {
		t.Errorf("student permissions = %v", student)
	}

	if got := PermissionsFor("Parent"); len(got) != 0 {
		t.Errorf("unknown role permissions = %v, want none", got)
	}
}

func TestAttendanceStatusValid(t *testing.T) {
	for _, s := range []AttendanceStatus{AttendancePresent, AttendanceAbsent} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if AttendanceStatus("Late").Valid() {
		t.Error("Late should not be valid")
	}
}
