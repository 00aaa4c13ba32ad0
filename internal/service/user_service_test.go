package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/repository"
)

func TestCreateUserNormalizesStandard(t *testing.T) {
	auth, users, _ := authFixture(t)
	svc := NewUserService(users, auth, testLog)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &model.CreateUserRequest{
		Name: "Ravi", Email: "ravi@example.com", Role: model.RoleStudent, Password: "secret123",
	}); !errors.Is(err, ErrStandardRequired) {
		t.Fatalf("student without standard: %v", err)
	}

	tutor, err := svc.Create(ctx, &model.CreateUserRequest{
		Name: " Mr. Rao ", Email: "Rao@Example.com", Role: model.RoleTutor, StandardID: intPtr(8), Password: "secret123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if tutor.StandardID != nil {
		t.Error("tutors must not carry a standard")
	}
	if tutor.Email != "rao@example.com" || tutor.Name != "Mr. Rao" {
		t.Errorf("user = %+v", tutor)
	}
	if auth.CheckPassword(users.byID[tutor.ID].PasswordHash, "secret123") != nil {
		t.Error("password should be stored hashed")
	}

	if _, err := svc.Create(ctx, &model.CreateUserRequest{
		Name: "Dup", Email: "rao@example.com", Role: model.RoleTutor, Password: "secret123",
	}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("duplicate email: %v", err)
	}
}

func TestUpdateUserResetsSessionOnStandardChange(t *testing.T) {
	auth, users, sessions := authFixture(t)
	svc := NewUserService(users, auth, testLog)
	ctx := context.Background()

	if _, err := svc.Update(ctx, 1, &model.UpdateUserRequest{
		Name: "Asha", Email: "asha@example.com", Role: model.RoleStudent, StandardID: intPtr(8),
	}); err != nil {
		t.Fatal(err)
	}
	if len(sessions.deleted) != 0 {
		t.Fatal("unchanged claims should keep the session")
	}
	if users.updated.PasswordHash != "" {
		t.Error("empty password must not be re-hashed")
	}

	if _, err := svc.Update(ctx, 1, &model.UpdateUserRequest{
		Name: "Asha", Email: "asha@example.com", Role: model.RoleStudent, StandardID: intPtr(9),
	}); err != nil {
		t.Fatal(err)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != 1 {
		t.Fatalf("deleted sessions = %v", sessions.deleted)
	}
}

func TestListUsersPaginates(t *testing.T) {
	auth, users, _ := authFixture(t)
	svc := NewUserService(users, auth, testLog)

	list, page, err := svc.List(context.Background(), model.UserFilter{}, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || page.TotalItems != 2 || page.TotalPages != 2 || page.Page != 2 {
		t.Errorf("list = %v, page = %+v", list, page)
	}

	list, page, err = svc.List(context.Background(), model.UserFilter{}, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list) != 0 || page.TotalItems != 2 {
		t.Errorf("past the end: list = %v, page = %+v", list, page)
	}
}

func TestDeleteUserEndsSession(t *testing.T) {
	auth, users, sessions := authFixture(t)
	svc := NewUserService(users, auth, testLog)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if len(sessions.deleted) != 1 {
		t.Errorf("deleted = %v", sessions.deleted)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, perPage       int
		p, pp, limit, offset int
	}{
		{0, 0, 1, 10, 10, 0},
		{3, 20, 3, 20, 20, 40},
		{1, 1000, 1, 100, 100, 0},
	}
	for _, tt := range tests {
		p, pp, limit, offset := pageWindow(tt.page, tt.perPage)
		if p != tt.p || pp != tt.pp || limit != tt.limit || offset != tt.offset {
			t.Errorf("pageWindow(%d, %d) = %d %d %d %d", tt.page, tt.perPage, p, pp, limit, offset)
		}
	}
}
