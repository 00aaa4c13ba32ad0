package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
)

// RoleHandler exposes the fixed role to permission matrix.
type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

type roleView struct {
	Name        model.Role `json:"name"`
	Permissions []string   `json:"permissions"`
}

// ListRoles godoc
// GET /api/v1/roles
// Lists every role with the permission codes it grants.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles := make([]roleView, 0, len(model.AllRoles))
	for _, r := range model.AllRoles {
		roles = append(roles, roleView{Name: r, Permissions: model.PermissionsFor(r)})
	}
	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// GetPermissions godoc
// GET /api/v1/permissions
func (h *RoleHandler) GetPermissions(c *gin.Context) {
	perms := make([]string, 0, len(model.AllPermissions))
	for _, p := range model.AllPermissions {
		perms = append(perms, string(p))
	}
	response.Success(c, http.StatusOK, gin.H{"permissions": perms})
}
