package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/image-qc-backend/internal/http/response"
	"github.com/yungbote/image-qc-backend/internal/services"
)

type RoleHandler struct {
	roles services.RoleService
}

func NewRoleHandler(roles services.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// GET /me/role?email
func (rh *RoleHandler) GetRole(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("query parameter %q is required", "email"))
		return
	}
	response.RespondOK(c, rh.roles.Resolve(c.Request.Context(), email))
}
