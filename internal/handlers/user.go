package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/dto"
	apierrors "crm-backend/internal/errors"
	"crm-backend/internal/middleware"
	"crm-backend/internal/services"
)

// UserHandler coordinates user management HTTP handlers. Most routes using
// it are gated by the org-admin middleware; password reset admits the target
// themselves. Tenant scoping happens in the service from the resolved
// context.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns the profiles visible to the caller.
func (h *UserHandler) ListUsers(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	profiles, err := h.userService.ListUsers(rctx)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": dto.ToProfileDTOs(profiles),
	})
}

// CreateUser creates a user in the caller's admin scope.
func (h *UserHandler) CreateUser(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	type CreateUserRequest struct {
		Email               string `json:"email" binding:"required,email"`
		Password            string `json:"password" binding:"required"`
		Role                string `json:"role"`
		IsOrganizationAdmin bool   `json:"is_organization_admin"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(rctx, services.CreateUserInput{
		Email:               req.Email,
		Password:            req.Password,
		Role:                req.Role,
		IsOrganizationAdmin: req.IsOrganizationAdmin,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// GetUser returns a user in the caller's admin scope.
func (h *UserHandler) GetUser(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(rctx, targetID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser mutates a user in the caller's admin scope.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Role                *string `json:"role"`
		IsOrganizationAdmin *bool   `json:"is_organization_admin"`
		IsActive            *bool   `json:"is_active"`
		OrgID               *uint64 `json:"org"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(rctx, targetID, services.UpdateUserInput{
		Role:                req.Role,
		IsOrganizationAdmin: req.IsOrganizationAdmin,
		IsActive:            req.IsActive,
		OrgID:               req.OrgID,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user in the caller's admin scope.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(rctx, targetID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
	})
}

// ResetPassword sets a new password for a user in the caller's admin scope.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type ResetPasswordRequest struct {
		NewPassword string `json:"new_password" binding:"required"`
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ResetPassword(rctx, targetID, req.NewPassword); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset",
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoAdminContext):
		apierrors.Forbidden(c, "No organization admin context")
	case errors.Is(err, services.ErrUserNotInOrg), errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
