package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/dto"
	apierrors "crm-backend/internal/errors"
	"crm-backend/internal/middleware"
	"crm-backend/internal/services"
)

// OrgHandler coordinates tenant provisioning HTTP handlers.
type OrgHandler struct {
	orgService *services.OrgService
}

// NewOrgHandler creates a new OrgHandler.
func NewOrgHandler(orgService *services.OrgService) *OrgHandler {
	return &OrgHandler{
		orgService: orgService,
	}
}

// CreateOrg creates an org with the caller as its first admin. The response
// is the only place the API key is ever returned.
func (h *OrgHandler) CreateOrg(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	type CreateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrg(services.CreateOrgInput{
		Name:      req.Name,
		CreatorID: rctx.User.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrgName):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrOrgNameTaken):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "New org created",
		"org":     dto.ToOrgDTO(*org, true),
	})
}

// ListOrgs returns the caller's org memberships.
func (h *OrgHandler) ListOrgs(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	profiles, err := h.orgService.ListOrgsForUser(rctx.User.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	memberships := make([]dto.OrgMembershipDTO, len(profiles))
	for i, profile := range profiles {
		memberships[i] = dto.ToOrgMembershipDTO(profile)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_org_list": memberships,
	})
}

// GetProfile returns the caller's resolved profile.
func (h *OrgHandler) GetProfile(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	c.JSON(http.StatusOK, gin.H{
		"user_obj": dto.ToProfileDTO(*rctx.Profile),
	})
}
