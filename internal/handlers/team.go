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

// TeamHandler coordinates team HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListTeams lists the org's teams.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	teams, err := h.teamService.ListTeams(rctx)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": dto.ToTeamDTOs(teams),
	})
}

// CreateTeam creates a team in the caller's org.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	type CreateTeamRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		ProfileIDs  []uint64 `json:"users"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(rctx, services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		ProfileIDs:  req.ProfileIDs,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// GetTeam returns a team with its roster.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	team, err := h.teamService.GetTeam(rctx, teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// UpdateTeam mutates a team.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	type UpdateTeamRequest struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		ProfileIDs  []uint64 `json:"users"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(rctx, teamID, services.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		ProfileIDs:  req.ProfileIDs,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// DeleteTeam removes a team.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	if err := h.teamService.DeleteTeam(rctx, teamID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted",
	})
}

// GetTeamsAndUsers returns all teams and active profiles of the current org.
func (h *TeamHandler) GetTeamsAndUsers(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	result, err := h.teamService.GetTeamsAndUsers(rctx)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams":    dto.ToTeamDTOs(result.Teams),
		"profiles": dto.ToProfileDTOs(result.Profiles),
	})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTeamName),
		errors.Is(err, services.ErrMemberOutsideOrg):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTeamNameTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
