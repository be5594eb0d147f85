package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/dto"
	apierrors "crm-backend/internal/errors"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/internal/utils"
)

// LeadHandler coordinates lead and company HTTP handlers.
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// ListLeads returns the caller's visible leads split into open and closed.
func (h *LeadHandler) ListLeads(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)
	params := utils.GetPaginationParams(c)

	result, err := h.leadService.ListLeads(rctx, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"open_leads": gin.H{
			"leads_count": result.OpenTotal,
			"open_leads":  dto.ToLeadDTOs(result.Open),
		},
		"close_leads": gin.H{
			"leads_count": result.ClosedTotal,
			"close_leads": dto.ToLeadDTOs(result.Closed),
		},
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: result.OpenTotal + result.ClosedTotal,
		},
	})
}

// CreateLead creates a lead in the caller's org.
func (h *LeadHandler) CreateLead(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	type CreateLeadRequest struct {
		Title              string   `json:"title" binding:"required"`
		Description        string   `json:"description"`
		Source             string   `json:"source"`
		Website            string   `json:"website"`
		CompanyID          *uint64  `json:"company_id"`
		AssignedProfileIDs []uint64 `json:"assigned_to"`
	}

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.CreateLead(rctx, services.CreateLeadInput{
		Title:              req.Title,
		Description:        req.Description,
		Source:             req.Source,
		Website:            req.Website,
		CompanyID:          req.CompanyID,
		AssignedProfileIDs: req.AssignedProfileIDs,
	})
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLeadDTO(*lead))
}

// GetLead returns a lead with its comments and attachments.
func (h *LeadHandler) GetLead(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetLead(rctx, leadID)
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeadDTO(*lead))
}

// UpdateLead mutates a lead.
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	type UpdateLeadRequest struct {
		Title              *string            `json:"title"`
		Description        *string            `json:"description"`
		Status             *models.LeadStatus `json:"status"`
		Source             *string            `json:"source"`
		Website            *string            `json:"website"`
		AssignedProfileIDs []uint64           `json:"assigned_to"`
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.UpdateLead(rctx, leadID, services.UpdateLeadInput{
		Title:              req.Title,
		Description:        req.Description,
		Status:             req.Status,
		Source:             req.Source,
		Website:            req.Website,
		AssignedProfileIDs: req.AssignedProfileIDs,
	})
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeadDTO(*lead))
}

// DeleteLead removes a lead.
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.DeleteLead(rctx, leadID); err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lead deleted",
	})
}

// AddComment attaches a comment to a lead.
func (h *LeadHandler) AddComment(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	type AddCommentRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.leadService.AddComment(rctx, leadID, req.Body)
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   comment.ID,
		"body": comment.Body,
	})
}

// AddAttachment records an attachment for a lead.
func (h *LeadHandler) AddAttachment(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid lead ID")
		return
	}

	type AddAttachmentRequest struct {
		FileName string `json:"file_name" binding:"required"`
	}

	var req AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	attachment, err := h.leadService.AddAttachment(rctx, leadID, req.FileName)
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AttachmentDTO{
		ID:        attachment.ID,
		FileName:  attachment.FileName,
		FileKey:   attachment.FileKey,
		CreatedAt: attachment.CreatedAt,
	})
}

// ListCompanies lists the org's companies.
func (h *LeadHandler) ListCompanies(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	companies, err := h.leadService.ListCompanies(rctx)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = dto.ToCompanyDTO(company)
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": dtos,
	})
}

// CreateCompany creates a company in the caller's org.
func (h *LeadHandler) CreateCompany(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	type CreateCompanyRequest struct {
		Name    string `json:"name" binding:"required"`
		Website string `json:"website"`
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.leadService.CreateCompany(rctx, services.CreateCompanyInput{
		Name:    req.Name,
		Website: req.Website,
	})
	if err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

func respondLeadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLeadNotFound),
		errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidLeadTitle),
		errors.Is(err, services.ErrInvalidCompanyName),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrAssigneeOutsideOrg):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCompanyNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrLeadEditNotPermitted):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
