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
)

// DocumentHandler coordinates document HTTP handlers.
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// ListDocuments lists the org's documents.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	documents, err := h.documentService.ListDocuments(rctx)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": dto.ToDocumentDTOs(documents),
	})
}

// CreateDocument records a document in the caller's org.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	type CreateDocumentRequest struct {
		Title    string   `json:"title" binding:"required"`
		FileName string   `json:"file_name" binding:"required"`
		TeamIDs  []uint64 `json:"teams"`
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	document, err := h.documentService.CreateDocument(rctx, services.CreateDocumentInput{
		Title:    req.Title,
		FileName: req.FileName,
		TeamIDs:  req.TeamIDs,
	})
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentDTO(*document))
}

// GetDocument returns a document.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	documentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid document ID")
		return
	}

	document, err := h.documentService.GetDocument(rctx, documentID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*document))
}

// UpdateDocument mutates a document.
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	documentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid document ID")
		return
	}

	type UpdateDocumentRequest struct {
		Title   *string                `json:"title"`
		Status  *models.DocumentStatus `json:"status"`
		TeamIDs []uint64               `json:"teams"`
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	document, err := h.documentService.UpdateDocument(rctx, documentID, services.UpdateDocumentInput{
		Title:   req.Title,
		Status:  req.Status,
		TeamIDs: req.TeamIDs,
	})
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*document))
}

// DeleteDocument removes a document.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	rctx, _ := middleware.GetRequestContext(c)

	documentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.DeleteDocument(rctx, documentID); err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted",
	})
}

func respondDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidDocumentData),
		errors.Is(err, services.ErrTeamOutsideOrg):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
