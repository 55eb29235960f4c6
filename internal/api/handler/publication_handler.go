package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/service"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// PublicationHandler handles results publication and the public lookup.
type PublicationHandler struct {
	pubSvc service.PublicationService
}

// NewPublicationHandler creates a PublicationHandler.
func NewPublicationHandler(pubSvc service.PublicationService) *PublicationHandler {
	return &PublicationHandler{pubSvc: pubSvc}
}

// Publish
// POST /api/v1/admin/publish
func (h *PublicationHandler) Publish(c *gin.Context) {
	result, err := h.pubSvc.Publish(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Unpublish
// POST /api/v1/admin/unpublish
func (h *PublicationHandler) Unpublish(c *gin.Context) {
	result, err := h.pubSvc.Unpublish(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// SetAppealWindow
// PUT /api/v1/admin/appeal-window
func (h *PublicationHandler) SetAppealWindow(c *gin.Context) {
	var req dto.SetAppealWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.pubSvc.SetAppealWindow(c.Request.Context(), req.Open); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"appeal_window_open": req.Open})
}

// Preview pre-publish sanity check
// GET /api/v1/admin/preview
func (h *PublicationHandler) Preview(c *gin.Context) {
	preview, err := h.pubSvc.Preview(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, preview)
}

// Results public results lookup by phone
// GET /api/v1/results?phone=xxx
func (h *PublicationHandler) Results(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.BadRequest(c, 10001, "phone query parameter is required")
		return
	}

	results, err := h.pubSvc.Results(c.Request.Context(), phone)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, results)
}
