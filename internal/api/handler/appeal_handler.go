package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/service"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// AppealHandler handles appeal submission and resolution.
type AppealHandler struct {
	appealSvc service.AppealService
}

// NewAppealHandler creates an AppealHandler.
func NewAppealHandler(appealSvc service.AppealService) *AppealHandler {
	return &AppealHandler{appealSvc: appealSvc}
}

// Submit public appeal form
// POST /api/v1/appeals
func (h *AppealHandler) Submit(c *gin.Context) {
	var req dto.SubmitAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	appeal, err := h.appealSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleAppealError(c, err)
		return
	}

	response.Created(c, appeal)
}

// ListAppeals
// GET /api/v1/admin/appeals?status=pending
func (h *AppealHandler) ListAppeals(c *gin.Context) {
	appeals, err := h.appealSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": appeals})
}

// Resolve approves or rejects a pending appeal
// PUT /api/v1/admin/appeals/:id/resolve
func (h *AppealHandler) Resolve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ResolveAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	appeal, err := h.appealSvc.Resolve(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAppealError(c, err)
		return
	}

	response.OK(c, appeal)
}

func (h *AppealHandler) handleAppealError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAppealNotFound):
		response.NotFound(c, 16001, "appeal not found")
	case errors.Is(err, service.ErrResultsNotPublished):
		response.Conflict(c, 16002, "appeals can only be submitted after results are published")
	case errors.Is(err, service.ErrAppealWindowClosed):
		response.Conflict(c, 16003, "the appeal window is closed")
	case errors.Is(err, service.ErrAmbiguousPhone):
		response.BadRequest(c, 16004, "several members share this phone number, member id is required")
	case errors.Is(err, service.ErrEmptyAppeal):
		response.BadRequest(c, 16005, "appeal must name a department to remove or to add")
	case errors.Is(err, service.ErrAppealAlreadyResolved):
		response.Conflict(c, 16006, "appeal has already been resolved")
	case errors.Is(err, service.ErrInvalidAppealStatus):
		response.BadRequest(c, 16007, "appeal resolution must be approved or rejected")
	case errors.Is(err, service.ErrPhoneMismatch):
		response.Forbidden(c, 15007, "phone number does not match our records")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 14001, "member not found")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, "department not found")
	default:
		response.InternalError(c)
	}
}
