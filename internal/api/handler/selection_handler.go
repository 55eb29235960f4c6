package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/service"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// SelectionHandler handles the approval workflow endpoints.
type SelectionHandler struct {
	selSvc service.SelectionService
}

// NewSelectionHandler creates a SelectionHandler.
func NewSelectionHandler(selSvc service.SelectionService) *SelectionHandler {
	return &SelectionHandler{selSvc: selSvc}
}

// ListPending
// GET /api/v1/admin/selections/pending
func (h *SelectionHandler) ListPending(c *gin.Context) {
	selections, err := h.selSvc.ListPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": selections})
}

// Review approves or rejects one selection
// PUT /api/v1/admin/selections/:id/review
func (h *SelectionHandler) Review(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReviewSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	sel, err := h.selSvc.Review(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSelectionError(c, err)
		return
	}

	response.OK(c, sel)
}

// Replace substitutes a selection with another department
// POST /api/v1/admin/selections/:id/replace
func (h *SelectionHandler) Replace(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReplaceSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	sel, err := h.selSvc.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSelectionError(c, err)
		return
	}

	response.Created(c, sel)
}

// Assign creates an admin-assigned approved selection
// POST /api/v1/admin/selections/assign
func (h *SelectionHandler) Assign(c *gin.Context) {
	var req dto.AssignSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	sel, err := h.selSvc.Assign(c.Request.Context(), &req)
	if err != nil {
		h.handleSelectionError(c, err)
		return
	}

	response.Created(c, sel)
}

// BulkApprove approves every pending selection
// POST /api/v1/admin/selections/bulk-approve
func (h *SelectionHandler) BulkApprove(c *gin.Context) {
	approved, err := h.selSvc.BulkApprove(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.BulkApproveResponse{Approved: approved})
}

// Accept member acknowledgement of an admin assignment
// POST /api/v1/selections/:id/accept
func (h *SelectionHandler) Accept(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AcceptSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.selSvc.Accept(c.Request.Context(), id, req.Phone); err != nil {
		h.handleSelectionError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SelectionHandler) handleSelectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelectionNotFound):
		response.NotFound(c, 15001, "selection not found")
	case errors.Is(err, service.ErrInvalidReviewStatus):
		response.BadRequest(c, 15002, "review status must be approved or rejected")
	case errors.Is(err, service.ErrSelectionInactive):
		response.Conflict(c, 15003, "selection is already rejected or replaced")
	case errors.Is(err, service.ErrSameDepartment):
		response.BadRequest(c, 15004, "replacement department must differ from the current one")
	case errors.Is(err, service.ErrDuplicateSelection):
		response.Conflict(c, 15005, "member already has a selection for this department")
	case errors.Is(err, service.ErrNotAdminAssigned):
		response.BadRequest(c, 15006, "only admin-assigned selections can be accepted")
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
