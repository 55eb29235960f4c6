package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/service"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// MemberHandler handles the public submission flow and member admin CRUD.
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Submit public sign-up form
// POST /api/v1/submit
func (h *MemberHandler) Submit(c *gin.Context) {
	var req dto.SubmitSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	memberID, err := h.memberSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.Created(c, gin.H{"member_id": memberID})
}

// Lookup public member lookup by phone
// GET /api/v1/members/lookup?phone=xxx
func (h *MemberHandler) Lookup(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.BadRequest(c, 10001, "phone query parameter is required")
		return
	}

	member, err := h.memberSvc.Lookup(c.Request.Context(), phone)
	if err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.OK(c, member)
}

// ListMembers
// GET /api/v1/admin/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": members})
}

// GetMember
// GET /api/v1/admin/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	member, err := h.memberSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.OK(c, member)
}

// UpdateMember
// PUT /api/v1/admin/members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.memberSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteMember
// DELETE /api/v1/admin/members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.memberSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.OK(c, nil)
}

// PurgeMembers removes every member and selection row
// POST /api/v1/admin/members/purge
func (h *MemberHandler) PurgeMembers(c *gin.Context) {
	count, err := h.memberSvc.PurgeAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"deleted": count})
}

func (h *MemberHandler) handleMemberError(c *gin.Context, err error) {
	var quotaErr *service.QuotaError
	if errors.As(err, &quotaErr) {
		// Quota messages are member-facing and returned verbatim.
		response.BadRequest(c, 14005, quotaErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 14001, "member not found")
	case errors.Is(err, service.ErrMissingRequiredFields):
		response.BadRequest(c, 14002, "full name, phone, and address are required")
	case errors.Is(err, service.ErrInvalidPhone):
		response.BadRequest(c, 14003, "phone number must contain exactly 10 digits")
	case errors.Is(err, service.ErrUnknownDepartment):
		response.BadRequest(c, 14004, "one or more selected departments do not exist")
	case errors.Is(err, service.ErrDuplicateDepartments):
		response.BadRequest(c, 14006, "the same department is selected more than once")
	default:
		response.InternalError(c)
	}
}
