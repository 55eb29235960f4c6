package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/service"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// SettingsHandler exposes the raw key/value settings surface.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetSettings all key/value pairs
// GET /api/v1/admin/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsSvc.GetAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// The stored password, hashed or not, never leaves the admin API.
	delete(settings, "adminPassword")

	response.OK(c, settings)
}

// UpdateSetting upserts one pair
// PUT /api/v1/admin/settings
func (h *SettingsHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.settingsSvc.Put(c.Request.Context(), req.Key, req.Value); err != nil {
		h.handleSettingsError(c, err)
		return
	}

	response.OK(c, nil)
}

// SetAdminPassword rotates the admin password, stored hashed
// PUT /api/v1/admin/settings/admin-password
func (h *SettingsHandler) SetAdminPassword(c *gin.Context) {
	var req dto.SetAdminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.settingsSvc.SetAdminPassword(c.Request.Context(), req.Password); err != nil {
		h.handleSettingsError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SettingsHandler) handleSettingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingKeyEmpty):
		response.BadRequest(c, 18001, "setting key must not be empty")
	case errors.Is(err, service.ErrPasswordEmpty):
		response.BadRequest(c, 18002, "password must not be empty")
	case errors.Is(err, service.ErrBadMaxDepartments):
		response.ErrorWithDetails(c, 500, 18003, "configuration error", "maxDepartments setting is not a valid integer")
	default:
		response.InternalError(c)
	}
}
