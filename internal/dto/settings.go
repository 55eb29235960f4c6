package dto

// ── settings DTOs ──

// UpdateSettingRequest upserts one key/value pair.
type UpdateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SetAdminPasswordRequest rotates the admin password.
type SetAdminPasswordRequest struct {
	Password string `json:"password"`
}
