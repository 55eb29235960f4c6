package dto

// ── auth DTOs ──

// LoginRequest is the admin login form.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the admin session token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}
