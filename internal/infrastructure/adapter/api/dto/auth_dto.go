package dto

// LoginRequest represents the login form payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login. The session token itself
// travels in an HttpOnly cookie, not in the body.
type LoginResponse struct {
	Success bool   `json:"success"`
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// SessionResponse represents the identity attached to the current session
type SessionResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
