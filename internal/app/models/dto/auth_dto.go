package dto

import "time"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents the issued session token
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time `json:"expiresAt"`
	AccountID   int64     `json:"accountId"`
}

// SessionResponse tells the client who it is logged in as
type SessionResponse struct {
	AccountID *int64 `json:"accountId"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
}
