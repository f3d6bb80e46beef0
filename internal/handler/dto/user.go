// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/giftwell/giftwell/internal/model"

// RegisterRequest represents the request body for registering a user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
// The password hash is never exposed.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
}
