package models

import userModels "engagement-admin-backend/internal/features/user/models"

// RegisterRequest is the body of POST /register-user.
type RegisterRequest struct {
	FirstName       string `json:"fname" binding:"required"`
	LastName        string `json:"lname" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	// Tick logs the new account in right away.
	Tick bool `json:"tick"`
}

// LoginRequest is the body of POST /login-user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse echoes the session state to the console.
type AuthResponse struct {
	Status string                   `json:"status" example:"success"`
	User   *userModels.UserResponse `json:"user"`
	Auth   bool                     `json:"auth" example:"true"`
}
