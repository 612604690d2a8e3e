package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating the administrator.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued session token and admin identity.
type LoginResponse struct {
	Token string    `json:"token"`
	User  AdminInfo `json:"user"`
}

// AdminInfo describes the authenticated admin in responses and tokens.
type AdminInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ChangePasswordRequest payload for updating the admin credential.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// JWTClaims represents the JWT payload for session tokens.
type JWTClaims struct {
	AdminID  int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
