package auth

import (
	"github.com/stylehaven/stylehaven-backend/internal/users"
)

// RegisterRequest captures the payload for customer sign-up.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=64"`
}

// RegisterResponse returns the freshly created customer profile along
// with a signed-in token pair.
type RegisterResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// OTPRequest asks for a one-time login code to be emailed.
type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OTPRequestResponse acknowledges that a code was issued.
type OTPRequestResponse struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// VerifyOTPRequest exchanges an emailed code for tokens.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=4,numeric"`
}

// StaffLoginRequest captures the password credentials for back-office sign-in.
type StaffLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
