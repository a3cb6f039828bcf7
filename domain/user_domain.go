package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "user profile retrieved successfully"
	MessageSuccessUpdateMe = "user profile updated successfully"
	MessageFailedRegister  = "failed to register user"
	MessageFailedLogin     = "failed to login"
	MessageFailedGetMe     = "failed to retrieve user profile"
	MessageFailedUpdateMe  = "failed to update user profile"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Plan  string `json:"plan"`
		Role  string `json:"role"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateMeRequest struct {
		Name     string `json:"name" validate:"omitempty,min=1"`
		Password string `json:"password" validate:"omitempty,min=8"`
	}

	MeResponse struct {
		ID                string     `json:"id"`
		Name              string     `json:"name"`
		Email             string     `json:"email"`
		Plan              string     `json:"plan"`
		Role              string     `json:"role"`
		TokenBalanceMicro int64      `json:"token_balance_micro"`
		EmailVerified     *time.Time `json:"email_verified,omitempty"`
		AnalysesCount     int        `json:"analyses_count"`
		APICallsCount     int        `json:"api_calls_count"`
	}
)
