package domain

import (
	"errors"
	"os"
)

const (
	RoleUser      = "USER"
	RoleEmployee  = "EMPLOYEE"
	RoleManager   = "MANAGER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
	RoleOwner     = "OWNER"
	RoleReadOnly  = "READ_ONLY"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrBodyRequest    = errors.New("failed to parse request body")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrUserNotFound   = errors.New("user not found")
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleEmployee, RoleManager, RoleModerator, RoleAdmin, RoleOwner, RoleReadOnly:
		return true
	}
	return false
}
