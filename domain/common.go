package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "invalid or expired session"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrUnauthorizedAccess = errors.New("unauthorized access")
	ErrTokenNotFound      = errors.New("session token not found")
	ErrTokenExpired       = errors.New("session token expired")
	ErrTokenInvalid       = errors.New("session token invalid")
)
