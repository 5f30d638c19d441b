package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
)

// Payment errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyPurchased  = errors.New("course already purchased")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Course errors
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrEmptyName         = errors.New("course name must not be empty")
	ErrPriceRequired     = errors.New("paid course requires a price")
	ErrDuplicateCode     = errors.New("course code already exists")
	ErrUnknownCourseType = errors.New("unknown course type")
	ErrUnknownTxType     = errors.New("unknown transaction type")
)
