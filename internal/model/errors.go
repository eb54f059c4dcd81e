package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user is inactive")

	// Credential related errors. ErrInvalidCredentials covers both an
	// unknown email and a wrong password so callers cannot probe which
	// emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCryptoFailure      = errors.New("cryptographic operation failed")

	// Token related errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
