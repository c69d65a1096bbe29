package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Wager errors
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrInvalidBet        ErrorCode = "INVALID_BET"
	ErrInvalidBetType    ErrorCode = "INVALID_BET_TYPE"

	// Action errors
	ErrInvalidAction ErrorCode = "INVALID_ACTION"
	ErrInvalidIndex  ErrorCode = "INVALID_INDEX"
	ErrInvalidInput  ErrorCode = "INVALID_ARGUMENT"
	ErrNotFound      ErrorCode = "NOT_FOUND"

	// System errors
	ErrStorage         ErrorCode = "STORAGE_ERROR"
	ErrCorruptSnapshot ErrorCode = "CORRUPT_SNAPSHOT"
	ErrInvalidConfig   ErrorCode = "INVALID_CONFIG"
	ErrInternalError   ErrorCode = "INTERNAL_ERROR"
)

// GameError represents a game-related error
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if an error is a GameError and has a specific code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if !As(err, &gameErr) {
		return false
	}
	return gameErr.Code == code
}

// CodeOf returns the code of the first GameError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var gameErr *GameError
	if !As(err, &gameErr) {
		return ""
	}
	return gameErr.Code
}

// As finds the first GameError in err's chain.
func As(err error, target **GameError) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.As(err, target)
}
