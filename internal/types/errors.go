package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Session errors
	ErrSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	ErrSessionInProgress ErrorCode = "SESSION_IN_PROGRESS"
	ErrSessionEnded      ErrorCode = "SESSION_ENDED"

	// Terminal session outcomes
	ErrStopLoss ErrorCode = "STOP_LOSS"
	ErrBankrupt ErrorCode = "BANKRUPT"

	// Input errors
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrInvalidWager    ErrorCode = "INVALID_WAGER"
	ErrInvalidCommand  ErrorCode = "INVALID_COMMAND"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrNetworkError  ErrorCode = "NETWORK_ERROR"
)

// GameError represents a session-level error surfaced to adapters
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
	if err == nil {
		return false
	}
	if ok := As(err, &gameErr); !ok {
		return false
	}
	return gameErr.Code == code
}

// CodeOf returns the code of the first GameError in err's chain, or ErrInternalError
func CodeOf(err error) ErrorCode {
	var gameErr *GameError
	if As(err, &gameErr) {
		return gameErr.Code
	}
	return ErrInternalError
}

// As finds the first GameError in err's chain
func As(err error, target **GameError) bool {
	if target == nil || err == nil {
		return false
	}
	return errors.As(err, target)
}
