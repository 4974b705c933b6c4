package game

import (
	"errors"
	"fmt"
)

// Error kinds raised by the simulation. Every error returned by this package
// wraps exactly one of them.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidCommand = errors.New("invalid command")
)

// ValidationError contains details about a rejected grid or command.
type ValidationError struct {
	Kind    error
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%v: [%s] %s", e.Kind, e.Code, e.Message)
}

// Unwrap exposes the error kind to errors.Is.
func (e ValidationError) Unwrap() error {
	return e.Kind
}

func invalidInput(code, format string, args ...any) error {
	return ValidationError{Kind: ErrInvalidInput, Code: code, Message: fmt.Sprintf(format, args...)}
}

func invalidCommand(code, format string, args ...any) error {
	return ValidationError{Kind: ErrInvalidCommand, Code: code, Message: fmt.Sprintf(format, args...)}
}
