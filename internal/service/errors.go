package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("validation")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionRotated     = errors.New("session rotated by a concurrent request")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
)

const GenericMessage = "Something went wrong, please try again"

// InputError is a validation failure with a message fit for the form that sent it.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg + ": " + ErrValidation.Error() }
func (e *InputError) Unwrap() error { return ErrValidation }

func invalid(msg string) error { return &InputError{Msg: msg} }

// StorageError wraps a failure returned by the database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Message is the raw store message.
func (e *StorageError) Message() string { return e.Err.Error() }

func storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &StorageError{Op: op, Err: err}
}

// Message renders err for a redirect. Storage details are shown verbatim only when
// verbose is set (admin pages); everyone else gets GenericMessage.
func Message(err error, verbose bool) string {
	var in *InputError
	var se *StorageError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &in):
		return in.Msg
	case errors.Is(err, ErrEmptyCart):
		return "Cart is empty"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrConflict):
		return "User already registered"
	case errors.Is(err, ErrUnauthorized):
		return "Please sign in"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.As(err, &se) && verbose:
		return se.Message()
	default:
		return GenericMessage
	}
}
