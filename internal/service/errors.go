package service

import (
	"errors"
)

// Sentinel errors surfaced to handlers, which map them onto HTTP statuses.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrItemNotFound  = errors.New("item not found")
	ErrBillNotFound  = errors.New("bill not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidOtp    = errors.New("invalid otp")
	ErrDuplicate     = errors.New("duplicate record")
	ErrForbiddenRole = errors.New("cannot assign a higher role than your own")
)
