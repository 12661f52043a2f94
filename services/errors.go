package services

import "errors"

// Common errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBoardNotFound        = errors.New("board not found")
	ErrListNotFound         = errors.New("list not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInternal             = errors.New("internal server error")
	ErrResourceExists       = errors.New("resource already exists")
	ErrValidation           = errors.New("validation error")
	ErrSelfDeletion         = errors.New("cannot delete your own account")
)
