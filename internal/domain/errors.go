package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPermissionDeny  = errors.New("permission denied")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")

	ErrDuplicateApplication     = errors.New("application already submitted for this program")
	ErrNotAcceptingApplications = errors.New("program is not accepting applications")
	ErrInvalidTransition        = errors.New("invalid application status transition")

	ErrFileTooLarge         = errors.New("file too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
