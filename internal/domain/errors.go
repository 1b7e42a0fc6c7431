package domain

import "errors"

var (
	// ErrEmployeeNotFound is returned when no employee has the requested id.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidRecord is returned when a backend record cannot be decoded.
	ErrInvalidRecord = errors.New("invalid employee record")

	ErrInvalidJobRole       = errors.New("invalid job role")
	ErrInvalidWorkingStatus = errors.New("invalid working status")
	ErrInvalidClientStatus  = errors.New("invalid client status")

	// ErrMissingField is returned by form validation for an empty required field.
	ErrMissingField = errors.New("required field missing")

	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrEndBeforeStart is returned when an internship ends before it starts.
	ErrEndBeforeStart = errors.New("end date cannot be before start date")

	ErrInvalidDate = errors.New("invalid date")
)
