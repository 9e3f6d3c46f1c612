package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation malformed input, rejected before any store access
	ErrValidation = errors.New("validation error")

	// ErrConflict proposed interval overlaps an active booking of the same staff member
	ErrConflict = errors.New("slot no longer available")

	// ErrInvalidStatus the booking status does not allow the requested action
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrNoStaffAvailable no eligible staff member for the requested interval
	ErrNoStaffAvailable = errors.New("no staff available")
)

// ValidationError describes malformed input
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError carries the active booking that blocks the proposed interval
type ConflictError struct {
	StaffID  int64
	Start    time.Time
	End      time.Time
	Existing *Booking
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return fmt.Sprintf("%s: staff=%d %s-%s", ErrConflict, e.StaffID,
			e.Start.Format(TimeFormat), e.End.Format(TimeFormat))
	}
	return fmt.Sprintf("%s: staff=%d %s-%s overlaps booking id=%d", ErrConflict, e.StaffID,
		e.Start.Format(TimeFormat), e.End.Format(TimeFormat), e.Existing.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvalidStatusError carries the current status so callers can explain the rejection
type InvalidStatusError struct {
	BookingID int64
	Current   BookingStatus
	Action    string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("%s: cannot %s booking id=%d in status %s", ErrInvalidStatus, e.Action, e.BookingID, e.Current)
}

func (e *InvalidStatusError) Unwrap() error {
	return ErrInvalidStatus
}
