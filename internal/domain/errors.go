package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.ID != "":
		return fmt.Sprintf("no %s found with this id '%s'", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "user role is not authorized to perform this action"
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// BookingWindowError reports a stay date outside policy bounds. Bound carries
// the violated limit so the message can cite it verbatim.
type BookingWindowError struct {
	Field string
	Bound string
}

func (e BookingWindowError) Error() string {
	return fmt.Sprintf("dates %s field is out of the booking window: %s", e.Field, e.Bound)
}

// BookingConflictError is the lost-race outcome: another booking claimed an
// overlapping interval on the same unit. Callers should retry the checkout.
type BookingConflictError struct {
	UnitID string
	Err    error
}

func (e BookingConflictError) Error() string {
	return fmt.Sprintf("unit '%s' already has a booking overlapping the requested dates", e.UnitID)
}

func (e BookingConflictError) Unwrap() error { return e.Err }

// NotModifiableError rejects guest edits on bookings past the Booked state.
type NotModifiableError struct {
	Status string
}

func (e NotModifiableError) Error() string {
	return fmt.Sprintf("not allowed because this booking is having a status other than 'Booked' (current: %s)", e.Status)
}

// ActiveBookingsError blocks unit deletion while future-ending bookings exist.
type ActiveBookingsError struct {
	UnitID string
	Count  int
}

func (e ActiveBookingsError) Error() string {
	return fmt.Sprintf("unit '%s' has %d active booking(s) that should end or be deleted first", e.UnitID, e.Count)
}

// NoCandidatesError means the price/view filter matched zero room types. It is
// distinct from "candidates exist but are fully booked".
type NoCandidatesError struct{}

func (e NoCandidatesError) Error() string {
	return "no target rooms are available for these options"
}

// AtomicCreateError reports a rolled-back multi-document create with the
// underlying validation failure attached.
type AtomicCreateError struct {
	Resource string
	Err      error
}

func (e AtomicCreateError) Error() string {
	return fmt.Sprintf("atomic %s create failed: %v", e.Resource, e.Err)
}

func (e AtomicCreateError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsBookingWindow(err error) bool {
	var target BookingWindowError
	return errors.As(err, &target)
}

func IsBookingConflict(err error) bool {
	var target BookingConflictError
	return errors.As(err, &target)
}

func IsNotModifiable(err error) bool {
	var target NotModifiableError
	return errors.As(err, &target)
}

func IsActiveBookings(err error) bool {
	var target ActiveBookingsError
	return errors.As(err, &target)
}

func IsNoCandidates(err error) bool {
	var target NoCandidatesError
	return errors.As(err, &target)
}

func IsAtomicCreate(err error) bool {
	var target AtomicCreateError
	return errors.As(err, &target)
}
