package utils

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrBookingNotFound    = errors.New("booking not found")

	ErrAlreadyPurchased      = errors.New("this membership has already been purchased")
	ErrPaymentsNotConfigured = errors.New("host has no connected payment account")
	ErrDatesRequired         = errors.New("at least one date must be selected")
	ErrEmailMismatch         = errors.New("email does not match registration")
	ErrInvalidSignature      = errors.New("webhook signature invalid")
	ErrLeadHasBookings       = errors.New("lead still has bookings")
	ErrMembershipRequired    = errors.New("membership purchase required")
	ErrInvalidDate           = errors.New("date is not valid for this event")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDatabaseError      = errors.New("database error")
)
