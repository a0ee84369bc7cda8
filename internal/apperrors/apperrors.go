package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("operation not allowed for this role")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidAppointment        = errors.New("appointment date or time is not a valid timestamp")
	ErrTrackingNumberUnavailable = errors.New("could not allocate a unique tracking number")

	ErrInvalidTransition = errors.New("status transition is not allowed")
	ErrAlreadyClaimed    = errors.New("request is no longer pending")
	ErrPaymentRequired   = errors.New("a payment must exist before the request can be completed")
	ErrQuoteLocked       = errors.New("quote can not be changed in the current request status")
	ErrNotRequestOwner   = errors.New("request is assigned to another provider")
	ErrNoProviderRecord  = errors.New("no provider record for this user")
	ErrConfirmRequired   = errors.New("completion must be confirmed")

	ErrPaymentNotPending = errors.New("payment is not pending")
	ErrNotReviewable     = errors.New("request must be completed and paid before review")
)

type EmailTakenError struct{ Email string }

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("email '%s' is already registered", e.Email)
}
func (e *EmailTakenError) Is(target error) bool { return target == ErrAlreadyExists }

type ReviewExistsError struct{ RequestID string }

func (e *ReviewExistsError) Error() string {
	return fmt.Sprintf("request '%s' has already been reviewed", e.RequestID)
}
func (e *ReviewExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// TransitionError reports a rejected status change of a service request.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move request from '%s' to '%s'", e.From, e.To)
}
func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
