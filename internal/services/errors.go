// Package services defines the business logic for people, books, tags,
// clubs, membership, reading history, chat, messages, and reviews. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages and HTTP status codes is performed
// at the handler layer.
package services

import (
	"errors"
	"fmt"
)

// Not-found errors, one per aggregate so handlers can phrase 404s.
var (
	ErrPersonNotFound  = errors.New("person not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrClubNotFound    = errors.New("club not found")
	ErrMemberNotFound  = errors.New("club member not found")
	ErrHistoryNotFound = errors.New("reading history entry not found")
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrReviewNotFound  = errors.New("review not found")
)

// Conflict errors: uniqueness violations surfaced either by the advisory
// pre-check or by the storage constraint.
var (
	// ErrEmailInUse is returned when a person's email is already registered.
	ErrEmailInUse = errors.New("email already in use")

	// ErrTagExists is returned when a tag with the same name already exists.
	ErrTagExists = errors.New("tag already exists")

	// ErrReviewExists is returned when the person has already reviewed the book.
	ErrReviewExists = errors.New("book already reviewed by this person")

	// ErrMemberExists is returned when the person is already a member of the club.
	ErrMemberExists = errors.New("person is already a member of this club")
)

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password; the two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTermTooShort is returned when a search term is below the minimum length.
var ErrTermTooShort = errors.New("search term too short")

// ValidationError reports a domain-rule violation detected before any
// persistence call (publication-year bound, rating range, name length, an
// unknown include, ...).
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
