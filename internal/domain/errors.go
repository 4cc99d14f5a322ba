// Sentinel errors shared across repositories, services, and handlers. They
// let higher layers translate failures into distinct HTTP responses with
// errors.Is instead of string matching.
package domain

import "errors"

// ErrNotFound is returned when a referenced article, user, or application
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the actor lacks the role or ownership
// required for the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition is returned when a requested stage change is not in
// the transition table, or an application is already resolved. The entity is
// left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrValidation is returned when a create or update payload is missing
// required fields or carries invalid values.
var ErrValidation = errors.New("validation failed")
