package service

import "errors"

// Domain errors surfaced by services. Handlers map these to response codes.
var (
	// ErrNotFound covers both "does not exist" and "not owned by the caller";
	// the two are deliberately conflated so existence is never leaked to
	// non-owners.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidCredentials is returned for a wrong email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict is returned when a unique identifier is already taken.
	ErrConflict = errors.New("resource already exists")

	// ErrNoQuestions is returned when exam composition selects an empty
	// question pool.
	ErrNoQuestions = errors.New("no questions in selected exercises")
)
